// ABOUTME: Selector walks a fixed, prioritized candidate list and opens the first backend that works
// ABOUTME: SelectDefault never fails (dummy fallback); SelectNamed reports why a specific backend could not open

package backend

import (
	"fmt"

	"github.com/mauromedda/termroot/internal/log"
)

// Selector chooses a backend. Its candidate list is fixed at construction.
type Selector struct {
	order         []Kind
	lookup        func(Kind) (Candidate, bool)
	namedFallback bool
	dummyCols     int
	dummyRows     int
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithOrder replaces the priority order. Kinds are still resolved through
// the registry.
func WithOrder(kinds ...Kind) SelectorOption {
	return func(s *Selector) {
		s.order = append([]Kind(nil), kinds...)
	}
}

// WithCandidates uses cands, in the given order, instead of the registry.
// Kinds not listed are treated as not compiled in.
func WithCandidates(cands ...Candidate) SelectorOption {
	return func(s *Selector) {
		byKind := make(map[Kind]Candidate, len(cands))
		s.order = s.order[:0]
		for _, c := range cands {
			byKind[c.Kind] = c
			s.order = append(s.order, c.Kind)
		}
		s.lookup = func(k Kind) (Candidate, bool) {
			c, ok := byKind[k]
			return c, ok
		}
	}
}

// WithNamedFallback makes SelectNamed return the dummy backend instead of
// an error when the requested backend cannot be opened.
func WithNamedFallback(on bool) SelectorOption {
	return func(s *Selector) {
		s.namedFallback = on
	}
}

// WithDummySize sets the screen size reported by the dummy backend.
func WithDummySize(cols, rows int) SelectorOption {
	return func(s *Selector) {
		s.dummyCols, s.dummyRows = cols, rows
	}
}

// NewSelector returns a Selector over the registry in DefaultOrder.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		order:     append([]Kind(nil), DefaultOrder...),
		lookup:    Registered,
		dummyCols: defaultCols,
		dummyRows: defaultRows,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Order returns the candidate kinds in priority order.
func (s *Selector) Order() []Kind {
	return append([]Kind(nil), s.order...)
}

// SelectDefault opens the first candidate that is compiled in, available,
// and opens without error. Candidates after the winner are never touched.
// If none qualifies it returns the dummy backend; it never fails.
func (s *Selector) SelectDefault() Backend {
	for _, kind := range s.order {
		b, err := s.open(kind)
		if err != nil {
			log.Debug("backend %s skipped: %v", kind, err)
			continue
		}
		log.Debug("backend %s selected", kind)
		return b
	}

	log.Debug("no terminal backend opened; falling back to %s", KindDummy)
	return s.Dummy()
}

// SelectNamed opens exactly the requested backend, bypassing the priority
// scan. A kind that is not compiled in yields *UnavailableError; one that
// fails to open yields *InitError. With WithNamedFallback the failure is
// logged and the dummy backend is returned instead.
func (s *Selector) SelectNamed(kind Kind) (Backend, error) {
	b, err := s.open(kind)
	if err == nil {
		log.Debug("backend %s selected by name", kind)
		return b, nil
	}
	if s.namedFallback {
		log.Warn("backend %s: %v; falling back to %s", kind, err, KindDummy)
		return s.Dummy(), nil
	}
	return nil, err
}

// Status describes one candidate without opening it.
type Status struct {
	Kind     Kind
	Priority int // 1-based position in the order; 0 for the dummy fallback
	Compiled bool
	// Unavailable is the availability check's error, nil when usable.
	Unavailable error
}

// Report returns the status of every candidate followed by the dummy.
func (s *Selector) Report() []Status {
	out := make([]Status, 0, len(s.order)+1)
	for i, kind := range s.order {
		st := Status{Kind: kind, Priority: i + 1}
		if kind == KindDummy {
			// Nothing after an explicit dummy is ever reached.
			st.Compiled = true
			return append(out, st)
		}
		c, ok := s.lookup(kind)
		if !ok {
			st.Unavailable = ErrNotCompiled
			out = append(out, st)
			continue
		}
		st.Compiled = true
		if c.Available != nil {
			st.Unavailable = c.Available()
		}
		out = append(out, st)
	}
	return append(out, Status{Kind: KindDummy, Compiled: true})
}

func (s *Selector) open(kind Kind) (Backend, error) {
	if kind == KindDummy {
		return s.Dummy(), nil
	}

	c, ok := s.lookup(kind)
	if !ok {
		return nil, &UnavailableError{Kind: kind}
	}
	if c.Available != nil {
		if err := c.Available(); err != nil {
			return nil, &InitError{Kind: kind, Err: err}
		}
	}

	b, err := c.Open()
	if err != nil {
		return nil, &InitError{Kind: kind, Err: err}
	}
	if b == nil {
		return nil, &InitError{Kind: kind, Err: fmt.Errorf("provider returned no backend")}
	}
	return b, nil
}

// Dummy returns a dummy backend sized by WithDummySize. It cannot fail.
func (s *Selector) Dummy() Backend {
	return NewDummy(s.dummyCols, s.dummyRows)
}
