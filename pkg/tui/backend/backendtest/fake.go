// ABOUTME: Fake backend for tests: scripted input, recorded output, injectable failures
// ABOUTME: Simulates terminal mode changes on a shared Terminal so restore round-trips are observable

// Package backendtest provides a scripted backend.Backend for tests.
package backendtest

import (
	"sync"
	"time"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

// Mode is the observable state of a simulated terminal device.
type Mode struct {
	Raw          bool
	AltScreen    bool
	CursorHidden bool
}

// Terminal is a simulated terminal device shared by the fakes opened on it.
type Terminal struct {
	mu   sync.Mutex
	mode Mode
}

// Mode returns the current device mode.
func (t *Terminal) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *Terminal) swap(m Mode) Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.mode
	t.mode = m
	return prev
}

// Fake is a scripted backend. The zero value is not usable; call New or
// Open.
type Fake struct {
	mu     sync.Mutex
	kind   backend.Kind
	cols   int
	rows   int
	events []backend.Event
	frames []backend.Frame
	calls  []string
	counts map[string]int

	term  *Terminal
	saved Mode
	latch backend.ShutdownLatch

	// PollErr, RenderErr and RefreshErr are consulted with the 1-based call
	// number of the operation; a non-nil result is returned as its error.
	PollErr    func(n int) error
	RenderErr  func(n int) error
	RefreshErr func(n int) error

	// ShutdownErr is returned by Shutdown after the mode is restored.
	ShutdownErr error
}

// New returns a fake reporting kind and size with no terminal attached.
func New(kind backend.Kind, cols, rows int) *Fake {
	return &Fake{kind: kind, cols: cols, rows: rows, counts: make(map[string]int)}
}

// Open returns a fake that puts term into raw mode, the alternate screen
// and a hidden cursor, restoring the previous mode on Shutdown.
func Open(kind backend.Kind, term *Terminal, cols, rows int) *Fake {
	f := New(kind, cols, rows)
	f.term = term
	f.saved = term.swap(Mode{Raw: true, AltScreen: true, CursorHidden: true})
	return f
}

// Push appends events to the input script.
func (f *Fake) Push(evs ...backend.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evs...)
}

// SetSize changes the reported size and queues a resize event.
func (f *Fake) SetSize(cols, rows int) {
	f.mu.Lock()
	f.cols, f.rows = cols, rows
	f.mu.Unlock()
	f.Push(backend.ResizeEvent(cols, rows))
}

func (f *Fake) Kind() backend.Kind { return f.kind }

func (f *Fake) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols, f.rows
}

// PollEvent pops the next scripted event. With an empty script it returns
// immediately, without waiting for timeout.
func (f *Fake) PollEvent(_ time.Duration) (backend.Event, bool, error) {
	n := f.record("poll")
	if f.latch.Closed() {
		return backend.Event{}, false, backend.ErrClosed
	}
	if f.PollErr != nil {
		if err := f.PollErr(n); err != nil {
			return backend.Event{}, false, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == 0 {
		return backend.Event{}, false, nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, true, nil
}

func (f *Fake) Render(fr *backend.Frame) error {
	n := f.record("render")
	if f.latch.Closed() {
		return backend.ErrClosed
	}
	if f.RenderErr != nil {
		if err := f.RenderErr(n); err != nil {
			return err
		}
	}
	if fr != nil {
		f.mu.Lock()
		f.frames = append(f.frames, *fr)
		f.mu.Unlock()
	}
	return nil
}

func (f *Fake) Refresh() error {
	n := f.record("refresh")
	if f.latch.Closed() {
		return backend.ErrClosed
	}
	if f.RefreshErr != nil {
		return f.RefreshErr(n)
	}
	return nil
}

func (f *Fake) Shutdown() error {
	return f.latch.Shutdown(f.kind, func() error {
		f.record("shutdown")
		if f.term != nil {
			f.term.swap(f.saved)
		}
		return f.ShutdownErr
	})
}

// --- Inspection helpers (not part of backend.Backend) ---

// Calls returns the operation log in order ("poll", "render", "refresh",
// "shutdown").
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Count returns how many times op was called.
func (f *Fake) Count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[op]
}

// Frames returns every frame rendered so far.
func (f *Fake) Frames() []backend.Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.Frame(nil), f.frames...)
}

// Closed reports whether Shutdown has run.
func (f *Fake) Closed() bool {
	return f.latch.Closed()
}

func (f *Fake) record(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	f.counts[op]++
	return f.counts[op]
}
