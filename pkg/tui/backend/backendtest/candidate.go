// ABOUTME: Candidate builders that count open attempts, for selector tests
// ABOUTME: Succeeding candidates open a Fake; failing ones return a fixed error

package backendtest

import (
	"sync/atomic"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

// Counter counts availability checks and open attempts of one candidate.
type Counter struct {
	Checks atomic.Int32
	Opens  atomic.Int32
	// Last is the most recent backend opened, nil if none.
	Last atomic.Pointer[Fake]
}

// Candidate returns a candidate whose Open succeeds with a Fake of the
// given kind when openErr is nil and fails with openErr otherwise.
func Candidate(kind backend.Kind, openErr error, p *Counter) backend.Candidate {
	return backend.Candidate{
		Kind: kind,
		Open: func() (backend.Backend, error) {
			p.Opens.Add(1)
			if openErr != nil {
				return nil, openErr
			}
			f := New(kind, 80, 24)
			p.Last.Store(f)
			return f, nil
		},
	}
}

// Unavailable returns a candidate whose availability check fails with err.
func Unavailable(kind backend.Kind, err error, p *Counter) backend.Candidate {
	c := Candidate(kind, nil, p)
	c.Available = func() error {
		p.Checks.Add(1)
		return err
	}
	return c
}
