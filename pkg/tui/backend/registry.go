// ABOUTME: Process-wide registry of compiled-in backend providers
// ABOUTME: Providers call Register from init; a kind with no registration is "not compiled in"

package backend

import (
	"fmt"
	"sync"
)

// Candidate describes one provider.
type Candidate struct {
	Kind Kind

	// Available reports whether the environment can support the backend
	// (tty attached, TERM set). nil means always available.
	Available func() error

	// Open constructs the backend and takes control of the terminal.
	Open func() (Backend, error)
}

var registry = struct {
	sync.RWMutex
	candidates map[Kind]Candidate
}{candidates: make(map[Kind]Candidate)}

// Register makes a provider available for selection. It panics if c has
// no Open func, names KindDummy, or is registered twice.
func Register(c Candidate) {
	if c.Open == nil {
		panic(fmt.Sprintf("backend: Register %s with nil Open", c.Kind))
	}
	if c.Kind == KindDummy {
		panic("backend: the dummy backend is built in")
	}

	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.candidates[c.Kind]; dup {
		panic(fmt.Sprintf("backend: Register called twice for %s", c.Kind))
	}
	registry.candidates[c.Kind] = c
}

// Registered returns the provider registered for kind.
func Registered(kind Kind) (Candidate, bool) {
	registry.RLock()
	defer registry.RUnlock()
	c, ok := registry.candidates[kind]
	return c, ok
}
