// ABOUTME: ShutdownLatch enforces once-only backend shutdown; ClaimTerminal enforces one live owner
// ABOUTME: A second Shutdown panics with ErrAlreadyShutdown; a second claim fails with ErrTerminalBusy

package backend

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ShutdownLatch is embedded by backends to implement the Shutdown contract.
// The zero value is ready to use.
type ShutdownLatch struct {
	done atomic.Bool
}

// Shutdown runs restore the first time it is called and panics on every
// later call. restore runs even if it panics part way; the latch is set
// before restore starts.
func (l *ShutdownLatch) Shutdown(kind Kind, restore func() error) error {
	if !l.done.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%w: %s", ErrAlreadyShutdown, kind))
	}
	return restore()
}

// Closed reports whether Shutdown has been called.
func (l *ShutdownLatch) Closed() bool {
	return l.done.Load()
}

var terminalOwner struct {
	mu   sync.Mutex
	kind Kind
	held bool
}

// ClaimTerminal records kind as the exclusive owner of the process's
// terminal. The returned release func is idempotent. Real backends claim
// on open and release at the end of Shutdown; the dummy never claims.
func ClaimTerminal(kind Kind) (release func(), err error) {
	terminalOwner.mu.Lock()
	defer terminalOwner.mu.Unlock()

	if terminalOwner.held {
		return nil, fmt.Errorf("%w by %s", ErrTerminalBusy, terminalOwner.kind)
	}
	terminalOwner.held = true
	terminalOwner.kind = kind

	var once sync.Once
	return func() {
		once.Do(func() {
			terminalOwner.mu.Lock()
			terminalOwner.held = false
			terminalOwner.kind = ""
			terminalOwner.mu.Unlock()
		})
	}, nil
}

// TerminalOwner reports the kind currently holding the terminal.
func TerminalOwner() (Kind, bool) {
	terminalOwner.mu.Lock()
	defer terminalOwner.mu.Unlock()
	return terminalOwner.kind, terminalOwner.held
}
