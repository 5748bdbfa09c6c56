// ABOUTME: Sentinel errors and typed errors for backend selection and lifecycle
// ABOUTME: UnavailableError = not compiled in; InitError = compiled in but failed to open

package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotCompiled indicates no provider for the requested kind was
	// compiled into this binary.
	ErrNotCompiled = errors.New("backend: not compiled in")

	// ErrNoTerminal indicates stdin/stdout is not attached to a terminal.
	ErrNoTerminal = errors.New("backend: no controlling terminal")

	// ErrNoTerminfo indicates the terminfo entry for $TERM is missing.
	ErrNoTerminfo = errors.New("backend: terminfo entry not found")

	// ErrTerminalBusy indicates another live backend already controls the
	// terminal in this process.
	ErrTerminalBusy = errors.New("backend: terminal already claimed")

	// ErrAlreadyShutdown is the panic value (wrapped) raised when Shutdown
	// is called twice on one backend. It signals an ownership bug.
	ErrAlreadyShutdown = errors.New("backend: already shut down")

	// ErrClosed is returned by operations on a backend after Shutdown.
	ErrClosed = errors.New("backend: closed")

	// ErrUnknownKind is returned by ParseKind for names it cannot resolve.
	ErrUnknownKind = errors.New("backend: unknown kind")
)

// UnavailableError reports a named backend that was not compiled in.
type UnavailableError struct {
	Kind Kind
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("backend %q unavailable: not compiled in", e.Kind)
}

// Unwrap lets errors.Is match ErrNotCompiled.
func (e *UnavailableError) Unwrap() error {
	return ErrNotCompiled
}

// InitError reports a compiled-in backend that failed to initialize.
type InitError struct {
	Kind Kind
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("backend %q init failed: %v", e.Kind, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
