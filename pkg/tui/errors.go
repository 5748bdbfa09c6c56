// ABOUTME: Sentinel and typed errors for the application root and run loop
// ABOUTME: RunError carries the failing operation and iteration; errors.Is matches ErrRunIO

package tui

import (
	"errors"
	"fmt"
)

var (
	// ErrRunIO matches every *RunError.
	ErrRunIO = errors.New("run loop I/O error")

	// ErrAlreadyRunning is returned by Run on an App whose loop is active.
	ErrAlreadyRunning = errors.New("app is already running")

	// ErrClosed is returned by Run and SetBackend once the App is closed.
	ErrClosed = errors.New("app is closed")
)

// RunError reports a backend failure inside the run loop. The loop never
// retries; it stops and closes the App.
type RunError struct {
	Op        string // "poll", "render" or "refresh"
	Iteration int    // 1-based
	Err       error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run loop %s (iteration %d): %v", e.Op, e.Iteration, e.Err)
}

func (e *RunError) Unwrap() []error {
	return []error{ErrRunIO, e.Err}
}
