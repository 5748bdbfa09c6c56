// ABOUTME: Engine is the contract between the run loop and the view/event layer
// ABOUTME: All methods run on the loop goroutine

package tui

import "github.com/mauromedda/termroot/pkg/tui/backend"

// Engine receives events and produces frames. The run loop calls it from
// a single goroutine, so implementations need no locking.
type Engine interface {
	// Dispatch handles one event. Returning false requests a stop, which
	// takes effect before the next event is dispatched.
	Dispatch(a *App, ev backend.Event) bool

	// Layout is called with the current screen size before every render
	// and before a resize event is dispatched.
	Layout(cols, rows int)

	// RenderFrame returns the render instructions for the current state.
	RenderFrame() *backend.Frame
}

// invalidator is implemented by engines that cache the previous frame.
// SetBackend calls it so the new backend receives a full redraw.
type invalidator interface {
	Invalidate()
}
