// ABOUTME: Core view interfaces: Component renders lines, KeyHandler consumes keys
// ABOUTME: CursorMarker lets a component place the terminal cursor inside its output

package tui

import "github.com/mauromedda/termroot/pkg/tui/key"

// CursorMarker is a zero-width marker that components embed in a rendered
// line to place the cursor. Root strips it and sets Frame.Cursor at the
// marker's column.
const CursorMarker = "\x1b_termroot:c\x07"

// Component is the base interface for all views.
type Component interface {
	// Render writes the component's lines into out. Lines must not exceed
	// width visible columns.
	Render(out *RenderBuffer, width int)

	// Invalidate clears any cached render state, forcing a full re-render
	// on the next Render call.
	Invalidate()
}

// KeyHandler is implemented by components that process keyboard input.
// HandleKey reports whether the key was consumed.
type KeyHandler interface {
	HandleKey(a *App, k key.Key) bool
}
