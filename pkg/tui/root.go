// ABOUTME: Root is the built-in Engine: global key callbacks, a main container, and overlays
// ABOUTME: Produces diffed frames; unchanged rows are skipped, a resize forces a full redraw

package tui

import (
	"strings"

	"github.com/mauromedda/termroot/pkg/tui/backend"
	"github.com/mauromedda/termroot/pkg/tui/key"
	"github.com/mauromedda/termroot/pkg/tui/width"
)

// Root is a minimal view engine. Ctrl+C quits unless the binding is
// removed with ClearGlobalCallbacks.
type Root struct {
	content   *Container
	overlays  []Overlay
	callbacks map[key.Key][]func(*App)
	quitKeys  map[key.Key]bool
	onResize  []func(cols, rows int)

	cols, rows int
	prev       []Line
	full       bool
}

// NewRoot returns a Root with an empty container.
func NewRoot() *Root {
	return &Root{
		content:   NewContainer(),
		callbacks: make(map[key.Key][]func(*App)),
		quitKeys:  map[key.Key]bool{{Type: key.KeyCtrlC, Ctrl: true}: true},
		full:      true,
	}
}

// Container returns the main container.
func (r *Root) Container() *Container { return r.content }

// AddGlobalCallback runs fn whenever k is pressed, before any component
// sees the key. Callbacks for one key run in registration order.
func (r *Root) AddGlobalCallback(k key.Key, fn func(*App)) {
	r.callbacks[k] = append(r.callbacks[k], fn)
}

// AddQuitKey makes k request a stop.
func (r *Root) AddQuitKey(k key.Key) {
	r.quitKeys[k] = true
}

// ClearGlobalCallbacks removes the callbacks and quit binding for k.
func (r *Root) ClearGlobalCallbacks(k key.Key) {
	delete(r.callbacks, k)
	delete(r.quitKeys, k)
}

// OnResize registers fn to run on every resize event.
func (r *Root) OnResize(fn func(cols, rows int)) {
	r.onResize = append(r.onResize, fn)
}

// PushOverlay shows o above everything else.
func (r *Root) PushOverlay(o Overlay) {
	r.overlays = append(r.overlays, o)
}

// PopOverlay removes the topmost overlay and reports whether there was one.
func (r *Root) PopOverlay() bool {
	if len(r.overlays) == 0 {
		return false
	}
	r.overlays = r.overlays[:len(r.overlays)-1]
	r.full = true
	return true
}

// Dispatch implements Engine.
func (r *Root) Dispatch(a *App, ev backend.Event) bool {
	switch ev.Type {
	case backend.EventKey:
		return r.dispatchKey(a, ev.Key)
	case backend.EventResize:
		for _, fn := range r.onResize {
			fn(ev.Cols, ev.Rows)
		}
	}
	return true
}

func (r *Root) dispatchKey(a *App, k key.Key) bool {
	if fns, ok := r.callbacks[k]; ok {
		for _, fn := range fns {
			fn(a)
		}
	}
	if r.quitKeys[k] {
		return false
	}
	if _, ok := r.callbacks[k]; ok {
		return true
	}

	if n := len(r.overlays); n > 0 {
		if h, ok := r.overlays[n-1].Component.(KeyHandler); ok {
			h.HandleKey(a, k)
		}
		return true
	}
	r.content.HandleKey(a, k)
	return true
}

// Layout implements Engine. A size change forces a full redraw.
func (r *Root) Layout(cols, rows int) {
	if cols == r.cols && rows == r.rows {
		return
	}
	r.cols, r.rows = cols, rows
	r.Invalidate()
}

// Invalidate drops cached output so the next frame redraws everything.
func (r *Root) Invalidate() {
	r.full = true
	r.prev = nil
	r.content.Invalidate()
	for _, o := range r.overlays {
		o.Component.Invalidate()
	}
}

// RenderFrame implements Engine. Rows identical to the previous frame are
// left out; rows that disappeared are blanked.
func (r *Root) RenderFrame() *backend.Frame {
	f := &backend.Frame{Clear: r.full}
	if r.cols <= 0 || r.rows <= 0 {
		return f
	}

	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)

	r.content.Render(buf, r.cols)
	compositeOverlays(buf, r.overlays, r.cols, r.rows)

	lines := buf.Lines
	if len(lines) > r.rows {
		lines = lines[:r.rows]
	}
	if row, col := extractCursorPosition(lines); row >= 0 {
		f.Cursor = &backend.Point{Col: col, Row: row}
	}

	for i, ln := range lines {
		if !r.full && i < len(r.prev) && r.prev[i] == ln {
			continue
		}
		f.Text(0, i, pad(ln.Text, r.cols), ln.Style)
	}
	if !r.full {
		for i := len(lines); i < len(r.prev); i++ {
			f.Text(0, i, strings.Repeat(" ", r.cols), backend.DefaultStyle)
		}
	}

	r.prev = append(r.prev[:0], lines...)
	r.full = false
	return f
}

// extractCursorPosition finds the CursorMarker in lines, removes it, and
// returns (row, col). Returns (-1, -1) if not found.
func extractCursorPosition(lines []Line) (row, col int) {
	for i, line := range lines {
		idx := strings.Index(line.Text, CursorMarker)
		if idx >= 0 {
			before := line.Text[:idx]
			lines[i].Text = before + line.Text[idx+len(CursorMarker):]
			return i, width.VisibleWidth(before)
		}
	}
	return -1, -1
}

// pad right-fills s with spaces to cols cells so stale cells are erased.
func pad(s string, cols int) string {
	w := width.VisibleWidth(s)
	if w >= cols {
		return s
	}
	return s + strings.Repeat(" ", cols-w)
}
