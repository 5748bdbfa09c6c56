// ABOUTME: TextView renders wrapped text in one style
// ABOUTME: Caches wrapped lines per width until the text or width changes

package tui

import (
	"github.com/mauromedda/termroot/pkg/tui/backend"
	"github.com/mauromedda/termroot/pkg/tui/width"
)

// TextView is a static block of text.
type TextView struct {
	text  string
	style backend.Style

	cached      []string
	cachedWidth int
}

// NewTextView returns a TextView in the default style.
func NewTextView(text string) *TextView {
	return &TextView{text: text, style: backend.DefaultStyle}
}

// SetText replaces the text.
func (v *TextView) SetText(text string) {
	if text == v.text {
		return
	}
	v.text = text
	v.cached = nil
}

// Text returns the current text.
func (v *TextView) Text() string { return v.text }

// SetStyle sets the style of every line.
func (v *TextView) SetStyle(st backend.Style) { v.style = st }

func (v *TextView) Render(out *RenderBuffer, w int) {
	if v.cached == nil || v.cachedWidth != w {
		v.cached = width.Wrap(v.text, w)
		v.cachedWidth = w
	}
	for _, line := range v.cached {
		out.WriteStyled(line, v.style)
	}
}

func (v *TextView) Invalidate() {
	v.cached = nil
}
