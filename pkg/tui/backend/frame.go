// ABOUTME: Render instructions: styled text spans placed on the cell grid, plus cursor state
// ABOUTME: Colors are default, 256-palette, or 24-bit RGB; clipping to the screen uses display width

package backend

import (
	"strings"

	"github.com/mauromedda/termroot/pkg/tui/width"
)

// Color is a terminal colour. ColorDefault leaves the terminal's own
// colour in place; 0..255 index the 256-colour palette; RGB values carry
// the rgbFlag bit.
type Color int32

const (
	ColorDefault Color = -1

	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7

	rgbFlag Color = 1 << 24
)

// RGB returns a 24-bit colour.
func RGB(r, g, b uint8) Color {
	return rgbFlag | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// IsRGB reports whether c is a 24-bit colour.
func (c Color) IsRGB() bool {
	return c >= 0 && c&rgbFlag != 0
}

// RGB returns the components of a 24-bit colour.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Attr is a bit set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse

	AttrNone Attr = 0
)

// Style is the look of a span.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// DefaultStyle uses the terminal's colours and no attributes.
var DefaultStyle = Style{Fg: ColorDefault, Bg: ColorDefault}

// Point is a zero-based cell position.
type Point struct {
	Col int
	Row int
}

// Span is a run of text drawn left to right from (Col, Row). Text must not
// contain newlines.
type Span struct {
	Col   int
	Row   int
	Text  string
	Style Style
}

// Frame is one batch of render instructions.
type Frame struct {
	// Clear erases the whole screen before drawing the spans.
	Clear bool
	Spans []Span
	// Cursor places a visible cursor; nil hides it.
	Cursor *Point
}

// Text appends a span to the frame.
func (f *Frame) Text(col, row int, text string, style Style) {
	f.Spans = append(f.Spans, Span{Col: col, Row: row, Text: text, Style: style})
}

// ClipSpan trims s to the cols x rows screen. ok is false when nothing
// of the span is visible.
func ClipSpan(s Span, cols, rows int) (Span, bool) {
	if s.Row < 0 || s.Row >= rows || s.Col >= cols || s.Text == "" {
		return s, false
	}
	if s.Col < 0 {
		// Drop cells left of the screen. A wide cluster straddling the
		// edge is dropped whole, shifting the rest one cell right.
		skip := -s.Col
		var b strings.Builder
		col, start := 0, -1
		for _, c := range width.Clusters(s.Text) {
			if col >= skip {
				if start < 0 {
					start = col - skip
				}
				b.WriteString(c.Text)
			}
			col += c.Width
		}
		if start < 0 {
			return s, false
		}
		s.Text = b.String()
		s.Col = start
	}
	s.Text = width.Clip(s.Text, cols-s.Col)
	return s, s.Text != ""
}
