// ABOUTME: Conversion of backend styles to tcell styles

package tcellscreen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

func toColor(c backend.Color) tcell.Color {
	switch {
	case c < 0:
		return tcell.ColorDefault
	case c.IsRGB():
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	default:
		return tcell.PaletteColor(int(c & 0xff))
	}
}

func toStyle(st backend.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toColor(st.Fg)).
		Background(toColor(st.Bg)).
		Bold(st.Attrs&backend.AttrBold != 0).
		Dim(st.Attrs&backend.AttrDim != 0).
		Italic(st.Attrs&backend.AttrItalic != 0).
		Underline(st.Attrs&backend.AttrUnderline != 0).
		Blink(st.Attrs&backend.AttrBlink != 0).
		Reverse(st.Attrs&backend.AttrReverse != 0)
}
