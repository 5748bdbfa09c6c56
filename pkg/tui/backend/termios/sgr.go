// ABOUTME: SGR encoding of backend styles, downsampled to the terminal's colour profile via termenv
// ABOUTME: Palette colours are emitted as-is when supported; RGB falls back to 256 or 16 colours

package termios

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

var attrCodes = []struct {
	attr backend.Attr
	code string
}{
	{backend.AttrBold, "1"},
	{backend.AttrDim, "2"},
	{backend.AttrItalic, "3"},
	{backend.AttrUnderline, "4"},
	{backend.AttrBlink, "5"},
	{backend.AttrReverse, "7"},
}

// sgr returns the escape sequence selecting st. It always starts from a
// reset so spans never inherit attributes.
func sgr(p termenv.Profile, st backend.Style) string {
	parts := []string{"0"}
	for _, a := range attrCodes {
		if st.Attrs&a.attr != 0 {
			parts = append(parts, a.code)
		}
	}
	if seq := colorSeq(p, st.Fg, false); seq != "" {
		parts = append(parts, seq)
	}
	if seq := colorSeq(p, st.Bg, true); seq != "" {
		parts = append(parts, seq)
	}
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

func colorSeq(p termenv.Profile, c backend.Color, bg bool) string {
	if c == backend.ColorDefault || c < 0 {
		return ""
	}
	var spec string
	if c.IsRGB() {
		r, g, b := c.RGB()
		spec = fmt.Sprintf("#%02x%02x%02x", r, g, b)
	} else {
		spec = strconv.Itoa(int(c & 0xff))
	}
	tc := p.Color(spec)
	if tc == nil {
		return ""
	}
	return tc.Sequence(bg)
}
