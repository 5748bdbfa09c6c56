// ABOUTME: Overlay layers drawn on top of the main content; the topmost one is modal
// ABOUTME: Supports centered, top-anchored, and bottom-anchored positioning

package tui

// OverlayPosition defines where an overlay is rendered.
type OverlayPosition int

const (
	OverlayCenter OverlayPosition = iota
	OverlayTop
	OverlayBottom
)

// Overlay is a component rendered over the main container. While any
// overlay is shown, keys go to the topmost one only.
type Overlay struct {
	Component Component
	Position  OverlayPosition
	Width     int // 0 means use the screen width
	Height    int // 0 means auto-size from render output
}

// compositeOverlays renders overlays on top of the main buffer.
func compositeOverlays(buf *RenderBuffer, overlays []Overlay, w, h int) {
	for _, o := range overlays {
		overlayBuf := AcquireBuffer()
		ow := o.Width
		if ow <= 0 || ow > w {
			ow = w
		}
		o.Component.Render(overlayBuf, ow)

		oh := overlayBuf.Len()
		if o.Height > 0 && oh > o.Height {
			oh = o.Height
		}

		var startRow int
		switch o.Position {
		case OverlayCenter:
			startRow = (h - oh) / 2
		case OverlayTop:
			startRow = 0
		case OverlayBottom:
			startRow = h - oh
		}
		if startRow < 0 {
			startRow = 0
		}

		for buf.Len() < startRow+oh {
			buf.WriteLine("")
		}
		for i := 0; i < oh; i++ {
			buf.Lines[startRow+i] = overlayBuf.Lines[i]
		}

		ReleaseBuffer(overlayBuf)
	}
}
