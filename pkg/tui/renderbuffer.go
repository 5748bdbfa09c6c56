// ABOUTME: Pooled buffer of styled lines for view rendering; recycled via sync.Pool
// ABOUTME: Components write lines here; Root diffs them against the previous frame

package tui

import (
	"sync"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

var bufferPool = sync.Pool{
	New: func() any {
		return &RenderBuffer{
			Lines: make([]Line, 0, 64),
		}
	},
}

// AcquireBuffer gets a RenderBuffer from the pool.
func AcquireBuffer() *RenderBuffer {
	buf := bufferPool.Get().(*RenderBuffer)
	buf.Reset()
	return buf
}

// ReleaseBuffer returns a RenderBuffer to the pool.
func ReleaseBuffer(buf *RenderBuffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// Line is one row of output drawn in a single style.
type Line struct {
	Text  string
	Style backend.Style
}

// RenderBuffer collects the lines of one frame.
type RenderBuffer struct {
	Lines []Line
}

// WriteLine appends a line in the default style.
func (b *RenderBuffer) WriteLine(text string) {
	b.Lines = append(b.Lines, Line{Text: text, Style: backend.DefaultStyle})
}

// WriteStyled appends a line drawn in style.
func (b *RenderBuffer) WriteStyled(text string, style backend.Style) {
	b.Lines = append(b.Lines, Line{Text: text, Style: style})
}

// Reset clears the buffer for reuse without deallocating.
func (b *RenderBuffer) Reset() {
	b.Lines = b.Lines[:0]
}

// Len returns the number of lines in the buffer.
func (b *RenderBuffer) Len() int {
	return len(b.Lines)
}
