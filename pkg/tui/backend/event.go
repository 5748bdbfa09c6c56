// ABOUTME: Input events reported by backends
// ABOUTME: Key presses, resizes, and interrupts; dispatched in the order the backend reports them

package backend

import (
	"fmt"

	"github.com/mauromedda/termroot/pkg/tui/key"
)

// EventType enumerates the kinds of input events.
type EventType int

const (
	EventKey       EventType = iota // Key holds the pressed key
	EventResize                     // Cols and Rows hold the new screen size
	EventInterrupt                  // woken without input (e.g. a posted wake-up)
)

// Event is one unit of input.
type Event struct {
	Type EventType
	Key  key.Key
	Cols int
	Rows int
}

// KeyEvent wraps k in an Event.
func KeyEvent(k key.Key) Event {
	return Event{Type: EventKey, Key: k}
}

// ResizeEvent reports a new screen size.
func ResizeEvent(cols, rows int) Event {
	return Event{Type: EventResize, Cols: cols, Rows: rows}
}

func (e Event) String() string {
	switch e.Type {
	case EventKey:
		return "key " + e.Key.String()
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Cols, e.Rows)
	case EventInterrupt:
		return "interrupt"
	}
	return "unknown event"
}
