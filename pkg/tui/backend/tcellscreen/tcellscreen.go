// ABOUTME: Backend implementation over a tcell.Screen: event pump, cell rendering, shutdown
// ABOUTME: Wrap takes any initialised-or-not screen, including tcell's simulation screen

package tcellscreen

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mauromedda/termroot/pkg/tui/backend"
	"github.com/mauromedda/termroot/pkg/tui/width"
)

const eventBuffer = 64

// Backend drives a tcell screen.
type Backend struct {
	kind    backend.Kind
	screen  tcell.Screen
	events  chan tcell.Event
	quit    chan struct{}
	release func()
	latch   backend.ShutdownLatch
}

// Wrap claims the terminal, initialises s and starts pumping its events.
// On error s is left uninitialised and the claim is released.
func Wrap(kind backend.Kind, s tcell.Screen) (*Backend, error) {
	release, err := backend.ClaimTerminal(kind)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		release()
		return nil, fmt.Errorf("initialising %s screen: %w", kind, err)
	}
	s.SetStyle(tcell.StyleDefault)
	s.HideCursor()
	s.Clear()

	b := &Backend{
		kind:    kind,
		screen:  s,
		events:  make(chan tcell.Event, eventBuffer),
		quit:    make(chan struct{}),
		release: release,
	}
	go s.ChannelEvents(b.events, b.quit)
	return b, nil
}

func (b *Backend) Kind() backend.Kind { return b.kind }

func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// Screen exposes the underlying tcell screen.
func (b *Backend) Screen() tcell.Screen { return b.screen }

// PollEvent waits for the next event tcell reports that has a backend
// equivalent. Mouse, paste and focus events are dropped.
func (b *Backend) PollEvent(timeout time.Duration) (backend.Event, bool, error) {
	if b.latch.Closed() {
		return backend.Event{}, false, backend.ErrClosed
	}

	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}

	for {
		var (
			tev tcell.Event
			ok  bool
		)
		if timeout == 0 {
			select {
			case tev, ok = <-b.events:
			default:
				return backend.Event{}, false, nil
			}
		} else {
			select {
			case tev, ok = <-b.events:
			case <-expired:
				return backend.Event{}, false, nil
			}
		}
		if !ok {
			return backend.Event{}, false, backend.ErrClosed
		}
		if ev, ok := convertEvent(tev); ok {
			return ev, true, nil
		}
	}
}

// Render draws f into tcell's back buffer.
func (b *Backend) Render(f *backend.Frame) error {
	if b.latch.Closed() {
		return backend.ErrClosed
	}
	if f == nil {
		return nil
	}

	if f.Clear {
		b.screen.Clear()
	}
	cols, rows := b.screen.Size()
	for _, s := range f.Spans {
		s, ok := backend.ClipSpan(s, cols, rows)
		if !ok {
			continue
		}
		st := toStyle(s.Style)
		col := s.Col
		for _, c := range width.Clusters(s.Text) {
			if c.Width == 0 {
				continue
			}
			runes := []rune(c.Text)
			b.screen.SetContent(col, s.Row, runes[0], runes[1:], st)
			col += c.Width
		}
	}
	if f.Cursor != nil {
		b.screen.ShowCursor(f.Cursor.Col, f.Cursor.Row)
	} else {
		b.screen.HideCursor()
	}
	return nil
}

// Refresh pushes the changed cells to the terminal.
func (b *Backend) Refresh() error {
	if b.latch.Closed() {
		return backend.ErrClosed
	}
	b.screen.Show()
	return nil
}

// Shutdown stops the event pump and finalises the screen, which restores
// the terminal mode tcell saved on Init.
func (b *Backend) Shutdown() error {
	return b.latch.Shutdown(b.kind, func() error {
		defer b.release()
		close(b.quit)
		b.screen.Fini()
		return nil
	})
}

// convertEvent maps a tcell event onto a backend event.
func convertEvent(ev tcell.Event) (backend.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return backend.KeyEvent(convertKey(ev)), true
	case *tcell.EventResize:
		cols, rows := ev.Size()
		return backend.ResizeEvent(cols, rows), true
	case *tcell.EventInterrupt:
		return backend.Event{Type: backend.EventInterrupt}, true
	}
	return backend.Event{}, false
}
