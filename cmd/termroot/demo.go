// ABOUTME: Demo screen shown by the binary: greeting, live clock, screen size and key help
// ABOUTME: Background updates reach the UI only through App.QueueUpdate

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mauromedda/termroot/pkg/tui"
	"github.com/mauromedda/termroot/pkg/tui/backend"
	"github.com/mauromedda/termroot/pkg/tui/key"
)

const clockLayout = "15:04:05"

type demo struct {
	root   *tui.Root
	title  *tui.TextView
	clock  *tui.TextView
	size   *tui.TextView
	status *tui.TextView
	help   *tui.TextView
}

func newDemo() *demo {
	d := &demo{
		root:   tui.NewRoot(),
		title:  tui.NewTextView("termroot"),
		clock:  tui.NewTextView(""),
		size:   tui.NewTextView(""),
		status: tui.NewTextView(""),
		help:   tui.NewTextView("q or Ctrl+C quits, ? toggles help"),
	}
	d.title.SetStyle(backend.Style{Fg: backend.ColorCyan, Bg: backend.ColorDefault, Attrs: backend.AttrBold})
	d.status.SetStyle(backend.Style{Fg: backend.ColorDefault, Bg: backend.ColorDefault, Attrs: backend.AttrDim})

	d.root.Container().Add(d.title)
	d.root.Container().Add(d.clock)
	d.root.Container().Add(d.size)
	d.root.Container().Add(d.status)

	d.root.AddQuitKey(key.Rune('q'))
	d.root.AddGlobalCallback(key.Rune('?'), d.toggleHelp)
	d.root.OnResize(func(cols, rows int) {
		d.size.SetText(fmt.Sprintf("screen %dx%d", cols, rows))
	})
	return d
}

// attach fills in what depends on the opened backend.
func (d *demo) attach(a *tui.App) {
	cols, rows := a.ScreenSize()
	d.size.SetText(fmt.Sprintf("screen %dx%d", cols, rows))
	d.status.SetText("backend " + string(a.Backend().Kind()))
	d.tick(time.Now())
}

func (d *demo) tick(now time.Time) {
	d.clock.SetText(now.Format(clockLayout))
}

func (d *demo) setStatus(msg string) {
	d.status.SetText(msg)
}

func (d *demo) toggleHelp(*tui.App) {
	if d.root.PopOverlay() {
		return
	}
	d.root.PushOverlay(tui.Overlay{Component: d.help, Position: tui.OverlayBottom})
}

// runClock queues a clock update every interval until ctx is done.
func (d *demo) runClock(ctx context.Context, a *tui.App, interval time.Duration) error {
	defer tui.RecoverGoroutine(a)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			a.QueueUpdate(func(*tui.App) { d.tick(now) })
		}
	}
}
