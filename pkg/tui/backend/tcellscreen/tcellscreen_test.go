// ABOUTME: Tests for the tcell adapter on tcell's simulation screen
// ABOUTME: Sequential: every test claims the process-wide terminal

package tcellscreen

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

func openSim(t *testing.T) (*Backend, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	b, err := Wrap(backend.KindTcell, s)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	t.Cleanup(func() {
		if !b.latch.Closed() {
			_ = b.Shutdown()
		}
	})
	return b, s
}

func TestWrap_ClaimsTerminal(t *testing.T) {
	b, _ := openSim(t)

	if owner, held := backend.TerminalOwner(); !held || owner != backend.KindTcell {
		t.Errorf("TerminalOwner() = %q, %v", owner, held)
	}
	if _, err := Wrap(backend.KindTerminfo, tcell.NewSimulationScreen("")); !errors.Is(err, backend.ErrTerminalBusy) {
		t.Errorf("second Wrap: %v, want ErrTerminalBusy", err)
	}

	if err := b.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, held := backend.TerminalOwner(); held {
		t.Error("claim not released by Shutdown")
	}
}

func TestPollEvent(t *testing.T) {
	b, s := openSim(t)

	if _, ok, err := b.PollEvent(0); ok || err != nil {
		t.Fatalf("PollEvent(0) on empty queue = ok %v err %v", ok, err)
	}

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ev, ok, err := b.PollEvent(time.Second)
	if err != nil || !ok {
		t.Fatalf("PollEvent = ok %v err %v", ok, err)
	}
	if ev.Type != backend.EventKey || ev.Key.Rune != 'q' {
		t.Errorf("event = %v, want key q", ev)
	}

	if err := s.PostEvent(tcell.NewEventResize(100, 30)); err != nil {
		t.Fatal(err)
	}
	ev, ok, err = b.PollEvent(time.Second)
	if err != nil || !ok {
		t.Fatalf("PollEvent = ok %v err %v", ok, err)
	}
	if ev != backend.ResizeEvent(100, 30) {
		t.Errorf("event = %v, want resize 100x30", ev)
	}
}

func TestPollEvent_DropsMouse(t *testing.T) {
	b, s := openSim(t)

	s.InjectMouse(3, 4, tcell.Button1, tcell.ModNone)
	if ev, ok, err := b.PollEvent(50 * time.Millisecond); ok || err != nil {
		t.Errorf("PollEvent after mouse = %v ok %v err %v, want timeout", ev, ok, err)
	}
}

func TestRender(t *testing.T) {
	b, s := openSim(t)

	style := backend.Style{Fg: backend.ColorRed, Bg: backend.ColorDefault, Attrs: backend.AttrBold}
	f := &backend.Frame{Clear: true, Cursor: &backend.Point{Col: 5, Row: 6}}
	f.Text(1, 2, "hi你", style)
	f.Text(-1, 3, "xyz", backend.DefaultStyle)
	if err := b.Render(f); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := b.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	cells, w, _ := s.GetContents()
	at := func(col, row int) tcell.SimCell { return cells[row*w+col] }

	if got := string(at(1, 2).Runes); got != "h" {
		t.Errorf("cell (1,2) = %q, want h", got)
	}
	if got := string(at(3, 2).Runes); got != "你" {
		t.Errorf("cell (3,2) = %q, want 你", got)
	}
	fg, _, attrs := at(1, 2).Style.Decompose()
	if fg != tcell.PaletteColor(1) || attrs&tcell.AttrBold == 0 {
		t.Errorf("cell (1,2) style fg=%v attrs=%v, want red bold", fg, attrs)
	}
	if got := string(at(0, 3).Runes); got != "y" {
		t.Errorf("left-clipped span starts with %q, want y", got)
	}

	x, y, visible := s.GetCursor()
	if !visible || x != 5 || y != 6 {
		t.Errorf("cursor = (%d,%d) visible=%v, want (5,6) visible", x, y, visible)
	}
}

func TestAfterShutdown(t *testing.T) {
	b, _ := openSim(t)

	if err := b.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := b.PollEvent(0); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("PollEvent: %v, want ErrClosed", err)
	}
	if err := b.Refresh(); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Refresh: %v, want ErrClosed", err)
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, backend.ErrAlreadyShutdown) {
			t.Errorf("second Shutdown recovered %v, want ErrAlreadyShutdown", r)
		}
	}()
	_ = b.Shutdown()
}
