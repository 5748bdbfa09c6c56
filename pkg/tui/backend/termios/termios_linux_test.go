// ABOUTME: PTY-backed tests for the termios backend: mode round trip, input polling, rendering
// ABOUTME: Linux only because termios flags are read back with TCGETS

//go:build linux

package termios

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"github.com/mauromedda/termroot/pkg/tui/backend"
	"github.com/mauromedda/termroot/pkg/tui/key"
)

// ptyPair is an open pty with everything written to the slave side
// captured from the master.
type ptyPair struct {
	ptmx *os.File
	tty  *os.File

	mu  sync.Mutex
	out bytes.Buffer
}

func openPTY(t *testing.T) *ptyPair {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: 100, Rows: 40}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}

	p := &ptyPair{ptmx: ptmx, tty: tty}
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 1024)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				p.mu.Lock()
				p.out.Write(buf[:n])
				p.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
		<-done
	})
	return p
}

// waitOutput waits until the captured output contains want.
func (p *ptyPair) waitOutput(t *testing.T, want string) string {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		got := p.out.String()
		p.mu.Unlock()
		if strings.Contains(got, want) {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	t.Fatalf("output never contained %q; got %q", want, p.out.String())
	return ""
}

func termios(t *testing.T, f *os.File) *unix.Termios {
	t.Helper()
	st, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	if err != nil {
		t.Fatalf("TCGETS: %v", err)
	}
	return st
}

// Tests here are sequential: the terminal claim is process-wide.

func TestOpenShutdown_RestoresMode(t *testing.T) {
	p := openPTY(t)
	before := termios(t, p.tty)

	b, err := OpenWith(Options{In: p.tty, Out: p.tty})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}

	during := termios(t, p.tty)
	if during.Lflag&unix.ICANON != 0 || during.Lflag&unix.ECHO != 0 {
		t.Errorf("terminal not in raw mode: lflag=%#x", during.Lflag)
	}
	if owner, held := backend.TerminalOwner(); !held || owner != backend.KindTermios {
		t.Errorf("terminal owner = %q, %v", owner, held)
	}

	if err := b.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	after := termios(t, p.tty)
	if after.Iflag != before.Iflag || after.Oflag != before.Oflag ||
		after.Cflag != before.Cflag || after.Lflag != before.Lflag {
		t.Errorf("termios not restored:\nbefore %+v\nafter  %+v", before, after)
	}
	if _, held := backend.TerminalOwner(); held {
		t.Error("terminal claim not released")
	}

	out := p.waitOutput(t, leaveSeq)
	if !strings.Contains(out, enterSeq) {
		t.Errorf("alternate screen never entered: %q", out)
	}
}

func TestOpen_SecondBackendIsBusy(t *testing.T) {
	p := openPTY(t)

	b, err := OpenWith(Options{In: p.tty, Out: p.tty})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	defer b.Shutdown()

	if _, err := OpenWith(Options{In: p.tty, Out: p.tty}); !errors.Is(err, backend.ErrTerminalBusy) {
		t.Errorf("second open: %v, want ErrTerminalBusy", err)
	}
}

func TestOpen_NotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if _, err := OpenWith(Options{In: r, Out: w}); !errors.Is(err, backend.ErrNoTerminal) {
		t.Errorf("OpenWith(pipe) = %v, want ErrNoTerminal", err)
	}
}

func TestPollEvent(t *testing.T) {
	p := openPTY(t)

	b, err := OpenWith(Options{In: p.tty, Out: p.tty})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	defer b.Shutdown()

	if _, ok, err := b.PollEvent(0); ok || err != nil {
		t.Fatalf("PollEvent on idle tty = ok %v err %v", ok, err)
	}

	if _, err := io.WriteString(p.ptmx, "q\x1b[A"); err != nil {
		t.Fatal(err)
	}

	ev, ok, err := b.PollEvent(2 * time.Second)
	if err != nil || !ok {
		t.Fatalf("PollEvent = ok %v err %v", ok, err)
	}
	if ev.Type != backend.EventKey || ev.Key != key.Rune('q') {
		t.Errorf("first event = %v, want key q", ev)
	}

	ev, ok, err = b.PollEvent(2 * time.Second)
	if err != nil || !ok {
		t.Fatalf("PollEvent = ok %v err %v", ok, err)
	}
	if ev.Key.Type != key.KeyUp {
		t.Errorf("second event = %v, want Up", ev)
	}
}

func TestRenderRefresh(t *testing.T) {
	p := openPTY(t)

	b, err := OpenWith(Options{In: p.tty, Out: p.tty})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	defer b.Shutdown()

	if cols, rows := b.Size(); cols != 100 || rows != 40 {
		t.Errorf("Size() = %dx%d, want 100x40", cols, rows)
	}

	f := &backend.Frame{Cursor: &backend.Point{Col: 0, Row: 3}}
	f.Text(2, 1, "hi", backend.Style{Fg: backend.ColorDefault, Bg: backend.ColorDefault, Attrs: backend.AttrBold})
	f.Text(0, 99, "offscreen", backend.DefaultStyle)
	if err := b.Render(f); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := b.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	out := p.waitOutput(t, syncEnd)
	if !strings.Contains(out, "\x1b[2;3H\x1b[0;1mhi") {
		t.Errorf("span not rendered: %q", out)
	}
	if strings.Contains(out, "offscreen") {
		t.Error("off-screen span was written")
	}
	if !strings.Contains(out, "\x1b[4;1H\x1b[?25h") {
		t.Errorf("cursor not placed: %q", out)
	}
}

func TestAfterShutdown(t *testing.T) {
	p := openPTY(t)

	b, err := OpenWith(Options{In: p.tty, Out: p.tty})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	if err := b.Shutdown(); err != nil {
		t.Fatal(err)
	}

	if _, _, err := b.PollEvent(0); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("PollEvent: %v, want ErrClosed", err)
	}
	if err := b.Render(&backend.Frame{}); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Render: %v, want ErrClosed", err)
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

// pollKey polls until a key event arrives or the deadline passes.
func pollKey(t *testing.T, b *Backend) key.Key {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		ev, ok, err := b.PollEvent(100 * time.Millisecond)
		if err != nil {
			t.Fatalf("PollEvent: %v", err)
		}
		if ok && ev.Type == backend.EventKey {
			return ev.Key
		}
	}
	t.Fatal("no key event before the deadline")
	return key.Key{}
}

func TestPollEvent_SequenceSplitAcrossReads(t *testing.T) {
	p := openPTY(t)

	b, err := OpenWith(Options{In: p.tty, Out: p.tty})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	defer b.Shutdown()
	b.escDelay = 2 * time.Second

	if _, err := io.WriteString(p.ptmx, "\x1b"); err != nil {
		t.Fatal(err)
	}
	ev, ok, err := b.PollEvent(2 * time.Second)
	if err != nil {
		t.Fatalf("PollEvent: %v", err)
	}
	if ok {
		t.Fatalf("lone ESC reported at once as %v", ev)
	}

	if _, err := io.WriteString(p.ptmx, "[A"); err != nil {
		t.Fatal(err)
	}
	if k := pollKey(t, b); k.Type != key.KeyUp {
		t.Errorf("key = %v, want Up", k)
	}
}

func TestPollEvent_LoneEscapeFlushes(t *testing.T) {
	p := openPTY(t)

	b, err := OpenWith(Options{In: p.tty, Out: p.tty})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	defer b.Shutdown()

	if _, err := io.WriteString(p.ptmx, "\x1b"); err != nil {
		t.Fatal(err)
	}
	if k := pollKey(t, b); k.Type != key.KeyEscape {
		t.Errorf("key = %v, want Escape", k)
	}

	// The held ESC is gone; the next read starts fresh.
	if _, err := io.WriteString(p.ptmx, "x"); err != nil {
		t.Fatal(err)
	}
	if k := pollKey(t, b); k != key.Rune('x') {
		t.Errorf("key = %v, want x", k)
	}
}

func TestShutdown_NoOutputAfterLeave(t *testing.T) {
	p := openPTY(t)

	b, err := OpenWith(Options{In: p.tty, Out: p.tty})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}

	f := &backend.Frame{}
	f.Text(0, 0, "stale-frame", backend.DefaultStyle)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if err := b.Render(f); err != nil {
				return
			}
			if err := b.Refresh(); err != nil {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	p.waitOutput(t, "stale-frame")
	if err := b.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	<-done

	if err := b.Refresh(); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Refresh after Shutdown = %v, want ErrClosed", err)
	}

	p.waitOutput(t, leaveSeq)
	time.Sleep(50 * time.Millisecond)
	p.mu.Lock()
	out := p.out.String()
	p.mu.Unlock()
	tail := out[strings.LastIndex(out, leaveSeq)+len(leaveSeq):]
	if strings.Contains(tail, "stale-frame") || strings.Contains(tail, syncBegin) {
		t.Errorf("output after leaving the alternate screen: %q", tail)
	}
}
