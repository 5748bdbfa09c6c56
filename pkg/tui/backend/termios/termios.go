// ABOUTME: Raw-mode ANSI backend on x/term and x/sys/unix; termion-style
// ABOUTME: Saves and restores termios state, alternate screen, and cursor visibility

//go:build unix

package termios

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/mauromedda/termroot/pkg/tui/backend"
	"github.com/mauromedda/termroot/pkg/tui/key"
)

const (
	enterSeq = "\x1b[?1049h\x1b[?25l\x1b[H\x1b[2J" // alt screen, hide cursor, clear
	leaveSeq = "\x1b[0m\x1b[?25h\x1b[?1049l"       // reset SGR, show cursor, main screen

	syncBegin = "\x1b[?2026h"
	syncEnd   = "\x1b[?2026l"

	// escapeDelay is how long a trailing ESC or a cut sequence waits for
	// the rest of its bytes before it is reported as read.
	escapeDelay = 50 * time.Millisecond
)

func init() {
	backend.Register(backend.Candidate{
		Kind:      backend.KindTermios,
		Available: Available,
		Open:      Open,
	})
}

// Options selects the device files. Zero values mean os.Stdin/os.Stdout.
type Options struct {
	In  *os.File
	Out *os.File
}

// Backend drives a tty directly.
type Backend struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int

	oldState *term.State
	release  func()
	latch    backend.ShutdownLatch
	profile  termenv.Profile

	// mu guards the output buffer and the input decode state. It is not
	// held while PollEvent waits on the fd.
	mu        sync.Mutex
	buf       bytes.Buffer
	pending   []backend.Event
	readBuf   []byte
	dec       key.Decoder
	partialAt time.Time
	escDelay  time.Duration
	resizeCh  chan os.Signal
}

// Available reports ErrNoTerminal unless stdin and stdout are terminals.
func Available() error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return backend.ErrNoTerminal
	}
	return nil
}

// Open opens the backend on stdin/stdout.
func Open() (backend.Backend, error) {
	return OpenWith(Options{})
}

// OpenWith opens the backend on the given files and takes exclusive
// control of the terminal.
func OpenWith(opts Options) (*Backend, error) {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if !isatty.IsTerminal(in.Fd()) || !isatty.IsTerminal(out.Fd()) {
		return nil, backend.ErrNoTerminal
	}

	release, err := backend.ClaimTerminal(backend.KindTermios)
	if err != nil {
		return nil, err
	}

	b := &Backend{
		in:       in,
		out:      out,
		inFd:     int(in.Fd()),
		outFd:    int(out.Fd()),
		release:  release,
		profile:  termenv.NewOutput(out).EnvColorProfile(),
		readBuf:  make([]byte, 256),
		escDelay: escapeDelay,
	}

	state, err := term.MakeRaw(b.inFd)
	if err != nil {
		release()
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}
	b.oldState = state

	if _, err := io.WriteString(out, enterSeq); err != nil {
		_ = term.Restore(b.inFd, state)
		release()
		return nil, fmt.Errorf("switching to alternate screen: %w", err)
	}

	b.resizeCh = make(chan os.Signal, 1)
	signal.Notify(b.resizeCh, syscall.SIGWINCH)
	return b, nil
}

func (b *Backend) Kind() backend.Kind { return backend.KindTermios }

// Size returns the terminal size, or 80x24 if the ioctl fails.
func (b *Backend) Size() (int, int) {
	cols, rows, err := term.GetSize(b.outFd)
	if err != nil || cols <= 0 || rows <= 0 {
		return 80, 24
	}
	return cols, rows
}

// PollEvent reports a pending resize first, then queued keys from an
// earlier read, then waits on the input fd. A sequence cut by a read
// boundary is held for the escape delay before it is parsed as it stands.
func (b *Backend) PollEvent(timeout time.Duration) (backend.Event, bool, error) {
	b.mu.Lock()
	if b.latch.Closed() {
		b.mu.Unlock()
		return backend.Event{}, false, backend.ErrClosed
	}
	if ev, ok := b.takeResize(); ok {
		b.mu.Unlock()
		return ev, true, nil
	}
	if ev, ok := b.popPending(); ok {
		b.mu.Unlock()
		return ev, true, nil
	}
	if b.dec.Pending() {
		left := b.escDelay - time.Since(b.partialAt)
		if left <= 0 {
			b.queueKeys(b.dec.Flush())
			ev, ok := b.popPending()
			b.mu.Unlock()
			return ev, ok, nil
		}
		if timeout < 0 || timeout > left {
			timeout = left
		}
	}
	b.mu.Unlock()

	ready, err := waitReadable(b.inFd, timeout)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latch.Closed() {
		return backend.Event{}, false, backend.ErrClosed
	}
	if err != nil {
		return backend.Event{}, false, fmt.Errorf("polling input: %w", err)
	}
	if !ready {
		if ev, ok := b.takeResize(); ok {
			return ev, true, nil
		}
		if b.dec.Pending() && time.Since(b.partialAt) >= b.escDelay {
			b.queueKeys(b.dec.Flush())
		}
		ev, ok := b.popPending()
		return ev, ok, nil
	}

	n, err := unix.Read(b.inFd, b.readBuf)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return backend.Event{}, false, nil
		}
		return backend.Event{}, false, fmt.Errorf("reading input: %w", err)
	}
	if n == 0 {
		return backend.Event{}, false, fmt.Errorf("reading input: %w", io.EOF)
	}

	b.queueKeys(b.dec.Feed(b.readBuf[:n]))
	if b.dec.Pending() {
		b.partialAt = time.Now()
	}
	ev, ok := b.popPending()
	return ev, ok, nil
}

// Render encodes f into the output buffer.
func (b *Backend) Render(f *backend.Frame) error {
	if b.latch.Closed() {
		return backend.ErrClosed
	}
	if f == nil {
		return nil
	}

	cols, rows := b.Size()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latch.Closed() {
		return backend.ErrClosed
	}

	if f.Clear {
		b.buf.WriteString("\x1b[0m\x1b[H\x1b[2J")
	}
	for _, s := range f.Spans {
		s, ok := backend.ClipSpan(s, cols, rows)
		if !ok {
			continue
		}
		fmt.Fprintf(&b.buf, "\x1b[%d;%dH", s.Row+1, s.Col+1)
		b.buf.WriteString(sgr(b.profile, s.Style))
		b.buf.WriteString(s.Text)
		b.buf.WriteString("\x1b[0m")
	}
	if f.Cursor != nil {
		fmt.Fprintf(&b.buf, "\x1b[%d;%dH\x1b[?25h", f.Cursor.Row+1, f.Cursor.Col+1)
	} else {
		b.buf.WriteString("\x1b[?25l")
	}
	return nil
}

// Refresh writes the buffered output in one synchronized update.
func (b *Backend) Refresh() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latch.Closed() {
		return backend.ErrClosed
	}
	if b.buf.Len() == 0 {
		return nil
	}

	out := make([]byte, 0, len(syncBegin)+b.buf.Len()+len(syncEnd))
	out = append(out, syncBegin...)
	out = append(out, b.buf.Bytes()...)
	out = append(out, syncEnd...)
	b.buf.Reset()

	if _, err := b.out.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Shutdown leaves the alternate screen, shows the cursor, restores the
// saved termios state, and releases the terminal claim. The latch is
// closed before b.mu is taken, so no frame is written after leaveSeq.
func (b *Backend) Shutdown() error {
	return b.latch.Shutdown(backend.KindTermios, func() error {
		defer b.release()
		signal.Stop(b.resizeCh)

		b.mu.Lock()
		defer b.mu.Unlock()
		b.buf.Reset()
		b.pending = nil

		var errs []error
		if _, err := io.WriteString(b.out, leaveSeq); err != nil {
			errs = append(errs, fmt.Errorf("leaving alternate screen: %w", err))
		}
		if err := term.Restore(b.inFd, b.oldState); err != nil {
			errs = append(errs, fmt.Errorf("restoring terminal mode: %w", err))
		}
		return errors.Join(errs...)
	})
}

func (b *Backend) queueKeys(keys []key.Key) {
	for _, k := range keys {
		b.pending = append(b.pending, backend.KeyEvent(k))
	}
}

func (b *Backend) takeResize() (backend.Event, bool) {
	select {
	case <-b.resizeCh:
		cols, rows := b.Size()
		return backend.ResizeEvent(cols, rows), true
	default:
		return backend.Event{}, false
	}
}

func (b *Backend) popPending() (backend.Event, bool) {
	if len(b.pending) == 0 {
		return backend.Event{}, false
	}
	ev := b.pending[0]
	b.pending = b.pending[1:]
	return ev, true
}

// waitReadable polls fd for input. EINTR (e.g. SIGWINCH) counts as a
// timeout so the caller can look at the resize channel.
func waitReadable(fd int, timeout time.Duration) (bool, error) {
	ms := -1
	if timeout >= 0 {
		ms = int((timeout + time.Millisecond - 1) / time.Millisecond)
	}
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 && fds[0].Revents&unix.POLLIN == 0 {
		return false, io.EOF
	}
	return true, nil
}
