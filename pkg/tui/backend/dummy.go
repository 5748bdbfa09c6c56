// ABOUTME: Dummy backend: no device, no output, no input
// ABOUTME: Guaranteed fallback of automatic selection and the headless backend for tests

package backend

import "time"

const (
	defaultCols = 80
	defaultRows = 24

	// dummyIdle replaces an infinite wait; nothing would ever wake it.
	dummyIdle = 100 * time.Millisecond
)

// Dummy is a backend that performs no I/O. PollEvent never reports an
// event; the timeout is slept so a run loop over it does not spin, and an
// infinite (negative) timeout becomes a short idle wait.
type Dummy struct {
	latch ShutdownLatch
	cols  int
	rows  int
}

// NewDummy returns a dummy backend reporting the given size. Non-positive
// dimensions fall back to 80x24.
func NewDummy(cols, rows int) *Dummy {
	if cols <= 0 || rows <= 0 {
		cols, rows = defaultCols, defaultRows
	}
	return &Dummy{cols: cols, rows: rows}
}

func (d *Dummy) Kind() Kind { return KindDummy }

func (d *Dummy) Size() (int, int) { return d.cols, d.rows }

func (d *Dummy) PollEvent(timeout time.Duration) (Event, bool, error) {
	if d.latch.Closed() {
		return Event{}, false, ErrClosed
	}
	if timeout < 0 {
		timeout = dummyIdle
	}
	if timeout > 0 {
		time.Sleep(timeout)
	}
	return Event{}, false, nil
}

func (d *Dummy) Render(*Frame) error {
	if d.latch.Closed() {
		return ErrClosed
	}
	return nil
}

func (d *Dummy) Refresh() error {
	if d.latch.Closed() {
		return ErrClosed
	}
	return nil
}

func (d *Dummy) Shutdown() error {
	return d.latch.Shutdown(KindDummy, func() error { return nil })
}
