// ABOUTME: Run loop driver: drain updates, poll and dispatch input, lay out, render, refresh
// ABOUTME: Single goroutine; the input poll is the only place the loop waits

package tui

import (
	"context"
	"errors"

	"github.com/mauromedda/termroot/internal/log"
	"github.com/mauromedda/termroot/pkg/tui/backend"
)

// Run drives the App until a stop is requested (Quit, Dispatch returning
// false, or ctx being done) or a backend operation fails. A requested stop
// returns nil; a backend failure returns a *RunError.
//
// The App is closed on every exit path, including a panic in an engine
// callback: the terminal is restored before Run returns or the panic
// continues. Run can be called once.
func (a *App) Run(ctx context.Context) (err error) {
	if !a.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		if a.State() == StateStopped || a.isClosed() {
			return ErrClosed
		}
		return ErrAlreadyRunning
	}
	log.Debug("app: running on %s backend", a.Backend().Kind())

	if ctx.Err() != nil {
		a.Quit()
	}
	stopWatch := context.AfterFunc(ctx, a.Quit)
	defer stopWatch()

	defer func() {
		a.state.Store(int32(StateStopped))
		a.markDone()
		if cerr := a.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		log.Debug("app: stopped")
	}()

	return a.loop()
}

func (a *App) loop() error {
	for iter := 1; ; iter++ {
		if a.stopRequested() {
			return nil
		}
		a.drainUpdates()

		if err := a.pollAndDispatch(iter); err != nil {
			return err
		}
		if a.stopRequested() {
			return nil
		}

		if err := a.draw(iter); err != nil {
			return err
		}
	}
}

func (a *App) stopRequested() bool {
	return a.State() != StateRunning || a.isClosed()
}

// drainUpdates runs the updates queued so far. Updates queued while
// draining wait for the next iteration.
func (a *App) drainUpdates() {
	for n := len(a.updates); n > 0; n-- {
		select {
		case fn := <-a.updates:
			fn(a)
		default:
			return
		}
	}
}

// pollAndDispatch waits up to the poll timeout for the first event, then
// takes whatever else is already pending.
func (a *App) pollAndDispatch(iter int) error {
	timeout := a.pollTimeout
	for {
		if a.stopRequested() {
			return nil
		}
		ev, ok, err := a.Backend().PollEvent(timeout)
		if err != nil {
			return &RunError{Op: "poll", Iteration: iter, Err: err}
		}
		if !ok {
			return nil
		}
		timeout = 0

		if ev.Type == backend.EventResize {
			a.engine.Layout(ev.Cols, ev.Rows)
		}
		if !a.engine.Dispatch(a, ev) {
			a.Quit()
		}
	}
}

func (a *App) draw(iter int) error {
	b := a.Backend()
	a.engine.Layout(b.Size())

	if err := b.Render(a.engine.RenderFrame()); err != nil {
		return &RunError{Op: "render", Iteration: iter, Err: err}
	}
	if err := b.Refresh(); err != nil {
		return &RunError{Op: "refresh", Iteration: iter, Err: err}
	}
	return nil
}
