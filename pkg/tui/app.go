// ABOUTME: App is the application root: it owns one backend and one engine for its lifetime
// ABOUTME: Constructors pick the backend by priority scan, by name, or use the dummy

package tui

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mauromedda/termroot/internal/log"
	"github.com/mauromedda/termroot/pkg/tui/backend"
)

const (
	// DefaultPollTimeout bounds how long one iteration waits for input,
	// and so how late a queued update can run.
	DefaultPollTimeout = 30 * time.Millisecond

	defaultQueueSize = 256
)

// Option configures an App.
type Option func(*App)

// WithSelector sets the selector used by NewDefault, NewNamed and NewDummy.
func WithSelector(s *backend.Selector) Option {
	return func(a *App) {
		if s != nil {
			a.selector = s
		}
	}
}

// WithPollTimeout sets how long each iteration waits for input. Zero
// busy-polls; negative values are ignored.
func WithPollTimeout(d time.Duration) Option {
	return func(a *App) {
		if d >= 0 {
			a.pollTimeout = d
		}
	}
}

// WithQueueSize sets the capacity of the QueueUpdate queue.
func WithQueueSize(n int) Option {
	return func(a *App) {
		if n > 0 {
			a.queueSize = n
		}
	}
}

// App owns the terminal for its lifetime. Printing to stdout while an App
// is open corrupts the screen; log to a file instead.
//
// Except for QueueUpdate, Quit, State and Backend, methods must be called
// from the goroutine that calls Run (or, before Run, the constructing one).
type App struct {
	engine      Engine
	selector    *backend.Selector
	pollTimeout time.Duration
	queueSize   int

	mu      sync.Mutex
	backend backend.Backend
	closed  bool

	state    atomic.Int32
	updates  chan func(*App)
	done     chan struct{}
	doneOnce sync.Once
}

func newApp(e Engine, opts []Option) *App {
	if e == nil {
		e = NewRoot()
	}
	a := &App{
		engine:      e,
		pollTimeout: DefaultPollTimeout,
		queueSize:   defaultQueueSize,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.selector == nil {
		a.selector = backend.NewSelector()
	}
	a.updates = make(chan func(*App), a.queueSize)
	return a
}

// NewWithBackend wraps an already opened backend. A nil engine gets an
// empty Root.
func NewWithBackend(b backend.Backend, e Engine, opts ...Option) *App {
	a := newApp(e, opts)
	if b == nil {
		b = backend.NewDummy(0, 0)
	}
	a.backend = b
	log.Debug("app: created on %s backend", b.Kind())
	return a
}

// NewDefault opens the highest-priority backend that works here, falling
// back to the dummy backend. It never fails.
func NewDefault(e Engine, opts ...Option) *App {
	a := newApp(e, opts)
	a.backend = a.selector.SelectDefault()
	log.Debug("app: created on %s backend", a.backend.Kind())
	return a
}

// NewNamed opens exactly the named backend. See backend.Selector.SelectNamed
// for the error and fallback rules.
func NewNamed(kind backend.Kind, e Engine, opts ...Option) (*App, error) {
	a := newApp(e, opts)
	b, err := a.selector.SelectNamed(kind)
	if err != nil {
		return nil, err
	}
	a.backend = b
	log.Debug("app: created on %s backend", b.Kind())
	return a, nil
}

// NewDummy returns an App on the headless dummy backend.
func NewDummy(e Engine, opts ...Option) *App {
	a := newApp(e, opts)
	a.backend = a.selector.Dummy()
	log.Debug("app: created on %s backend", a.backend.Kind())
	return a
}

// Backend returns the backend currently owned by the App.
func (a *App) Backend() backend.Backend {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.backend
}

// Engine returns the engine the App drives.
func (a *App) Engine() Engine { return a.engine }

// ScreenSize returns the backend's screen size in cells.
func (a *App) ScreenSize() (cols, rows int) {
	return a.Backend().Size()
}

// SetBackend shuts the current backend down and adopts b. The shutdown
// error, if any, is returned, but b is adopted regardless. On a closed
// App, b is not adopted and stays owned by the caller.
func (a *App) SetBackend(b backend.Backend) error {
	if b == nil {
		return fmt.Errorf("tui: SetBackend with nil backend")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}

	old := a.backend
	err := old.Shutdown()
	a.backend = b
	if inv, ok := a.engine.(invalidator); ok {
		inv.Invalidate()
	}
	log.Debug("app: backend %s replaced by %s", old.Kind(), b.Kind())
	if err != nil {
		return fmt.Errorf("shutting down %s backend: %w", old.Kind(), err)
	}
	return nil
}

// SwitchBackend replaces the backend, releasing the terminal before the
// replacement is opened: the current backend is shut down first, then open
// runs. If open fails, the App carries on with the dummy backend and the
// open error is returned. Use it instead of SetBackend when the new backend
// needs the terminal the current one holds. While Run is active, call it
// from the loop goroutine, for example inside QueueUpdate.
func (a *App) SwitchBackend(open func() (backend.Backend, error)) error {
	if open == nil {
		return fmt.Errorf("tui: SwitchBackend with nil open func")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}

	old := a.backend
	var errs []error
	if err := old.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("shutting down %s backend: %w", old.Kind(), err))
	}

	next, err := open()
	if err == nil && next == nil {
		err = errors.New("open returned no backend")
	}
	if err != nil {
		next = a.selector.Dummy()
		errs = append(errs, fmt.Errorf("opening replacement for %s backend: %w", old.Kind(), err))
		log.Warn("app: %v; continuing on %s", err, next.Kind())
	}

	a.backend = next
	if inv, ok := a.engine.(invalidator); ok {
		inv.Invalidate()
	}
	log.Debug("app: backend %s switched to %s", old.Kind(), next.Kind())
	return errors.Join(errs...)
}

// SwitchTo is SwitchBackend opening kind through the App's selector.
func (a *App) SwitchTo(kind backend.Kind) error {
	return a.SwitchBackend(func() (backend.Backend, error) {
		return a.selector.SelectNamed(kind)
	})
}

// Close shuts the backend down, restoring the terminal, and marks the App
// closed. It is safe to call more than once; only the first call reaches
// the backend.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	b := a.backend
	a.mu.Unlock()

	err := b.Shutdown()

	a.state.CompareAndSwap(int32(StateIdle), int32(StateStopped))
	a.markDone()
	log.Debug("app: closed %s backend", b.Kind())
	if err != nil {
		return fmt.Errorf("shutting down %s backend: %w", b.Kind(), err)
	}
	return nil
}

// State reports the run state.
func (a *App) State() State {
	return State(a.state.Load())
}

// Quit requests a stop. It takes effect before the next event dispatch or
// at the top of the next iteration, whichever comes first. Quit outside
// Run does nothing.
func (a *App) Quit() {
	if a.state.CompareAndSwap(int32(StateRunning), int32(StateStopping)) {
		log.Debug("app: stop requested")
	}
}

// QueueUpdate schedules fn to run on the loop goroutine at the start of
// the next iteration. It is the only way for other goroutines to touch
// engine state. It returns false, without queueing, once the App has
// stopped or when the queue is full.
func (a *App) QueueUpdate(fn func(*App)) bool {
	if fn == nil {
		return false
	}
	select {
	case <-a.done:
		return false
	default:
	}

	select {
	case a.updates <- fn:
		return true
	case <-a.done:
		return false
	default:
		log.Warn("app: update queue full (%d), update dropped", cap(a.updates))
		return false
	}
}

// stopFromGoroutine ends the App from a goroutine that is not running
// the loop. A running loop is asked to stop and closes the App itself on
// the way out; an App that is not running is closed here.
func (a *App) stopFromGoroutine() {
	for {
		switch a.State() {
		case StateRunning:
			if a.state.CompareAndSwap(int32(StateRunning), int32(StateStopping)) {
				log.Debug("app: stop requested from goroutine")
				return
			}
		case StateStopping:
			return
		case StateIdle:
			// Claim the lifecycle first so a concurrent Run returns ErrClosed
			// instead of starting on a backend that is being shut down.
			if a.state.CompareAndSwap(int32(StateIdle), int32(StateStopped)) {
				_ = a.Close()
				return
			}
		default:
			_ = a.Close()
			return
		}
	}
}

func (a *App) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

func (a *App) markDone() {
	a.doneOnce.Do(func() { close(a.done) })
}
