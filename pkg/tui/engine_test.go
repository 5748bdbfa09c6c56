// ABOUTME: Scripted Engine used by the App and run loop tests
// ABOUTME: Records every call so tests can assert ordering

package tui

import (
	"fmt"
	"sync"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

type scriptEngine struct {
	mu  sync.Mutex
	log []string

	dispatched int
	// stopAt makes the n-th Dispatch (1-based) return false.
	stopAt int
	// onDispatch runs inside every Dispatch with the 1-based count.
	onDispatch func(a *App, n int)
}

func (e *scriptEngine) record(s string) {
	e.mu.Lock()
	e.log = append(e.log, s)
	e.mu.Unlock()
}

func (e *scriptEngine) Dispatch(a *App, ev backend.Event) bool {
	e.dispatched++
	e.record("dispatch " + ev.String())
	if e.onDispatch != nil {
		e.onDispatch(a, e.dispatched)
	}
	return e.stopAt == 0 || e.dispatched < e.stopAt
}

func (e *scriptEngine) Layout(cols, rows int) {
	e.record(fmt.Sprintf("layout %dx%d", cols, rows))
}

func (e *scriptEngine) RenderFrame() *backend.Frame {
	e.record("frame")
	return &backend.Frame{}
}

func (e *scriptEngine) calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}
