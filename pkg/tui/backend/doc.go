// Package backend defines the terminal backend capability, the render
// instructions and input events that cross it, and the selector that picks
// a concrete backend at runtime.
//
// Providers register themselves from init functions, in the manner of
// database/sql drivers; import pkg/tui/backends to compile in the stock
// set. A Selector walks its candidate list in priority order and returns
// the first backend that opens. When none does, it returns the no-op
// dummy backend, so automatic selection never fails.
//
// Every real backend switches the controlling terminal into raw mode (and
// usually the alternate screen). Shutdown undoes that and must be called
// exactly once; a second call panics with ErrAlreadyShutdown.
package backend
