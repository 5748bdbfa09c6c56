// ABOUTME: RestoreOnPanic closes the App, restoring the terminal, then reports the panic and exits
// ABOUTME: RecoverGoroutine does the same for background goroutines without exiting

package tui

import (
	"fmt"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred at the top of main (or any goroutine
// that owns the App). On panic it closes the App so the terminal leaves
// raw mode and the alternate screen, prints the panic value and stack
// trace, then exits with code 1.
func RestoreOnPanic(a *App) {
	r := recover()
	if r == nil {
		return
	}

	_ = a.Close()
	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the App is open. Unlike RestoreOnPanic it does NOT call
// os.Exit. While Run is active it only requests a stop: the backend
// belongs to the loop, which restores the terminal as it exits and
// returns nil. Outside Run it closes the App directly.
func RecoverGoroutine(a *App) {
	r := recover()
	if r == nil {
		return
	}

	a.stopFromGoroutine()
	fmt.Fprintf(os.Stderr, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}
