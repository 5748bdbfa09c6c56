// ABOUTME: Package tcellscreen adapts tcell screens to the backend interface
// ABOUTME: Registers the tcell provider everywhere and the terminfo provider on unix

// Package tcellscreen provides two backends built on github.com/gdamore/tcell/v2.
//
// The tcell provider uses tcell.NewScreen, which picks the Windows console
// or a terminfo screen on /dev/tty. The terminfo provider is the
// curses-style path: it resolves $TERM through the terminfo database up
// front and fails with backend.ErrNoTerminfo when no entry exists.
package tcellscreen
