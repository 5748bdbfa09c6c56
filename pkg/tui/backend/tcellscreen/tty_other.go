//go:build !unix

package tcellscreen

// ttyAvailable defers to tcell.NewScreen, which counters the console itself.
func ttyAvailable() error { return nil }
