// ABOUTME: Curses-style provider: terminfo lookup for $TERM, then a tcell screen on /dev/tty
// ABOUTME: Unix only; fails with ErrNoTerminfo when the terminal has no database entry

//go:build unix

package tcellscreen

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/terminfo"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

func init() {
	backend.Register(backend.Candidate{
		Kind: backend.KindTerminfo,
		Available: func() error {
			if err := ttyAvailable(); err != nil {
				return err
			}
			_, err := lookupTerminfo(os.Getenv("TERM"))
			return err
		},
		Open: openTerminfo,
	})
}

func openTerminfo() (backend.Backend, error) {
	ti, err := lookupTerminfo(os.Getenv("TERM"))
	if err != nil {
		return nil, err
	}
	s, err := tcell.NewTerminfoScreenFromTtyTerminfo(nil, ti)
	if err != nil {
		return nil, err
	}
	b, err := Wrap(backend.KindTerminfo, s)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func lookupTerminfo(name string) (*terminfo.Terminfo, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: TERM is not set", backend.ErrNoTerminfo)
	}
	ti, err := tcell.LookupTerminfo(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", backend.ErrNoTerminfo, name, err)
	}
	return ti, nil
}

// ttyAvailable reports ErrNoTerminal unless the controlling tty can be
// opened.
func ttyAvailable() error {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrNoTerminal, err)
	}
	return f.Close()
}
