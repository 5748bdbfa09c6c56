// ABOUTME: Registers the cross-platform tcell provider with the backend registry

package tcellscreen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

func init() {
	backend.Register(backend.Candidate{
		Kind:      backend.KindTcell,
		Available: ttyAvailable,
		Open:      openTcell,
	})
}

func openTcell() (backend.Backend, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	b, err := Wrap(backend.KindTcell, s)
	if err != nil {
		return nil, err
	}
	return b, nil
}
