// ABOUTME: Translation of tcell key events to key.Key
// ABOUTME: Named keys map one to one; Ctrl+letter codes become generic Ctrl keys

package tcellscreen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mauromedda/termroot/pkg/tui/key"
)

var namedKeys = map[tcell.Key]key.KeyType{
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyCtrlJ:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyBackTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
	tcell.KeyCtrlC:      key.KeyCtrlC,
	tcell.KeyCtrlD:      key.KeyCtrlD,
	tcell.KeyCtrlL:      key.KeyCtrlL,
	tcell.KeyCtrlZ:      key.KeyCtrlZ,
}

func convertKey(ev *tcell.EventKey) key.Key {
	mod := ev.Modifiers()
	k := key.Key{
		Alt:   mod&tcell.ModAlt != 0,
		Ctrl:  mod&tcell.ModCtrl != 0,
		Shift: mod&tcell.ModShift != 0,
	}

	tk := ev.Key()
	if tk == tcell.KeyRune {
		k.Type = key.KeyRune
		k.Rune = ev.Rune()
		return k
	}
	if t, ok := namedKeys[tk]; ok {
		k.Type = t
		switch t {
		case key.KeyCtrlC, key.KeyCtrlD, key.KeyCtrlL, key.KeyCtrlZ:
			k.Ctrl = true
		case key.KeyEnter:
			// A bare LF arrives as Ctrl+J.
			k.Ctrl = false
		case key.KeyBackTab:
			k.Shift = true
		}
		return k
	}
	if tk >= tcell.KeyCtrlA && tk <= tcell.KeyCtrlZ {
		k.Type = key.KeyRune
		k.Rune = 'a' + rune(tk-tcell.KeyCtrlA)
		k.Ctrl = true
		return k
	}
	k.Type = key.KeyUnknown
	return k
}
