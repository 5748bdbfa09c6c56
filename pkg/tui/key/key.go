// ABOUTME: Defines the Key type and ParseKey for terminal keyboard input parsing.
// ABOUTME: Handles printable runes, control characters, and CSI/SS3 escape sequences.

package key

import (
	"fmt"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event.
type Key struct {
	Type  KeyType
	Rune  rune // For KeyRune, and the letter of a generic Ctrl+letter
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the kinds of key events a backend can report.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character (or Ctrl+letter with Ctrl set)
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyInsert                   // Insert key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlC   // Ctrl+C
	KeyCtrlD   // Ctrl+D
	KeyCtrlL   // Ctrl+L
	KeyCtrlZ   // Ctrl+Z
	KeyUnknown // Unrecognized input
)

// ctrlKeys maps control bytes with a dedicated KeyType. Other bytes in
// 0x01..0x1A become KeyRune with Ctrl set.
var ctrlKeys = map[byte]Key{
	0x03: {Type: KeyCtrlC, Ctrl: true},
	0x04: {Type: KeyCtrlD, Ctrl: true},
	0x0c: {Type: KeyCtrlL, Ctrl: true},
	0x1a: {Type: KeyCtrlZ, Ctrl: true},
}

// Rune returns a plain printable key for r.
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// Ctrl returns the generic Ctrl+letter key for a lowercase letter.
func Ctrl(letter rune) Key {
	return Key{Type: KeyRune, Rune: letter, Ctrl: true}
}

// ParseKey parses a single input token into a Key. Use Split to break a
// raw read into tokens first.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return Key{Type: KeyUnknown}
	}
	return Rune(r)
}

func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d, b == 0x0a:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f, b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Rune(rune(b))
	}

	if k, ok := ctrlKeys[b]; ok {
		return k
	}
	if b >= 0x01 && b <= 0x1a {
		return Ctrl(rune('a' + b - 1))
	}
	return Key{Type: KeyUnknown}
}

func parseEscapeSequence(data string) Key {
	if k, ok := legacySequences[data]; ok {
		return k
	}

	// Alt+key: ESC followed by one complete non-escape token.
	rest := data[1:]
	if len(rest) == 1 || (rest[0] != 0x1b && rest[0] != '[' && rest[0] != 'O') {
		k := ParseKey(rest)
		if k.Type != KeyUnknown {
			k.Alt = true
			return k
		}
	}

	if k, ok := parseModified(data); ok {
		return k
	}
	return Key{Type: KeyUnknown}
}

var keyTypeNames = map[KeyType]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlD:     "Ctrl+D",
	KeyCtrlL:     "Ctrl+L",
	KeyCtrlZ:     "Ctrl+Z",
	KeyUnknown:   "Unknown",
}

// String returns a human-readable representation of the Key.
func (k Key) String() string {
	var s string
	if k.Type == KeyRune {
		s = string(k.Rune)
		if k.Ctrl {
			s = "Ctrl+" + s
		}
	} else if name, ok := keyTypeNames[k.Type]; ok {
		s = name
	} else {
		s = "Unknown"
	}
	if k.Alt {
		s = fmt.Sprintf("Alt+%s", s)
	}
	return s
}
