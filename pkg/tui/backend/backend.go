// ABOUTME: Backend capability interface and the Kind names used to select providers
// ABOUTME: ParseKind resolves user-supplied names and aliases with fuzzy suggestions

package backend

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// Backend is one live binding to a terminal device (or a stand-in for one).
type Backend interface {
	// Kind reports which provider built this backend.
	Kind() Kind

	// Size returns the screen dimensions in cells.
	Size() (cols, rows int)

	// PollEvent waits up to timeout for one input event. ok is false when
	// the timeout elapsed with nothing to report. A zero timeout does not
	// wait; a negative timeout waits indefinitely.
	PollEvent(timeout time.Duration) (ev Event, ok bool, err error)

	// Render queues f for display. Nothing reaches the device until Refresh.
	Render(f *Frame) error

	// Refresh flushes queued output to the device.
	Refresh() error

	// Shutdown restores the terminal to the mode it had before the backend
	// was opened. Calling it twice panics with ErrAlreadyShutdown.
	Shutdown() error
}

// Kind names a backend provider.
type Kind string

const (
	KindBearLib  Kind = "bearlib"
	KindTermios  Kind = "termios"
	KindTcell    Kind = "tcell"
	KindTerminfo Kind = "terminfo"
	KindNcurses  Kind = "ncurses"
	KindDummy    Kind = "dummy"
)

// DefaultOrder is the priority order used by SelectDefault.
var DefaultOrder = []Kind{KindBearLib, KindTermios, KindTcell, KindTerminfo, KindNcurses}

// aliases maps alternative spellings onto kinds.
var aliases = map[string]Kind{
	"blt":       KindBearLib,
	"termion":   KindTermios,
	"raw":       KindTermios,
	"crossterm": KindTcell,
	"pancurses": KindTerminfo,
	"curses":    KindTerminfo,
	"none":      KindDummy,
}

// AllKinds returns every known kind: DefaultOrder followed by KindDummy.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(DefaultOrder)+1)
	kinds = append(kinds, DefaultOrder...)
	return append(kinds, KindDummy)
}

// ParseKind resolves a backend name. Matching is case-insensitive and
// accepts the aliases blt, termion, raw, crossterm, pancurses, curses and
// none.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range AllKinds() {
		if string(k) == n {
			return k, nil
		}
	}
	if k, ok := aliases[n]; ok {
		return k, nil
	}

	if s := suggest(n); s != "" {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownKind, name, s)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, name)
}

func suggest(name string) string {
	if name == "" {
		return ""
	}
	var names []string
	for _, k := range AllKinds() {
		names = append(names, string(k))
	}
	for a := range aliases {
		names = append(names, a)
	}
	sort.Strings(names)
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
