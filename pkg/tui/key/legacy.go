// ABOUTME: Legacy escape sequence mappings for CSI and SS3 terminal key codes.
// ABOUTME: Covers arrows, editing keys, function keys and their xterm/rxvt/linux-console variants.

package key

// legacySequences maps CSI and SS3 escape sequences to Key values.
var legacySequences = map[string]Key{
	// CSI sequences
	"\x1b[A":  {Type: KeyUp},
	"\x1b[B":  {Type: KeyDown},
	"\x1b[C":  {Type: KeyRight},
	"\x1b[D":  {Type: KeyLeft},
	"\x1b[H":  {Type: KeyHome},
	"\x1b[F":  {Type: KeyEnd},
	"\x1b[1~": {Type: KeyHome},
	"\x1b[2~": {Type: KeyInsert},
	"\x1b[3~": {Type: KeyDelete},
	"\x1b[4~": {Type: KeyEnd},
	"\x1b[5~": {Type: KeyPageUp},
	"\x1b[6~": {Type: KeyPageDown},
	"\x1b[7~": {Type: KeyHome},
	"\x1b[8~": {Type: KeyEnd},
	"\x1b[Z":  {Type: KeyBackTab, Shift: true},

	// Shift/Ctrl modified arrows (xterm)
	"\x1b[1;2A": {Type: KeyUp, Shift: true},
	"\x1b[1;2B": {Type: KeyDown, Shift: true},
	"\x1b[1;2C": {Type: KeyRight, Shift: true},
	"\x1b[1;2D": {Type: KeyLeft, Shift: true},
	"\x1b[1;5A": {Type: KeyUp, Ctrl: true},
	"\x1b[1;5B": {Type: KeyDown, Ctrl: true},
	"\x1b[1;5C": {Type: KeyRight, Ctrl: true},
	"\x1b[1;5D": {Type: KeyLeft, Ctrl: true},

	// Function keys
	"\x1bOP":   {Type: KeyF1},
	"\x1bOQ":   {Type: KeyF2},
	"\x1bOR":   {Type: KeyF3},
	"\x1bOS":   {Type: KeyF4},
	"\x1b[11~": {Type: KeyF1},
	"\x1b[12~": {Type: KeyF2},
	"\x1b[13~": {Type: KeyF3},
	"\x1b[14~": {Type: KeyF4},
	"\x1b[[A":  {Type: KeyF1}, // linux console
	"\x1b[[B":  {Type: KeyF2},
	"\x1b[[C":  {Type: KeyF3},
	"\x1b[[D":  {Type: KeyF4},
	"\x1b[[E":  {Type: KeyF5},
	"\x1b[15~": {Type: KeyF5},
	"\x1b[17~": {Type: KeyF6},
	"\x1b[18~": {Type: KeyF7},
	"\x1b[19~": {Type: KeyF8},
	"\x1b[20~": {Type: KeyF9},
	"\x1b[21~": {Type: KeyF10},
	"\x1b[23~": {Type: KeyF11},
	"\x1b[24~": {Type: KeyF12},

	// SS3 variants (sent by some terminals in application mode)
	"\x1bOA": {Type: KeyUp},
	"\x1bOB": {Type: KeyDown},
	"\x1bOC": {Type: KeyRight},
	"\x1bOD": {Type: KeyLeft},
	"\x1bOH": {Type: KeyHome},
	"\x1bOF": {Type: KeyEnd},
}
