// ABOUTME: Parser for modifier-carrying CSI sequences not covered by the legacy table
// ABOUTME: Handles CSI u (fixterms/kitty), CSI n;m ~ and CSI 1;m <letter> forms

package key

import "strconv"

// Modifier bits, sent on the wire as bits+1.
const (
	modShift = 1 << iota
	modAlt
	modCtrl
)

// namedCtrl maps letters whose Ctrl chord has its own KeyType.
var namedCtrl = map[rune]KeyType{
	'c': KeyCtrlC,
	'd': KeyCtrlD,
	'l': KeyCtrlL,
	'z': KeyCtrlZ,
}

var tildeTypes = map[int]KeyType{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

var letterTypes = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// parseModified decodes a CSI sequence that carries a modifier parameter
// or a CSI u codepoint. ok is false for anything else, including key
// release reports.
func parseModified(data string) (Key, bool) {
	if len(data) < 4 || data[0] != 0x1b || data[1] != '[' {
		return Key{}, false
	}

	body, final := data[2:len(data)-1], data[len(data)-1]
	switch final {
	case 'u':
		return parseCSIu(body)
	case '~':
		return parseTilde(body)
	}
	if kt, ok := letterTypes[final]; ok {
		return parseLetter(body, kt)
	}
	return Key{}, false
}

// parseCSIu handles CSI <codepoint>[:<alternates>] [; <mods>[:<event>]] u.
func parseCSIu(body string) (Key, bool) {
	cpField, modField := cut(body, ';')
	primary, _ := cut(cpField, ':')
	cp, err := strconv.Atoi(primary)
	if err != nil || cp < 0 {
		return Key{}, false
	}

	mods, ok := parseMods(modField)
	if !ok {
		return Key{}, false
	}
	return codepointKey(rune(cp), mods), true
}

// parseTilde handles CSI <n> ; <mods> ~.
func parseTilde(body string) (Key, bool) {
	numField, modField := cut(body, ';')
	n, err := strconv.Atoi(numField)
	if err != nil {
		return Key{}, false
	}
	kt, ok := tildeTypes[n]
	if !ok {
		return Key{}, false
	}
	mods, ok := parseMods(modField)
	if !ok {
		return Key{}, false
	}

	k := Key{Type: kt}
	applyMods(&k, mods)
	return k, true
}

// parseLetter handles CSI 1 ; <mods> <letter>. The modifier is required;
// the bare forms live in the legacy table.
func parseLetter(body string, kt KeyType) (Key, bool) {
	_, modField := cut(body, ';')
	if modField == "" {
		return Key{}, false
	}
	mods, ok := parseMods(modField)
	if !ok {
		return Key{}, false
	}

	k := Key{Type: kt}
	applyMods(&k, mods)
	return k, true
}

// parseMods decodes <mods>[:<event>]. Event 3 is a release and is
// rejected.
func parseMods(field string) (int, bool) {
	if field == "" {
		return 0, true
	}
	modStr, eventStr := cut(field, ':')
	n, err := strconv.Atoi(modStr)
	if err != nil || n < 1 {
		return 0, false
	}
	if eventStr != "" {
		ev, err := strconv.Atoi(eventStr)
		if err != nil || ev == 3 {
			return 0, false
		}
	}
	return n - 1, true
}

func codepointKey(cp rune, mods int) Key {
	var k Key
	switch cp {
	case 13:
		k = Key{Type: KeyEnter}
	case 9:
		k = Key{Type: KeyTab}
		if mods&modShift != 0 {
			k = Key{Type: KeyBackTab}
		}
	case 127, 8:
		k = Key{Type: KeyBackspace}
	case 27:
		k = Key{Type: KeyEscape}
	default:
		k = Rune(cp)
	}

	if mods&modCtrl != 0 && k.Type == KeyRune {
		if kt, ok := namedCtrl[cp]; ok {
			k = Key{Type: kt}
		}
	}
	applyMods(&k, mods)
	return k
}

func applyMods(k *Key, mods int) {
	k.Shift = k.Shift || mods&modShift != 0
	k.Alt = k.Alt || mods&modAlt != 0
	k.Ctrl = k.Ctrl || mods&modCtrl != 0
}

func cut(s string, sep byte) (before, after string) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
