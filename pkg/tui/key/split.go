// ABOUTME: Split breaks one raw terminal read into individual key tokens.
// ABOUTME: Recognizes CSI, SS3, Alt-prefixed runes, control bytes, and UTF-8 runes.

package key

import "unicode/utf8"

// Split tokenizes raw input bytes. A read from a terminal in raw mode may
// carry several keys at once (pastes, fast typing, key repeat); each token
// returned is suitable for ParseKey. A truncated escape sequence at the end
// of data is returned as a single trailing token.
func Split(data []byte) []string {
	var tokens []string
	for i := 0; i < len(data); {
		n := tokenLen(data[i:])
		tokens = append(tokens, string(data[i:i+n]))
		i += n
	}
	return tokens
}

// Parse tokenizes data and parses every token.
func Parse(data []byte) []Key {
	tokens := Split(data)
	keys := make([]Key, 0, len(tokens))
	for _, tok := range tokens {
		keys = append(keys, ParseKey(tok))
	}
	return keys
}

func tokenLen(data []byte) int {
	b := data[0]
	if b != 0x1b {
		if b < utf8.RuneSelf {
			return 1
		}
		_, size := utf8.DecodeRune(data)
		return size
	}

	if len(data) == 1 || data[1] == 0x1b {
		return 1
	}

	switch data[1] {
	case '[':
		return csiLen(data)
	case 'O':
		if len(data) >= 3 {
			return 3
		}
		return len(data)
	}

	// Alt + one rune.
	_, size := utf8.DecodeRune(data[1:])
	return 1 + size
}

// csiLen returns the length of the CSI sequence at the start of data.
func csiLen(data []byte) int {
	j := 2
	// Linux console function keys: ESC [ [ A..E
	if j < len(data) && data[j] == '[' {
		if j+1 < len(data) {
			return j + 2
		}
		return len(data)
	}
	for j < len(data) && data[j] >= 0x20 && data[j] <= 0x3f {
		j++
	}
	if j < len(data) && data[j] >= 0x40 && data[j] <= 0x7e {
		return j + 1
	}
	return len(data)
}
