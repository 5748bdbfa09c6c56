// ABOUTME: Decoder turns a stream of raw reads into keys across read boundaries
// ABOUTME: A trailing token that may continue in the next read is held back until completed or flushed

package key

import "unicode/utf8"

// Decoder splits raw terminal input that arrives in arbitrary chunks. A
// sequence cut by a read boundary (ESC | [A) is held until the rest
// arrives. A lone ESC is ambiguous: it stays pending until the caller
// decides no continuation is coming and calls Flush.
type Decoder struct {
	partial []byte
}

// Feed appends data to any held-back input and returns the complete keys.
func (d *Decoder) Feed(data []byte) []Key {
	buf := append(d.partial, data...)
	d.partial = nil

	var keys []Key
	for i := 0; i < len(buf); {
		n := tokenLen(buf[i:])
		tok := buf[i : i+n]
		if i+n == len(buf) && incomplete(tok) {
			d.partial = append([]byte(nil), tok...)
			break
		}
		keys = append(keys, ParseKey(string(tok)))
		i += n
	}
	return keys
}

// Pending reports whether input is held back.
func (d *Decoder) Pending() bool {
	return len(d.partial) > 0
}

// Flush parses the held-back input as it stands.
func (d *Decoder) Flush() []Key {
	if len(d.partial) == 0 {
		return nil
	}
	data := d.partial
	d.partial = nil
	return Parse(data)
}

// incomplete reports whether tok, found at the end of the input, could be
// the prefix of a longer token.
func incomplete(tok []byte) bool {
	if tok[0] != 0x1b {
		return !utf8.FullRune(tok)
	}
	if len(tok) == 1 {
		return true
	}

	switch tok[1] {
	case '[':
		if len(tok) < 3 {
			return true
		}
		if tok[2] == '[' {
			return len(tok) < 4
		}
		last := tok[len(tok)-1]
		return last < 0x40 || last > 0x7e
	case 'O':
		return len(tok) < 3
	}
	return !utf8.FullRune(tok[1:])
}
