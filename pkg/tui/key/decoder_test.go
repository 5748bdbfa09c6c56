// ABOUTME: Tests for Decoder: sequences split across reads, held escapes, and flushing
// ABOUTME: Feeds chunked input and compares the emitted keys

package key

import (
	"reflect"
	"testing"
)

func TestDecoder_Feed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		chunks      []string
		want        []Key
		wantPending bool
	}{
		{name: "whole sequence", chunks: []string{"q\x1b[A"}, want: []Key{Rune('q'), {Type: KeyUp}}},
		{name: "csi split after escape", chunks: []string{"\x1b", "[A"}, want: []Key{{Type: KeyUp}}},
		{name: "csi split after bracket", chunks: []string{"x\x1b[", "B"}, want: []Key{Rune('x'), {Type: KeyDown}}},
		{name: "csi split in params", chunks: []string{"\x1b[1;", "5C"}, want: []Key{{Type: KeyRight, Ctrl: true}}},
		{name: "tilde split", chunks: []string{"\x1b[2", "4~"}, want: []Key{{Type: KeyF12}}},
		{name: "ss3 split", chunks: []string{"\x1bO", "P"}, want: []Key{{Type: KeyF1}}},
		{name: "linux console split", chunks: []string{"\x1b[[", "E"}, want: []Key{{Type: KeyF5}}},
		{name: "utf8 split", chunks: []string{"\xc3", "\xa9"}, want: []Key{Rune('é')}},
		{name: "alt utf8 split", chunks: []string{"\x1b\xc3", "\xa9"}, want: []Key{{Type: KeyRune, Rune: 'é', Alt: true}}},
		{name: "trailing escape held", chunks: []string{"a\x1b"}, want: []Key{Rune('a')}, wantPending: true},
		{name: "trailing csi prefix held", chunks: []string{"\x1b[1"}, wantPending: true},
		{name: "double escape", chunks: []string{"\x1b\x1b"}, want: []Key{{Type: KeyEscape}}, wantPending: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var d Decoder
			var got []Key
			for _, c := range tt.chunks {
				got = append(got, d.Feed([]byte(c))...)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("keys = %+v, want %+v", got, tt.want)
			}
			if d.Pending() != tt.wantPending {
				t.Errorf("Pending() = %v, want %v", d.Pending(), tt.wantPending)
			}
		})
	}
}

func TestDecoder_Flush(t *testing.T) {
	t.Parallel()

	var d Decoder
	if keys := d.Feed([]byte("\x1b")); len(keys) != 0 {
		t.Fatalf("Feed(ESC) = %+v, want nothing yet", keys)
	}
	if got := d.Flush(); !reflect.DeepEqual(got, []Key{{Type: KeyEscape}}) {
		t.Errorf("Flush() = %+v, want Escape", got)
	}
	if d.Pending() {
		t.Error("Pending() after Flush")
	}
	if got := d.Flush(); got != nil {
		t.Errorf("second Flush() = %+v, want nil", got)
	}

	d.Feed([]byte("\x1b[1;"))
	if got := d.Flush(); len(got) != 1 || got[0].Type != KeyUnknown {
		t.Errorf("Flush() of a cut CSI = %+v, want one unknown key", got)
	}
}
