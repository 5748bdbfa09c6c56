// ABOUTME: Display-width measurement, clipping and wrapping of plain span text
// ABOUTME: Grapheme-aware via uniseg; cell widths via go-runewidth

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster and the number of terminal cells it
// occupies. Control characters occupy zero cells.
type Cluster struct {
	Text  string
	Width int
}

// Clusters splits s into grapheme clusters.
func Clusters(s string) []Cluster {
	if s == "" {
		return nil
	}
	out := make([]Cluster, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, Cluster{Text: cluster, Width: clusterWidth(cluster)})
	}
	return out
}

// VisibleWidth returns the number of cells s occupies.
func VisibleWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	for _, c := range Clusters(s) {
		w += c.Width
	}
	return w
}

// Clip returns the longest prefix of s that fits in maxCols cells. A wide
// cluster straddling the boundary is dropped rather than split.
func Clip(s string, maxCols int) string {
	if maxCols <= 0 {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) > maxCols {
			return s[:maxCols]
		}
		return s
	}

	var b strings.Builder
	col := 0
	for _, c := range Clusters(s) {
		if col+c.Width > maxCols {
			break
		}
		b.WriteString(c.Text)
		col += c.Width
	}
	return b.String()
}

// Wrap breaks s at newlines and at maxCols cell boundaries. It does not
// hyphenate or look for word boundaries.
func Wrap(s string, maxCols int) []string {
	if maxCols <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line strings.Builder
		col := 0
		for _, c := range Clusters(para) {
			if col+c.Width > maxCols && col > 0 {
				lines = append(lines, line.String())
				line.Reset()
				col = 0
			}
			line.WriteString(c.Text)
			col += c.Width
		}
		lines = append(lines, line.String())
	}
	return lines
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return runewidth.RuneWidth(r)
}
