// ABOUTME: Renders the backend selector report for --list
// ABOUTME: Lipgloss columns; colour only when the output is a terminal

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

// writeReport prints one line per candidate in selection order, ending
// with the dummy fallback.
func writeReport(w io.Writer, report []backend.Status) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)
	prio := r.NewStyle().Width(5)
	name := r.NewStyle().Width(10)
	ok := r.NewStyle().Foreground(lipgloss.Color("2"))
	warn := r.NewStyle().Foreground(lipgloss.Color("3"))
	dim := r.NewStyle().Faint(true)

	var b strings.Builder
	b.WriteString(header.Render(prio.Render("#") + name.Render("BACKEND") + "STATUS"))
	b.WriteByte('\n')

	for _, st := range report {
		p := "-"
		if st.Priority > 0 {
			p = fmt.Sprint(st.Priority)
		}
		b.WriteString(prio.Render(p))
		b.WriteString(name.Render(string(st.Kind)))
		b.WriteString(statusText(st, ok, warn, dim))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func statusText(st backend.Status, ok, warn, dim lipgloss.Style) string {
	switch {
	case st.Kind == backend.KindDummy && st.Priority == 0:
		return dim.Render("fallback")
	case errors.Is(st.Unavailable, backend.ErrNotCompiled):
		return dim.Render("not compiled in")
	case st.Unavailable != nil:
		return warn.Render("unavailable: " + st.Unavailable.Error())
	}
	return ok.Render("available")
}
