package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"showflix/internal/media"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	plotStyle = lipgloss.NewStyle().
			Width(72)
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Formatter renders catalog entries as text. Styling is applied only when
// enabled, so piped output stays plain.
type Formatter struct {
	Styled bool
}

// NewFormatter styles output when stdout is a terminal.
func NewFormatter() Formatter {
	return Formatter{Styled: IsTerminal(os.Stdout)}
}

func (f Formatter) render(s lipgloss.Style, text string) string {
	if !f.Styled {
		return text
	}
	return s.Render(text)
}

// Summary renders one browse entry, e.g. "Vikram [movie]".
func (f Formatter) Summary(s media.Summary) string {
	return s.Title + " " + f.render(dimStyle, "["+s.Kind.String()+"]")
}

// Episode renders one episode entry.
func (f Formatter) Episode(e media.Episode) string {
	if !e.Available() {
		return e.Name + " " + f.render(dimStyle, "(no link)")
	}
	return e.Name
}

// Rating renders a rating out of media.MaxRating.
func Rating(r *float64) string {
	if r == nil {
		return "No rating"
	}
	return fmt.Sprintf("%.1f/%g", *r, media.MaxRating)
}

// Detail renders the full view of a title.
func (f Formatter) Detail(d *media.Detail) string {
	var b strings.Builder
	b.WriteString(f.render(titleStyle, d.Title))
	b.WriteString("\n")

	meta := []string{d.Kind.String(), Rating(d.Rating)}
	if len(d.Tags) > 0 {
		meta = append(meta, strings.Join(d.Tags, ", "))
	}
	if d.Kind == media.Series {
		meta = append(meta, fmt.Sprintf("%d episodes", len(d.Episodes)))
	}
	b.WriteString(f.render(metaStyle, strings.Join(meta, " | ")))
	b.WriteString("\n")

	if d.Plot != "" {
		b.WriteString("\n")
		b.WriteString(f.render(plotStyle, d.Plot))
		b.WriteString("\n")
	}
	return b.String()
}
