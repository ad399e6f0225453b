package inspect

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	selectorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	handlerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))
)

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Writer prints reports as an indented tree.
type Writer struct {
	w      io.Writer
	styled bool
}

// NewWriter returns a Writer for w. Styling is used only on terminals.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, styled: IsTerminal(w)}
}

// Write prints every report.
func (w *Writer) Write(reports []*Report) error {
	for _, r := range reports {
		if err := w.write(r, 0); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) write(r *Report, depth int) error {
	indent := strings.Repeat("  ", depth)

	lines := []string{indent + w.style(selectorStyle, r.Selector) + " <" + r.Tag + ">"}
	for _, o := range r.Options {
		lines = append(lines, fmt.Sprintf("%s  %s %s=%q", indent, w.style(labelStyle, "option"), w.style(keyStyle, o.Key), o.Value))
	}
	for _, k := range r.RefKeys() {
		lines = append(lines, fmt.Sprintf("%s  %s %s (%d)", indent, w.style(labelStyle, "ref"), w.style(keyStyle, k), r.Refs[k]))
	}
	for _, name := range r.Templates {
		lines = append(lines, fmt.Sprintf("%s  %s %s", indent, w.style(labelStyle, "template"), w.style(keyStyle, name)))
	}
	for _, b := range r.Bindings {
		lines = append(lines, fmt.Sprintf("%s  %s %s -> %s on <%s>", indent, w.style(labelStyle, "binding"), b.Attr, w.style(handlerStyle, b.Handler), b.Tag))
	}

	if _, err := io.WriteString(w.w, strings.Join(lines, "\n")+"\n"); err != nil {
		return err
	}
	for _, c := range r.Children {
		if err := w.write(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) style(s lipgloss.Style, text string) string {
	if !w.styled {
		return text
	}
	return s.Render(text)
}
