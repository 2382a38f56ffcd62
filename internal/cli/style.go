package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/knots/internal/grid"
)

// Status icons.
const (
	iconOK   = "\u2713"
	iconFail = "\u2717"
)

var (
	colorX      = lipgloss.Color("#E74C3C")
	colorO      = lipgloss.Color("#2CD7C7")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorBorder = lipgloss.Color("#16858E")
)

// styles are bound to one writer so color detection follows that writer
// rather than the process stdout. Plain buffers get unstyled text.
type styles struct {
	x, o, blank lipgloss.Style
	box         lipgloss.Style
	ok, fail    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		x:     r.NewStyle().Bold(true).Foreground(colorX),
		o:     r.NewStyle().Bold(true).Foreground(colorO),
		blank: r.NewStyle().Foreground(colorMuted),
		box:   r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		ok:    r.NewStyle().Foreground(colorO),
		fail:  r.NewStyle().Foreground(colorX),
	}
}

// grid renders d as a bordered block, one space between cells.
func (s styles) grid(d *grid.Diagram) string {
	var b strings.Builder
	for r, row := range d.Rows() {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, ch := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			switch ch {
			case 'x':
				b.WriteString(s.x.Render("x"))
			case 'o':
				b.WriteString(s.o.Render("o"))
			default:
				b.WriteString(s.blank.Render("."))
			}
		}
	}
	return s.box.Render(b.String())
}

// status renders the pass/fail icon.
func (s styles) status(pass bool) string {
	if pass {
		return s.ok.Render(iconOK)
	}
	return s.fail.Render(iconFail)
}

// plural formats a count with its noun: "1 crossing", "3 crossings".
func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	suffix := "s"
	if strings.HasSuffix(word, "ch") {
		suffix = "es"
	}
	return strconv.Itoa(n) + " " + word + suffix
}
