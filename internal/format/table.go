package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Table is human-readable list output: one header row plus data rows. Cell
// text is plain; styling is applied at render time.
type Table struct {
	Headers []string
	Rows    [][]string
	// Footer is an optional trailing line (page indicator etc).
	Footer string
}

const maxColWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// WriteTable renders the table with two-space gutters, truncating cells that
// exceed the column cap.
func WriteTable(w io.Writer, t Table) error {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = xansi.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if cw := xansi.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			parts = append(parts, pad(cell, widths[i]))
		}
		return style.Render(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	if _, err := fmt.Fprintln(w, renderRow(t.Headers, headerStyle)); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(w, renderRow(row, lipgloss.NewStyle())); err != nil {
			return err
		}
	}
	if strings.TrimSpace(t.Footer) != "" {
		if _, err := fmt.Fprintln(w, footerStyle.Render(t.Footer)); err != nil {
			return err
		}
	}
	return nil
}

func pad(s string, width int) string {
	w := xansi.StringWidth(s)
	if w > width {
		return xansi.Cut(s, 0, width)
	}
	return s + strings.Repeat(" ", width-w)
}
