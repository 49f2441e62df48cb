package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a static table rendered with padded columns.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render lays out the table. Cells wider than maxCell are truncated.
func (t *Table) Render(s Styles, maxCell int) string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = make([]string, len(t.Headers))
		for i := range t.Headers {
			if i >= len(row) {
				continue
			}
			cell := Truncate(row[i], maxCell)
			rows[r][i] = cell
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var sb strings.Builder
	line := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		line[i] = s.Header.Width(widths[i] + 2).Render(h)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
	sb.WriteString("\n")

	rule := make([]string, len(t.Headers))
	for i := range t.Headers {
		rule[i] = strings.Repeat("─", widths[i]+2)
	}
	sb.WriteString(s.Muted.Render(strings.Join(rule, "")))

	for _, row := range rows {
		sb.WriteString("\n")
		for i, cell := range row {
			line[i] = s.Cell.Width(widths[i] + 2).Render(cell)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return sb.String()
}

// Truncate shortens s to n display cells, marking the cut with an ellipsis.
// n < 1 disables truncation.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n < 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
