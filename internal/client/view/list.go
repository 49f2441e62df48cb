package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dheerendra45/news-analyzer/internal/client/listctl"
)

// Pager renders the pagination bar, e.g. "‹ 1 … 4 [5] 6 … 10 ›".
// A single page renders nothing.
func Pager(p listctl.Pager, s Styles) string {
	if p.Total <= 1 {
		return ""
	}
	var parts []string
	if p.HasPrev {
		parts = append(parts, "‹")
	}
	if p.ShowFirst {
		parts = append(parts, "1")
	}
	if p.LeadingEllipsis {
		parts = append(parts, "…")
	}
	for _, n := range p.Pages {
		label := strconv.Itoa(n)
		if n == p.Current {
			label = s.Current.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	if p.TrailingEllipsis {
		parts = append(parts, "…")
	}
	if p.ShowLast {
		parts = append(parts, strconv.Itoa(p.Total))
	}
	if p.HasNext {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ")
}

// Chips renders the active filters as "[label ×]" tokens.
func Chips(chips []listctl.Chip, s Styles) string {
	if len(chips) == 0 {
		return ""
	}
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = s.Chip.Render(fmt.Sprintf("[%s ×]", c.Label))
	}
	return strings.Join(parts, " ")
}

// List renders a snapshot: chips, then the table, an empty notice or the
// failure message, then the range label and the pager. rows converts the
// visible items.
func List[T any](snap listctl.Snapshot[T], headers []string, rows func(T) []string, s Styles) string {
	var blocks []string
	if c := Chips(snap.Chips, s); c != "" {
		blocks = append(blocks, c)
	}
	if snap.State == listctl.Failed {
		blocks = append(blocks, s.Error.Render(snap.Message))
	}
	switch {
	case len(snap.Items) > 0:
		t := Table{Headers: headers}
		for _, it := range snap.Items {
			t.AddRow(rows(it)...)
		}
		blocks = append(blocks, t.Render(s, 48))
	case snap.State != listctl.Failed:
		blocks = append(blocks, s.Muted.Render("No results found."))
	}

	footer := s.Muted.Render(snap.RangeLabel())
	if p := Pager(snap.Pager(), s); p != "" {
		footer += "   " + p
	}
	blocks = append(blocks, footer)
	return strings.Join(blocks, "\n\n")
}
