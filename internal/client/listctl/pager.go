package listctl

// DefaultWindow is the number of numbered page buttons.
const DefaultWindow = 5

// Pager describes the pagination bar for one page position.
type Pager struct {
	// Current and Total are the clamped page position.
	Current int
	Total   int
	// Pages are the numbered buttons, ascending and contiguous.
	Pages []int
	// ShowFirst and ShowLast add the "1" and Total buttons outside the window.
	ShowFirst bool
	ShowLast  bool
	// LeadingEllipsis and TrailingEllipsis mark gaps between those buttons
	// and the window.
	LeadingEllipsis  bool
	TrailingEllipsis bool
	// HasPrev and HasNext enable the previous/next (and first/last) arrows.
	HasPrev bool
	HasNext bool
}

// Window computes the pagination bar: width buttons centered on page,
// shifted to stay inside [1, total]. Out-of-range input is clamped, so a
// page beyond the last one renders the last window.
func Window(page, total, width int) Pager {
	if total < 1 {
		total = 1
	}
	if width < 1 {
		width = DefaultWindow
	}
	page = max(1, min(page, total))

	start := max(1, page-width/2)
	end := min(total, start+width-1)
	if end-start < width-1 {
		start = max(1, end-width+1)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return Pager{
		Current:          page,
		Total:            total,
		Pages:            pages,
		ShowFirst:        start > 1,
		ShowLast:         end < total,
		LeadingEllipsis:  start > 2,
		TrailingEllipsis: end < total-1,
		HasPrev:          page > 1,
		HasNext:          page < total,
	}
}
