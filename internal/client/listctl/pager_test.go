package listctl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name        string
		page, total int
		want        Pager
	}{
		{
			name: "single page",
			page: 1, total: 1,
			want: Pager{Current: 1, Total: 1, Pages: []int{1}},
		},
		{
			name: "start of long list",
			page: 1, total: 10,
			want: Pager{Current: 1, Total: 10, Pages: []int{1, 2, 3, 4, 5}, ShowLast: true, TrailingEllipsis: true, HasNext: true},
		},
		{
			name: "centered",
			page: 5, total: 10,
			want: Pager{
				Current: 5, Total: 10, Pages: []int{3, 4, 5, 6, 7},
				ShowFirst: true, ShowLast: true, LeadingEllipsis: true, TrailingEllipsis: true,
				HasPrev: true, HasNext: true,
			},
		},
		{
			name: "window touches second page",
			page: 4, total: 10,
			want: Pager{
				Current: 4, Total: 10, Pages: []int{2, 3, 4, 5, 6},
				ShowFirst: true, ShowLast: true, TrailingEllipsis: true,
				HasPrev: true, HasNext: true,
			},
		},
		{
			name: "end of list shifts window left",
			page: 10, total: 10,
			want: Pager{Current: 10, Total: 10, Pages: []int{6, 7, 8, 9, 10}, ShowFirst: true, LeadingEllipsis: true, HasPrev: true},
		},
		{
			name: "fewer pages than width",
			page: 2, total: 3,
			want: Pager{Current: 2, Total: 3, Pages: []int{1, 2, 3}, HasPrev: true, HasNext: true},
		},
		{
			name: "page beyond total is clamped",
			page: 9, total: 3,
			want: Pager{Current: 3, Total: 3, Pages: []int{1, 2, 3}, HasPrev: true},
		},
		{
			name: "zero values are clamped",
			page: 0, total: 0,
			want: Pager{Current: 1, Total: 1, Pages: []int{1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.page, tt.total, DefaultWindow)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Window(%d, %d) mismatch (-want +got):\n%s", tt.page, tt.total, diff)
			}
		})
	}
}

func TestWindowBounds(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for page := -1; page <= total+2; page++ {
			p := Window(page, total, DefaultWindow)
			if len(p.Pages) == 0 || len(p.Pages) > DefaultWindow {
				t.Fatalf("Window(%d, %d): %d buttons", page, total, len(p.Pages))
			}
			if p.Pages[0] < 1 || p.Pages[len(p.Pages)-1] > total {
				t.Fatalf("Window(%d, %d): pages %v outside [1, %d]", page, total, p.Pages, total)
			}
			if p.Current < p.Pages[0] || p.Current > p.Pages[len(p.Pages)-1] {
				t.Fatalf("Window(%d, %d): current %d not in %v", page, total, p.Current, p.Pages)
			}
		}
	}
}
