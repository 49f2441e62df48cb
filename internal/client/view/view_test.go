package view

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheerendra45/news-analyzer/internal/client/listctl"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

func TestPager(t *testing.T) {
	s := DefaultStyles()
	tests := []struct {
		name        string
		page, total int
		want        string
	}{
		{"single page", 1, 1, ""},
		{"middle", 5, 10, "‹ 1 … 3 4 [5] 6 7 … 10 ›"},
		{"first", 1, 3, "[1] 2 3 ›"},
		{"last", 10, 10, "‹ 1 … 6 7 8 9 [10]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pager(listctl.Window(tt.page, tt.total, listctl.DefaultWindow), s)
			if got != tt.want {
				t.Errorf("Pager(%d, %d) = %q, want %q", tt.page, tt.total, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc…", Truncate("abcdef", 4))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0))
	assert.Equal(t, "a b", Truncate("a\n  b", 10))
}

func TestList(t *testing.T) {
	s := DefaultStyles()
	snap := listctl.Snapshot[models.NewsItem]{
		State: listctl.Loaded,
		Items: []models.NewsItem{
			{ID: "n1", Title: "Layoffs at Klarna", Tier: models.Tier1, Status: models.StatusPublished},
			{ID: "n2", Title: "New AI policy", Tier: models.Tier2, Status: models.StatusDraft},
		},
		Page:       2,
		TotalPages: 3,
		TotalItems: 12,
		Size:       5,
		Chips:      []listctl.Chip{{Key: "tier", Value: "tier_1", Label: models.Tier1.Label()}},
	}
	out := List(snap, NewsHeaders, NewsRow, s)
	for _, want := range []string{"Title", "Layoffs at Klarna", "New AI policy", "6-7 of 12", "[2]", "[Tier 1 — Critical ×]"} {
		assert.Contains(t, out, want)
	}

	empty := List(listctl.Snapshot[models.NewsItem]{State: listctl.Loaded, Page: 1, TotalPages: 1}, NewsHeaders, NewsRow, s)
	assert.Contains(t, empty, "No results found.")
	assert.Contains(t, empty, "0 results")

	failed := snap
	failed.State = listctl.Failed
	failed.Err = errors.New("boom")
	failed.Message = "Failed to load news. Please try again."
	out = List(failed, NewsHeaders, NewsRow, s)
	assert.Contains(t, out, failed.Message)
	assert.Contains(t, out, "Layoffs at Klarna", "previous items stay visible")
}

func TestCard(t *testing.T) {
	c := models.IntelligenceCard{
		Title:          "Klarna replaces roles with AI agents",
		TitleHighlight: "AI agents",
		Company:        "Klarna",
		Tier:           models.Tier1,
		Stat1:          &models.Stat{Value: "700", Label: "Jobs affected"},
		RPIScore:       "91",
	}
	out := Card(c, DefaultStyles())
	assert.Contains(t, out, "Klarna replaces roles with")
	assert.Contains(t, out, "AI agents")
	assert.Contains(t, out, "Tier 1 — Critical")
	assert.Contains(t, out, "700 Jobs affected")
	assert.Contains(t, out, "RPI 91")
}

func TestReportTemplates(t *testing.T) {
	r := models.Report{
		Title:         "Q1 workforce report",
		Summary:       "Quarterly roundup.",
		Content:       "## Findings\n\nSome **bold** claims.",
		Author:        "Research team",
		ReadingTime:   12,
		Status:        models.StatusPublished,
		PDFURL:        "/uploads/pdfs/q1.pdf",
		PublishedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	opts := ReportOptions{
		Width:      60,
		Style:      "dark",
		ResolveURL: func(u string) string { return "http://host" + u },
	}

	plain, err := Report(r, opts, DefaultStyles())
	require.NoError(t, err)
	assert.Contains(t, plain, "**bold**")
	assert.Contains(t, plain, "Research team · March 1, 2026 · 12 min read")
	assert.Contains(t, plain, "PDF: http://host/uploads/pdfs/q1.pdf")

	r.RichTemplate = true
	rich, err := Report(r, opts, DefaultStyles())
	require.NoError(t, err)
	assert.NotContains(t, rich, "**bold**")
	assert.Contains(t, rich, "bold")
	assert.True(t, strings.HasPrefix(rich, "Q1 workforce report"))
}

func TestStats(t *testing.T) {
	out := AdminStats(models.AdminStats{TotalCards: 6, PublishedCards: 5, DraftCards: 1, FeaturedCards: 1}, DefaultStyles())
	assert.Contains(t, out, "Published")
	assert.Contains(t, out, "6")
}
