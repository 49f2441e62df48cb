package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

func TestReportPDF(t *testing.T) {
	r := models.Report{
		Title:         "Q1 workforce report",
		Summary:       "Quarterly roundup.",
		Content:       "## Findings\n\n- **Support** roles shrink\n- Ops follows\n\nClosing words.",
		Author:        "Research team",
		Tags:          []string{"quarterly"},
		ReadingTime:   12,
		PDFURL:        "/uploads/pdfs/q1.pdf",
		PublishedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	err := ReportPDF(&buf, r, Options{
		Uncompressed: true,
		ResolveURL:   func(u string) string { return "http://host" + u },
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out, "Findings")
	assert.Contains(t, out, "- Support roles shrink")
	assert.NotContains(t, out, "**Support**")
	assert.Contains(t, out, "http://host/uploads/pdfs/q1.pdf")
}

func TestReportPDFEmptyContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ReportPDF(&buf, models.Report{Title: "Only a title"}, Options{}))
	assert.Greater(t, buf.Len(), 100)
}
