// Package export writes report details to portable formats.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// Options tune the PDF output.
type Options struct {
	// Uncompressed leaves page streams readable, which eases inspection.
	Uncompressed bool
	// ResolveURL turns upload paths into absolute links.
	ResolveURL func(string) string
}

// ReportPDF writes r as an A4 document: title block, summary, then the
// content with markdown headings and bullets laid out as such.
func ReportPDF(w io.Writer, r models.Report, opts Options) error {
	if opts.ResolveURL == nil {
		opts.ResolveURL = func(u string) string { return u }
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!opts.Uncompressed)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Title, true)
	if r.Author != "" {
		pdf.SetAuthor(r.Author, true)
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(r.Title), "", "", false)
	pdf.Ln(2)

	var meta []string
	if r.Author != "" {
		meta = append(meta, r.Author)
	}
	if !r.PublishedDate.IsZero() {
		meta = append(meta, r.PublishedDate.Format("January 2, 2006"))
	}
	if r.ReadingTime > 0 {
		meta = append(meta, fmt.Sprintf("%d min read", r.ReadingTime))
	}
	if len(r.Tags) > 0 {
		meta = append(meta, strings.Join(r.Tags, ", "))
	}
	if len(meta) > 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(strings.Join(meta, " | ")), "", "", false)
		pdf.Ln(4)
	}

	if r.Summary != "" {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.MultiCell(0, 6, tr(r.Summary), "", "", false)
		pdf.Ln(4)
	}

	writeContent(pdf, tr, r.Content)

	if r.PDFURL != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, tr("Full report: "+opts.ResolveURL(r.PDFURL)), "", "", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func writeContent(pdf *gofpdf.Fpdf, tr func(string) string, content string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			size := max(16-2*float64(level), 11)
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, 7, tr(stripInline(strings.TrimSpace(line[level:]))), "", "", false)
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetX(pdf.GetX() + 4)
			pdf.MultiCell(0, 6, tr("- "+stripInline(line[2:])), "", "", false)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(stripInline(line)), "", "", false)
		}
	}
}

// stripInline drops emphasis and code markers.
func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
