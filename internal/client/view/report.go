package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// ReportOptions tune Report.
type ReportOptions struct {
	// Width is the wrap column; zero means 80.
	Width int
	// Style is a glamour style name ("dark", "light", "notty"); empty
	// detects the terminal background.
	Style string
	// ResolveURL turns upload paths into absolute links.
	ResolveURL func(string) string
}

// Report renders a report detail page. Reports with the rich template flag
// have their content rendered as markdown; the others show it as wrapped
// plain text.
func Report(r models.Report, opts ReportOptions, s Styles) (string, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.ResolveURL == nil {
		opts.ResolveURL = func(u string) string { return u }
	}

	var sb strings.Builder
	sb.WriteString(s.Title.Render(r.Title) + "\n")

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
	if r.Status != models.StatusPublished {
		meta = append(meta, strings.ToUpper(string(r.Status)))
	}
	if len(meta) > 0 {
		sb.WriteString(s.Muted.Render(strings.Join(meta, " · ")) + "\n")
	}
	if len(r.Tags) > 0 {
		tags := make([]string, len(r.Tags))
		for i, t := range r.Tags {
			tags[i] = "#" + t
		}
		sb.WriteString(s.Chip.Render(strings.Join(tags, " ")) + "\n")
	}

	wrap := lipgloss.NewStyle().Width(opts.Width)
	if r.Summary != "" {
		sb.WriteString("\n" + wrap.Render(r.Summary) + "\n")
	}

	if r.Content != "" {
		body := wrap.Render(r.Content)
		if r.RichTemplate {
			var err error
			if body, err = Markdown(r.Content, opts.Width, opts.Style); err != nil {
				return "", err
			}
		}
		sb.WriteString("\n" + strings.TrimRight(body, "\n") + "\n")
	}

	var links []string
	for _, l := range []struct{ name, url string }{
		{"PDF", r.PDFURL},
		{"File", r.FileURL},
		{"Cover", r.CoverImageURL},
	} {
		if l.url != "" {
			links = append(links, l.name+": "+opts.ResolveURL(l.url))
		}
	}
	if len(links) > 0 {
		sb.WriteString("\n" + s.Muted.Render(strings.Join(links, "\n")) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// Markdown renders md for the terminal.
func Markdown(md string, width int, style string) (string, error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStylePath(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
