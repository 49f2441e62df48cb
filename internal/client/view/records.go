package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

const dateLayout = "2006-01-02"

// Column sets of the list commands.
var (
	NewsHeaders   = []string{"ID", "Date", "Tier", "Category", "Title", "Status"}
	ReportHeaders = []string{"ID", "Date", "Title", "Tags", "Min", "Status"}
	CardHeaders   = []string{"ID", "Date", "Company", "Tier", "Title", "RPI", "Jobs", "Status"}
)

// NewsRow is one news table row.
func NewsRow(n models.NewsItem) []string {
	return []string{
		n.ID,
		n.PublishedDate.Format(dateLayout),
		TierStyle(string(n.Tier)).Render(string(n.Tier)),
		n.Category,
		n.Title,
		string(n.Status),
	}
}

// ReportRow is one report table row.
func ReportRow(r models.Report) []string {
	minutes := ""
	if r.ReadingTime > 0 {
		minutes = strconv.Itoa(r.ReadingTime)
	}
	return []string{
		r.ID,
		r.PublishedDate.Format(dateLayout),
		r.Title,
		strings.Join(r.Tags, ", "),
		minutes,
		string(r.Status),
	}
}

// CardRow is one intelligence card table row.
func CardRow(c models.IntelligenceCard) []string {
	status := string(c.Status)
	if c.IsFeatured {
		status += " ★"
	}
	return []string{
		c.ID,
		c.PublishedDate.Format(dateLayout),
		c.Company,
		TierStyle(string(c.Tier)).Render(string(c.Tier)),
		c.Title,
		c.RPIScore,
		c.JobsAffected,
		status,
	}
}

// Headline renders a title with its highlighted fragment emphasised.
func Headline(h models.Highlight, s Styles) string {
	return s.Title.Render(h.Prefix) + s.Highlight.Render(h.Highlighted) + s.Title.Render(h.Suffix)
}

// Card renders the detail box of an intelligence card.
func Card(c models.IntelligenceCard, s Styles) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", s.Muted.Render(c.Company), TierStyle(string(c.Tier)).Render(tierText(c.Tier, c.TierLabel)))
	sb.WriteString(Headline(c.Highlight(), s))
	sb.WriteString("\n")
	if c.Excerpt != "" {
		sb.WriteString("\n" + c.Excerpt + "\n")
	}
	var stats []string
	for _, st := range []*models.Stat{c.Stat1, c.Stat2, c.Stat3} {
		if st == nil || st.Value == "" {
			continue
		}
		stats = append(stats, TierStyle(st.Type).Render(st.Value)+" "+s.Muted.Render(st.Label))
	}
	if len(stats) > 0 {
		sb.WriteString("\n" + strings.Join(stats, "   ") + "\n")
	}
	var meta []string
	if c.RPIScore != "" {
		meta = append(meta, "RPI "+c.RPIScore)
	}
	if c.JobsAffected != "" {
		meta = append(meta, c.JobsAffected+" jobs")
	}
	if c.AIInvestment != "" {
		meta = append(meta, c.AIInvestment+" AI investment")
	}
	if c.Industry != "" {
		meta = append(meta, c.Industry)
	}
	if len(meta) > 0 {
		sb.WriteString("\n" + s.Muted.Render(strings.Join(meta, " · ")))
	}
	return s.Box.Render(strings.TrimRight(sb.String(), "\n"))
}

func tierText(t models.Tier, label string) string {
	if label != "" {
		return label
	}
	return t.Label()
}

// News renders the detail of a news item.
func News(n models.NewsItem, s Styles) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s  %s\n", s.Muted.Render(n.PublishedDate.Format(dateLayout)), n.Category, TierStyle(string(n.Tier)).Render(n.Tier.Label()))
	sb.WriteString(s.Title.Render(n.Title) + "\n\n")
	sb.WriteString(n.Description + "\n")
	if n.Summary != "" {
		sb.WriteString("\n" + n.Summary + "\n")
	}
	for _, st := range []*models.Stat{n.KeyStat, n.SecondaryStat} {
		if st != nil && st.Value != "" {
			sb.WriteString("\n" + s.Highlight.Render(st.Value) + " " + st.Label)
		}
	}
	if len(n.Companies) > 0 {
		sb.WriteString("\n\nCompanies: " + strings.Join(n.Companies, ", "))
	}
	if len(n.AffectedRoles) > 0 {
		sb.WriteString("\nAffected roles: " + strings.Join(n.AffectedRoles, ", "))
	}
	if n.Source != "" {
		src := n.Source
		if n.SourceURL != "" {
			src += " <" + n.SourceURL + ">"
		}
		sb.WriteString("\n" + s.Muted.Render("Source: "+src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// PlatformStats renders the landing counters.
func PlatformStats(st models.PlatformStats, s Styles) string {
	t := Table{Headers: []string{"Analyses", "Roles assessed", "AI capital", "Jobs impacted", "Companies", "Accuracy"}}
	t.AddRow(
		strconv.Itoa(st.TotalAnalyses),
		strconv.Itoa(st.TotalRolesAssessed),
		st.AICapitalTracked,
		st.JobsImpacted,
		strconv.Itoa(st.TotalCompanies),
		st.AccuracyRate,
	)
	return t.Render(s, 0)
}

// AdminStats renders the back office counters.
func AdminStats(st models.AdminStats, s Styles) string {
	t := Table{Headers: []string{"Cards", "Published", "Drafts", "Featured"}}
	t.AddRow(
		strconv.Itoa(st.TotalCards),
		strconv.Itoa(st.PublishedCards),
		strconv.Itoa(st.DraftCards),
		strconv.Itoa(st.FeaturedCards),
	)
	return t.Render(s, 0)
}
