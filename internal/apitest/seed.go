package apitest

import (
	"fmt"
	"time"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// Demo credentials created by Seed.
const (
	SeedAdminEmail    = "admin@replaceable.ai"
	SeedAdminPassword = "admin123"
)

// Seed fills the server with an admin account and a small catalog of
// published and draft records, dated relative to the server clock.
func (s *Server) Seed() error {
	if _, err := s.AddUser(SeedAdminEmail, "admin", SeedAdminPassword, models.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	now := s.now().UTC()
	day := 24 * time.Hour

	companies := []struct {
		name, industry, icon string
		tier                 models.Tier
		rpi, jobs            string
	}{
		{"Klarna", "Fintech", "K", models.Tier1, "91", "700"},
		{"IBM", "Technology", "I", models.Tier1, "84", "7.8K"},
		{"Duolingo", "Education", "D", models.Tier2, "72", "100"},
		{"Salesforce", "Technology", "S", models.Tier2, "68", "4K"},
		{"Dropbox", "Technology", "D", models.Tier3, "55", "528"},
		{"Chegg", "Education", "C", models.Tier3, "47", "441"},
	}
	for i, c := range companies {
		status := models.StatusPublished
		if i == len(companies)-1 {
			status = models.StatusDraft
		}
		s.AddCard(models.IntelligenceCard{
			Title:          c.name + " replaces roles with AI agents",
			TitleHighlight: "AI agents",
			Company:        c.name,
			CompanyIcon:    c.icon,
			Category:       "Workforce Reduction",
			Excerpt:        c.name + " announced an automation program affecting support and operations staff.",
			Tier:           c.tier,
			TierLabel:      c.tier.Label(),
			Status:         status,
			Stat1:          &models.Stat{Value: c.jobs, Label: "Jobs affected"},
			RPIScore:       c.rpi,
			JobsAffected:   c.jobs,
			IsFeatured:     i == 0,
			DisplayOrder:   i,
			Industry:       c.industry,
			Tags:           []string{"automation", c.industry},
			PublishedDate:  now.Add(-time.Duration(i*10) * day),
		})
	}

	for i, category := range []string{"Layoffs", "Policy", "Research", "Layoffs"} {
		status := models.StatusPublished
		if i == 3 {
			status = models.StatusDraft
		}
		s.AddNews(models.NewsItem{
			Title:         fmt.Sprintf("%s update #%d", category, i+1),
			Description:   "Weekly roundup of AI driven workforce changes.",
			Summary:       "Short summary for the feed.",
			Source:        "Newsroom",
			Category:      category,
			Tier:          models.Tier2,
			Status:        status,
			Tags:          []string{category},
			AffectedRoles: []string{"Customer Support"},
			Companies:     []string{"Klarna"},
			KeyStat:       &models.Stat{Value: "30%", Label: "roles at risk"},
			PublishedDate: now.Add(-time.Duration(i) * day),
		})
	}

	s.AddReport(models.Report{
		Title:         "The State of AI Displacement",
		Summary:       "Quarterly analysis of AI adoption and its effect on employment.",
		Content:       "# The State of AI Displacement\n\nAutomation reached **customer support** first.\n\n- Support\n- Operations\n- Back office\n",
		Tags:          []string{"quarterly", "automation"},
		Status:        models.StatusPublished,
		ReadingTime:   12,
		Author:        "Research Desk",
		RichTemplate:  true,
		PublishedDate: now.Add(-3 * day),
	})
	s.AddReport(models.Report{
		Title:         "Banking Sector Outlook",
		Summary:       "Which banking functions are most exposed to automation.",
		Content:       "Branch operations and compliance review lead the exposure ranking.",
		Tags:          []string{"banking"},
		Status:        models.StatusDraft,
		ReadingTime:   8,
		Author:        "Research Desk",
		PublishedDate: now.Add(-1 * day),
	})
	return nil
}
