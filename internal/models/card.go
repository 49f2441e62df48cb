package models

import "time"

// IntelligenceCard is a short company impact analysis shown in the archive
// and on the landing feed.
type IntelligenceCard struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	TitleHighlight  string     `json:"title_highlight"`
	Company         string     `json:"company"`
	CompanyIcon     string     `json:"company_icon"`
	CompanyGradient string     `json:"company_gradient"`
	CompanyLogo     string     `json:"company_logo,omitempty"`
	Category        string     `json:"category"`
	Excerpt         string     `json:"excerpt"`
	Tier            Tier       `json:"tier"`
	TierLabel       string     `json:"tier_label"`
	Status          Status     `json:"status"`
	Stat1           *Stat      `json:"stat1,omitempty"`
	Stat2           *Stat      `json:"stat2,omitempty"`
	Stat3           *Stat      `json:"stat3,omitempty"`
	RPIScore        string     `json:"rpi_score,omitempty"`
	JobsAffected    string     `json:"jobs_affected,omitempty"`
	AIInvestment    string     `json:"ai_investment,omitempty"`
	ReportID        string     `json:"report_id,omitempty"`
	AnalysisURL     string     `json:"analysis_url,omitempty"`
	IsFeatured      bool       `json:"is_featured"`
	DisplayOrder    int        `json:"display_order"`
	Industry        string     `json:"industry,omitempty"`
	Tags            []string   `json:"tags"`
	PublishedDate   time.Time  `json:"published_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	CreatedBy       string     `json:"created_by,omitempty"`
}

// Highlight splits the card title around its highlight fragment.
func (c IntelligenceCard) Highlight() Highlight {
	return SplitHighlight(c.Title, c.TitleHighlight)
}

// PlatformStats backs the landing page hero counters.
type PlatformStats struct {
	TotalAnalyses      int    `json:"total_analyses"`
	TotalRolesAssessed int    `json:"total_roles_assessed"`
	AICapitalTracked   string `json:"ai_capital_tracked"`
	JobsImpacted       string `json:"jobs_impacted"`
	TotalCompanies     int    `json:"total_companies"`
	AccuracyRate       string `json:"accuracy_rate"`
}

// AdminStats backs the admin dashboard counters.
type AdminStats struct {
	TotalCards     int `json:"total_cards"`
	PublishedCards int `json:"published_cards"`
	DraftCards     int `json:"draft_cards"`
	FeaturedCards  int `json:"featured_cards"`
}
