package models

import "time"

// NewsItem is a single article of the news feed.
type NewsItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Summary       string     `json:"summary"`
	Source        string     `json:"source"`
	SourceURL     string     `json:"source_url,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	Category      string     `json:"category"`
	Tier          Tier       `json:"tier"`
	Status        Status     `json:"status"`
	Tags          []string   `json:"tags"`
	AffectedRoles []string   `json:"affected_roles"`
	Companies     []string   `json:"companies"`
	KeyStat       *Stat      `json:"key_stat,omitempty"`
	SecondaryStat *Stat      `json:"secondary_stat,omitempty"`
	PublishedDate time.Time  `json:"published_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	CreatedBy     string     `json:"created_by,omitempty"`
}

// Categories is the body of GET /news/categories/list.
type Categories struct {
	Categories []string `json:"categories"`
}
