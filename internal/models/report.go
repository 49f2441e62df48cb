package models

import "time"

// Report is a long-form research report.
type Report struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Summary       string     `json:"summary"`
	Content       string     `json:"content,omitempty"`
	FileURL       string     `json:"file_url,omitempty"`
	PDFURL        string     `json:"pdf_url,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Tags          []string   `json:"tags"`
	Status        Status     `json:"status"`
	ReadingTime   int        `json:"reading_time,omitempty"`
	Author        string     `json:"author,omitempty"`
	// RichTemplate asks the detail view to use the structured report layout
	// instead of plain content.
	RichTemplate  bool       `json:"rich_template,omitempty"`
	PublishedDate time.Time  `json:"published_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	CreatedBy     string     `json:"created_by,omitempty"`
}

// Tags is the body of GET /reports/tags/list.
type Tags struct {
	Tags []string `json:"tags"`
}
