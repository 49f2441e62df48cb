package models

// ListResult is the paginated envelope returned by every collection endpoint.
type ListResult[T any] struct {
	// Items holds the records of the requested page, in server order.
	Items []T `json:"items"`
	// Total is the number of records matching the query across all pages.
	Total int `json:"total"`
	// Page is the 1-based page number that was served.
	Page int `json:"page"`
	// Size is the page size that was applied.
	Size int `json:"size"`
	// Pages is the total page count; the server reports at least 1.
	Pages int `json:"pages"`
}

// Status is the publication state shared by news, reports and cards.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Tier classifies the severity of a news item or intelligence card.
type Tier string

const (
	Tier1 Tier = "tier_1"
	Tier2 Tier = "tier_2"
	Tier3 Tier = "tier_3"
)

// Label returns the human readable tier name used by filter chips.
func (t Tier) Label() string {
	switch t {
	case Tier1:
		return "Tier 1 — Critical"
	case Tier2:
		return "Tier 2 — Elevated"
	case Tier3:
		return "Tier 3 — Moderate"
	default:
		return string(t)
	}
}

// Stat is a value/label pair shown next to a record.
type Stat struct {
	Value string `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
	// Type is the severity hint of card stats ("critical", "elevated", "moderate").
	Type string `json:"type,omitempty"`
}
