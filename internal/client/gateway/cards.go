package gateway

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// DefaultLandingLimit is the number of cards in the landing feed.
const DefaultLandingLimit = 8

// Cards wraps the /intelligence-cards endpoints.
type Cards struct {
	resource[models.IntelligenceCard]
}

// NewCards returns the intelligence cards gateway.
func NewCards(c *api.Client) *Cards {
	return &Cards{resource[models.IntelligenceCard]{client: c, path: "/intelligence-cards"}}
}

// ToggleStatus flips a card between draft and published.
func (g *Cards) ToggleStatus(ctx context.Context, id string) (*models.IntelligenceCard, error) {
	return g.action(ctx, id, "toggle-status")
}

// ToggleFeatured flips the featured flag of a card.
func (g *Cards) ToggleFeatured(ctx context.Context, id string) (*models.IntelligenceCard, error) {
	return g.action(ctx, id, "toggle-featured")
}

func (g *Cards) action(ctx context.Context, id, name string) (*models.IntelligenceCard, error) {
	var out models.IntelligenceCard
	if err := g.client.Post(ctx, g.item(id)+"/"+name, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Landing returns the published cards of the landing feed, at most limit.
func (g *Cards) Landing(ctx context.Context, limit int) ([]models.IntelligenceCard, error) {
	if limit <= 0 {
		limit = DefaultLandingLimit
	}
	var out []models.IntelligenceCard
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := g.client.Get(ctx, g.path+"/landing", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Featured returns the archive banner card. It is nil when nothing is published.
func (g *Cards) Featured(ctx context.Context) (*models.IntelligenceCard, error) {
	var out *models.IntelligenceCard
	if err := g.client.Get(ctx, g.path+"/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns the public platform counters.
func (g *Cards) Stats(ctx context.Context) (*models.PlatformStats, error) {
	var out models.PlatformStats
	if err := g.client.Get(ctx, g.path+"/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminStats returns the back office counters; admin only.
func (g *Cards) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var out models.AdminStats
	if err := g.client.Get(ctx, g.path+"/admin-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
