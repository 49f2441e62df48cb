package gateway

import (
	"context"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// News wraps the /news endpoints.
type News struct {
	resource[models.NewsItem]
}

// NewNews returns the news gateway.
func NewNews(c *api.Client) *News {
	return &News{resource[models.NewsItem]{client: c, path: "/news"}}
}

// ToggleStatus flips a news item between draft and published.
func (g *News) ToggleStatus(ctx context.Context, id string) (*models.NewsItem, error) {
	var out models.NewsItem
	if err := g.client.Patch(ctx, g.item(id)+"/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories lists the distinct news categories.
func (g *News) Categories(ctx context.Context) ([]string, error) {
	var out models.Categories
	if err := g.client.Get(ctx, "/news/categories/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
