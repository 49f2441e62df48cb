package gateway

import (
	"context"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// Reports wraps the /reports endpoints.
type Reports struct {
	resource[models.Report]
}

// NewReports returns the reports gateway.
func NewReports(c *api.Client) *Reports {
	return &Reports{resource[models.Report]{client: c, path: "/reports"}}
}

// ToggleStatus flips a report between draft and published.
func (g *Reports) ToggleStatus(ctx context.Context, id string) (*models.Report, error) {
	var out models.Report
	if err := g.client.Patch(ctx, g.item(id)+"/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tags lists the distinct report tags.
func (g *Reports) Tags(ctx context.Context) ([]string, error) {
	var out models.Tags
	if err := g.client.Get(ctx, "/reports/tags/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}
