package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dheerendra45/news-analyzer/internal/client/view"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// dashboard is the landing page data, fetched concurrently.
type dashboard struct {
	stats    *models.PlatformStats
	featured *models.IntelligenceCard
	feed     []models.IntelligenceCard
	admin    *models.AdminStats
}

func newDashboardCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Platform counters, the featured card and the latest feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var d dashboard
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() (err error) {
				d.stats, err = a.cards.Stats(ctx)
				return err
			})
			g.Go(func() (err error) {
				d.featured, err = a.cards.Featured(ctx)
				return err
			})
			g.Go(func() (err error) {
				d.feed, err = a.cards.Landing(ctx, limit)
				return err
			})
			if a.session.IsAdmin() {
				g.Go(func() (err error) {
					d.admin, err = a.cards.AdminStats(ctx)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return failure(err, "Failed to load the dashboard")
			}
			a.println(d.render(a))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 8, "number of feed cards (1-20)")
	return cmd
}

func (d dashboard) render(a *app) string {
	out := a.styles.Title.Render("Platform") + "\n" + view.PlatformStats(*d.stats, a.styles)
	if d.admin != nil {
		out += "\n\n" + a.styles.Title.Render("Back office") + "\n" + view.AdminStats(*d.admin, a.styles)
	}
	if d.featured != nil {
		out += "\n\n" + a.styles.Title.Render("Featured") + "\n" + view.Card(*d.featured, a.styles)
	}
	t := view.Table{Headers: view.CardHeaders}
	for _, c := range d.feed {
		t.AddRow(view.CardRow(c)...)
	}
	return out + "\n\n" + a.styles.Title.Render("Latest") + "\n" + t.Render(a.styles, 48)
}
