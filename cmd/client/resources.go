package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dheerendra45/news-analyzer/internal/client/editor"
	"github.com/dheerendra45/news-analyzer/internal/client/gateway"
	"github.com/dheerendra45/news-analyzer/internal/client/listctl"
	"github.com/dheerendra45/news-analyzer/internal/client/view"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// resourceAPI is the gateway surface shared by news, reports and cards.
type resourceAPI[T any] interface {
	editor.Gateway[T]
	List(ctx context.Context, p gateway.Params) (*models.ListResult[T], error)
	Get(ctx context.Context, id string) (*T, error)
}

// filterFlag binds a list command flag to a query filter.
type filterFlag struct {
	flag, key, usage string
}

// kit bundles what the generic commands need to handle one collection.
type kit[T any] struct {
	name    string
	api     resourceAPI[T]
	form    editor.Form
	headers []string
	row     func(T) []string
	detail  func(T) (string, error)
	config  listctl.Config
	filters []filterFlag
}

func (a *app) newsKit() kit[models.NewsItem] {
	return kit[models.NewsItem]{
		name:    "news",
		api:     a.news,
		form:    editor.NewsForm,
		headers: view.NewsHeaders,
		row:     view.NewsRow,
		detail: func(n models.NewsItem) (string, error) {
			return view.News(n, a.styles), nil
		},
		config: listctl.NewsConfig(a.opts.PageSizes.News),
	}
}

func (a *app) reportsKit() kit[models.Report] {
	return kit[models.Report]{
		name:    "report",
		api:     a.reports,
		form:    editor.ReportForm,
		headers: view.ReportHeaders,
		row:     view.ReportRow,
		detail: func(r models.Report) (string, error) {
			return view.Report(r, view.ReportOptions{ResolveURL: a.client.ResolveUploadURL}, a.styles)
		},
		config: listctl.ReportsConfig(a.opts.PageSizes.Reports),
	}
}

func (a *app) cardsKit() kit[models.IntelligenceCard] {
	cfg := listctl.CardsConfig(a.opts.PageSizes.Cards)
	if a.session.IsAdmin() {
		cfg = listctl.AdminCardsConfig(a.opts.PageSizes.Cards)
	}
	return kit[models.IntelligenceCard]{
		name:    "card",
		api:     a.cards,
		form:    editor.CardForm,
		headers: view.CardHeaders,
		row:     view.CardRow,
		detail: func(c models.IntelligenceCard) (string, error) {
			return view.Card(c, a.styles), nil
		},
		config: cfg,
	}
}

var (
	newsFilters = []filterFlag{
		{"tier", "tier", "tier_1, tier_2 or tier_3"},
		{"category", "category", "news category"},
		{"status", "status", "draft, published or archived (admin)"},
	}
	reportFilters = []filterFlag{
		{"tag", "tag", "report tag"},
		{"status", "status", "draft, published or archived (admin)"},
	}
	cardFilters = []filterFlag{
		{"company", "company", "company name"},
		{"tier", "tier", "tier_1, tier_2 or tier_3"},
		{"category", "category", "card category"},
		{"industry", "industry", "industry"},
		{"date", "date_filter", "7d, 30d, 90d or a year"},
		{"sort", "sort_by", "newest, oldest, rpi-high, rpi-low or jobs"},
		{"status", "status", "draft, published or archived (admin)"},
	}
)

// controller builds a list controller over the kit's gateway.
func (k kit[T]) controller(a *app) *listctl.Controller[T] {
	return listctl.New(func(ctx context.Context, q listctl.Query) (*models.ListResult[T], error) {
		return k.api.List(ctx, gateway.Params(q))
	}, k.config, listctl.WithLogger[T](a.log.Named(k.name)))
}

// editor builds the back office editor, refreshing ctl when it is set.
func (k kit[T]) editor(a *app, ctl *listctl.Controller[T]) *editor.Editor[T] {
	var refresh func(context.Context)
	if ctl != nil {
		refresh = func(ctx context.Context) { ctl.Refresh(ctx) }
	}
	return editor.New[T](k.form, k.api, refresh, editor.WithLogger[T](a.log.Named(k.name)))
}

func (k kit[T]) printList(a *app, snap listctl.Snapshot[T]) error {
	a.println(view.List(snap, k.headers, k.row, a.styles))
	if snap.State == listctl.Failed {
		return fmt.Errorf("%s", snap.Message)
	}
	return nil
}

func (k kit[T]) show(ctx context.Context, a *app, id string) error {
	rec, err := k.api.Get(ctx, id)
	if err != nil {
		return failure(err, "Failed to load "+k.name)
	}
	out, err := k.detail(*rec)
	if err != nil {
		return err
	}
	a.println(out)
	return nil
}

// listCmd is "<resource> list" with one flag per filter.
func listCmd[T any](a *app, mk func() kit[T], filters []filterFlag) *cobra.Command {
	var (
		page   int
		search string
	)
	values := make([]string, len(filters))
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List one page",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := mk()
			q := listctl.Query{Page: page, Filters: map[string]string{}}
			for i, f := range filters {
				if values[i] != "" {
					q.Filters[f.key] = values[i]
				}
			}
			if search != "" {
				q.Filters[listctl.DefaultSearchKey] = search
			}
			return k.printList(a, k.controller(a).Load(cmd.Context(), q))
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVarP(&search, "search", "s", "", "free text search")
	for i, f := range filters {
		cmd.Flags().StringVar(&values[i], f.flag, "", f.usage)
	}
	return cmd
}

func showCmd[T any](a *app, mk func() kit[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mk().show(cmd.Context(), a, args[0])
		},
	}
}

func newNewsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "news", Short: "Read the news archive"}
	cmd.AddCommand(
		listCmd(a, a.newsKit, newsFilters),
		showCmd(a, a.newsKit),
		&cobra.Command{
			Use:   "categories",
			Short: "List news categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cats, err := a.news.Categories(cmd.Context())
				if err != nil {
					return failure(err, "Failed to load categories")
				}
				a.println(strings.Join(cats, "\n"))
				return nil
			},
		},
	)
	return cmd
}

func newCardsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "cards", Short: "Read the intelligence cards"}
	var limit int
	landing := &cobra.Command{
		Use:   "landing",
		Short: "Show the landing page feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cards, err := a.cards.Landing(cmd.Context(), limit)
			if err != nil {
				return failure(err, "Failed to load the feed")
			}
			t := view.Table{Headers: view.CardHeaders}
			for _, c := range cards {
				t.AddRow(view.CardRow(c)...)
			}
			a.println(t.Render(a.styles, 48))
			return nil
		},
	}
	landing.Flags().IntVar(&limit, "limit", 8, "number of cards (1-20)")

	cmd.AddCommand(
		listCmd(a, a.cardsKit, cardFilters),
		showCmd(a, a.cardsKit),
		landing,
		&cobra.Command{
			Use:   "featured",
			Short: "Show the featured card",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := a.cards.Featured(cmd.Context())
				if err != nil {
					return failure(err, "Failed to load the featured card")
				}
				if c == nil {
					a.println("No featured card")
					return nil
				}
				a.println(view.Card(*c, a.styles))
				return nil
			},
		},
	)
	return cmd
}
