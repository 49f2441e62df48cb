package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dheerendra45/news-analyzer/internal/client/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "browse <news|reports|cards>",
		Short:     "Browse a collection interactively",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"news", "reports", "cards"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch args[0] {
			case "news":
				return browse(ctx, a, "News", a.newsKit())
			case "reports":
				return browse(ctx, a, "Reports", a.reportsKit())
			case "cards":
				return browse(ctx, a, "Intelligence", a.cardsKit())
			default:
				return fmt.Errorf("unknown collection %q", args[0])
			}
		},
	}
}

func browse[T any](ctx context.Context, a *app, title string, k kit[T]) error {
	m := tui.New(ctx, title, k.controller(a), tui.Columns[T]{
		Headers: k.headers,
		Row:     k.row,
		Detail: func(it T) string {
			out, err := k.detail(it)
			if err != nil {
				return err.Error()
			}
			return out
		},
	})
	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithInput(a.in), tea.WithOutput(a.out)).Run()
	return err
}
