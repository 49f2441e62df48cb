package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dheerendra45/news-analyzer/internal/client/export"
	"github.com/dheerendra45/news-analyzer/internal/client/view"
)

func newReportsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "reports", Short: "Read research reports"}

	var style string
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Render a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.reports.Get(cmd.Context(), args[0])
			if err != nil {
				return failure(err, "Failed to load report")
			}
			out, err := view.Report(*r, view.ReportOptions{
				Style:      style,
				ResolveURL: a.client.ResolveUploadURL,
			}, a.styles)
			if err != nil {
				return err
			}
			a.println(out)
			return nil
		},
	}
	show.Flags().StringVar(&style, "style", "", "markdown style: dark, light or notty (default: detect)")

	var output string
	exp := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a report as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.reports.Get(cmd.Context(), args[0])
			if err != nil {
				return failure(err, "Failed to load report")
			}
			if output == "" {
				output = slug(r.Title) + ".pdf"
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := export.ReportPDF(f, *r, export.Options{ResolveURL: a.client.ResolveUploadURL}); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.printf("Wrote %s\n", output)
			return nil
		},
	}
	exp.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from the title)")

	cmd.AddCommand(
		listCmd(a, a.reportsKit, reportFilters),
		show,
		exp,
		&cobra.Command{
			Use:   "tags",
			Short: "List report tags",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tags, err := a.reports.Tags(cmd.Context())
				if err != nil {
					return failure(err, "Failed to load tags")
				}
				a.println(strings.Join(tags, "\n"))
				return nil
			},
		},
	)
	return cmd
}

// slug turns a title into a file name.
func slug(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(sb.String(), "-")
	if s == "" {
		return fmt.Sprintf("report-%d", os.Getpid())
	}
	return s
}
