package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dheerendra45/news-analyzer/internal/client/editor"
	"github.com/dheerendra45/news-analyzer/internal/client/view"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back office: manage news, reports and cards",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.requireAdmin(cmd, args)
		},
	}

	cards := adminResourceCmd(a, "cards", a.cardsKit)
	cards.AddCommand(&cobra.Command{
		Use:   "feature <id>",
		Short: "Toggle the featured flag; featuring a card unfeatures the others",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := a.cardsKit()
			c, err := k.editor(a, nil).Do(cmd.Context(), "toggle-featured", a.cardsToggleFeatured(args[0]))
			if err != nil {
				return failure(err, "Failed to update card")
			}
			a.printf("%s featured=%t\n", c.ID, c.IsFeatured)
			return nil
		},
	})

	cmd.AddCommand(
		adminResourceCmd(a, "news", a.newsKit),
		adminResourceCmd(a, "reports", a.reportsKit),
		cards,
		newUploadCmd(a),
		&cobra.Command{
			Use:   "stats",
			Short: "Show card counters",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				st, err := a.cards.AdminStats(cmd.Context())
				if err != nil {
					return failure(err, "Failed to load stats")
				}
				a.println(view.AdminStats(*st, a.styles))
				return nil
			},
		},
		&cobra.Command{
			Use:   "create-admin",
			Short: "Create another administrator account",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				req, err := a.accountRequest()
				if err != nil {
					return err
				}
				u, err := a.auth.CreateAdmin(cmd.Context(), req)
				if err != nil {
					return failure(err, "Failed to create admin")
				}
				a.printf("Created admin %s <%s>\n", u.Username, u.Email)
				return nil
			},
		},
	)
	return cmd
}

func (a *app) cardsToggleFeatured(id string) func(context.Context) (*models.IntelligenceCard, error) {
	return func(ctx context.Context) (*models.IntelligenceCard, error) {
		return a.cards.ToggleFeatured(ctx, id)
	}
}

// adminResourceCmd builds create, update, delete and toggle for one collection.
func adminResourceCmd[T any](a *app, use string, mk func() kit[T]) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: "Manage " + use}

	var sets []string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a record (prompts for fields unless --set is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := mk()
			values, err := a.formValues(k.form, sets, nil)
			if err != nil {
				return err
			}
			rec, err := k.editor(a, nil).Submit(cmd.Context(), "", values)
			if err != nil {
				return failure(err, "Failed to save")
			}
			return printRecord(a, k, "Created", rec)
		},
	}
	create.Flags().StringArrayVar(&sets, "set", nil, "field value as key=value (repeatable)")

	var updSets []string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a record (prompts with current values unless --set is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := mk()
			var current map[string]string
			if len(updSets) == 0 {
				rec, err := k.api.Get(cmd.Context(), args[0])
				if err != nil {
					return failure(err, "Failed to load "+k.name)
				}
				if current, err = k.form.Values(rec); err != nil {
					return err
				}
			}
			values, err := a.formValues(k.form, updSets, current)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				a.println("Nothing changed")
				return nil
			}
			rec, err := k.editor(a, nil).Submit(cmd.Context(), args[0], values)
			if err != nil {
				return failure(err, "Failed to save")
			}
			return printRecord(a, k, "Updated", rec)
		},
	}
	update.Flags().StringArrayVar(&updSets, "set", nil, "field value as key=value (repeatable); an empty value clears the field")

	cmd.AddCommand(
		create,
		update,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				k := mk()
				if err := k.editor(a, nil).Delete(cmd.Context(), args[0]); err != nil {
					return failure(err, "Failed to delete")
				}
				a.printf("Deleted %s %s\n", k.name, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Toggle between draft and published",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				k := mk()
				rec, err := k.editor(a, nil).ToggleStatus(cmd.Context(), args[0])
				if err != nil {
					return failure(err, "Failed to update status")
				}
				return printRecord(a, k, "Toggled", rec)
			},
		},
	)
	return cmd
}

// formValues reads key=value pairs, or prompts for the whole form when
// there are none.
func (a *app) formValues(form editor.Form, sets []string, current map[string]string) (map[string]string, error) {
	if len(sets) == 0 {
		return a.prompt.Fill(form, current)
	}
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want key=value", s)
		}
		values[strings.TrimSpace(k)] = v
	}
	return values, nil
}

func printRecord[T any](a *app, k kit[T], verb string, rec *T) error {
	out, err := k.detail(*rec)
	if err != nil {
		return err
	}
	a.printf("%s %s\n\n%s\n", verb, k.name, out)
	return nil
}

func newUploadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "upload", Short: "Upload an image or a PDF"}
	for _, kind := range []string{"image", "pdf"} {
		cmd.AddCommand(&cobra.Command{
			Use:   kind + " <file>",
			Short: "Upload a " + kind + " and print its URL",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				upload := a.auth.UploadImage
				if kind == "pdf" {
					upload = a.auth.UploadPDF
				}
				res, err := upload(cmd.Context(), filepath.Base(args[0]), f)
				if err != nil {
					return failure(err, "Upload failed")
				}
				a.println(a.client.ResolveUploadURL(res.URL))
				return nil
			},
		})
	}
	return cmd
}
