package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dheerendra45/news-analyzer/internal/client/editor"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if email == "" {
				if email, err = a.prompt.Line("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt.Secret("Password: "); err != nil {
					return err
				}
			}
			u, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return failure(err, "Login failed")
			}
			a.printf("Logged in as %s (%s)\n", u.Username, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			a.println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			u := a.session.User()
			if u == nil {
				a.println("Not logged in")
				return nil
			}
			a.printf("%s <%s> role=%s\n", u.Username, u.Email, u.Role)
			return nil
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var asAdmin bool
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a reader account",
		Long: `Create a reader account. With --admin the account is registered as an
administrator, which the server only accepts for staff email domains.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.accountRequest()
			if err != nil {
				return err
			}
			register := a.auth.Register
			if asAdmin {
				register = a.auth.RegisterAdmin
			}
			u, err := register(cmd.Context(), req)
			if err != nil {
				return failure(err, "Registration failed")
			}
			a.printf("Created %s account %s <%s>\n", u.Role, u.Username, u.Email)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asAdmin, "admin", false, "register as administrator")
	return cmd
}

// accountRequest prompts for the account form and checks it locally.
func (a *app) accountRequest() (models.RegisterRequest, error) {
	values, err := a.prompt.Fill(editor.AccountForm, nil)
	if err != nil {
		return models.RegisterRequest{}, err
	}
	payload, err := editor.AccountForm.Parse(values, false)
	if err != nil {
		return models.RegisterRequest{}, err
	}
	return models.RegisterRequest{
		Email:    fmt.Sprint(payload["email"]),
		Username: fmt.Sprint(payload["username"]),
		Password: fmt.Sprint(payload["password"]),
	}, nil
}
