package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/client/editor"
	"github.com/dheerendra45/news-analyzer/internal/client/gateway"
	"github.com/dheerendra45/news-analyzer/internal/client/session"
	"github.com/dheerendra45/news-analyzer/internal/client/storage"
	"github.com/dheerendra45/news-analyzer/internal/client/view"
	"github.com/dheerendra45/news-analyzer/internal/config"
	"github.com/dheerendra45/news-analyzer/internal/logger"
)

// errAdminRequired is returned by back office commands without an admin session.
var errAdminRequired = errors.New("admin access required, log in with an admin account first")

// app holds everything a command needs once the root command has loaded
// the configuration and restored the session.
type app struct {
	in  io.Reader
	out io.Writer

	flags struct {
		config string
		config.Overrides
	}

	opts    *config.Options
	log     *zap.Logger
	client  *api.Client
	session *session.Store
	auth    *gateway.Auth
	news    *gateway.News
	reports *gateway.Reports
	cards   *gateway.Cards
	styles  view.Styles
	prompt  *editor.Prompter
}

// setup loads the configuration, builds the HTTP stack and restores the
// persisted session. A session that cannot be restored is dropped, not fatal.
func (a *app) setup(cmd *cobra.Command) error {
	opts, err := config.Load(a.flags.config)
	if err != nil {
		return err
	}
	opts.Override(a.flags.Overrides)
	if err := opts.Validate(); err != nil {
		return err
	}
	a.opts = opts

	lg := logger.New()
	if err := lg.InitConsole(opts.LogLevel); err != nil {
		return err
	}
	a.log = lg.Log

	hc, err := api.NewHTTPClient(opts.Timeout, opts.CAFile)
	if err != nil {
		return err
	}
	var store *session.Store
	a.client, err = api.New(opts.BaseURL,
		api.WithHTTPClient(hc),
		api.WithLogger(a.log.Named("api")),
		api.WithTokenSource(api.TokenFunc(func() string { return store.Token() })),
	)
	if err != nil {
		return err
	}
	a.auth = gateway.NewAuth(a.client)
	a.news = gateway.NewNews(a.client)
	a.reports = gateway.NewReports(a.client)
	a.cards = gateway.NewCards(a.client)

	store = session.New(a.auth, storage.NewTokenFile(opts.TokenFile), session.WithLogger(a.log.Named("session")))
	a.session = store
	if err := store.Initialize(cmd.Context()); err != nil {
		a.log.Warn("session not restored", zap.Error(err))
	}

	a.styles = view.DefaultStyles()
	a.prompt = editor.NewPrompter(a.in, a.out)
	return nil
}

func (a *app) requireAdmin(*cobra.Command, []string) error {
	if !a.session.IsAdmin() {
		return errAdminRequired
	}
	return nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) println(s string) {
	fmt.Fprintln(a.out, s)
}

// failure turns an API error into the message shown to the user.
func failure(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var verr *editor.ValidationError
	if errors.As(err, &verr) || errors.Is(err, context.Canceled) {
		return err
	}
	return errors.New(api.Message(err, fallback+": "+err.Error()))
}
