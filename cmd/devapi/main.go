// Command devapi serves the in-memory workforce intelligence API for local
// development and demos of the wfi client. Data lives in memory only and is
// reseeded on every start.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dheerendra45/news-analyzer/internal/apitest"
	"github.com/dheerendra45/news-analyzer/internal/certgen"
	"github.com/dheerendra45/news-analyzer/internal/logger"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

type options struct {
	addr     string
	logLevel string
	secret   string
	tokenTTL time.Duration
	noSeed   bool
	domains  []string
	tlsDir   string
	tlsHosts []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "devapi",
		Short:        "Serve the in-memory workforce intelligence API",
		Version:      fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.addr, "addr", "a", cmp.Or(os.Getenv("DEVAPI_ADDR"), ":8000"), "listen address")
	f.StringVar(&opts.logLevel, "log-level", cmp.Or(os.Getenv("DEVAPI_LOG_LEVEL"), "info"), "debug, info, warn or error")
	f.StringVar(&opts.secret, "secret", cmp.Or(os.Getenv("DEVAPI_SECRET"), "dev-secret-change-me"), "JWT signing secret")
	f.DurationVar(&opts.tokenTTL, "token-ttl", 24*time.Hour, "access token lifetime")
	f.StringSliceVar(&opts.domains, "admin-domain", apitest.DefaultAdminDomains, "email domains allowed to self-register as admin")
	f.BoolVar(&opts.noSeed, "no-seed", false, "start empty instead of loading the demo catalog")
	f.StringVar(&opts.tlsDir, "tls-dir", os.Getenv("DEVAPI_TLS_DIR"), "serve HTTPS with the development PKI kept in this directory")
	f.StringSliceVar(&opts.tlsHosts, "tls-host", certgen.DefaultHosts, "hosts the server certificate is valid for")

	cmd.AddCommand(newCertsCmd())
	return cmd
}

func newCertsCmd() *cobra.Command {
	var hosts []string
	cmd := &cobra.Command{
		Use:   "certs <dir>",
		Short: "Create the development CA and server certificate",
		Long: "Writes ca.crt, server.crt and server.key into dir. An existing CA is reused.\n" +
			"Point the client's WFI_CA_FILE (or ca_file) at ca.crt to trust the server.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := certgen.Ensure(args[0], hosts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "CA certificate:     %s\n", paths.CA)
			fmt.Fprintf(out, "Server certificate: %s\n", paths.Cert)
			fmt.Fprintf(out, "Server key:         %s\n", paths.Key)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&hosts, "host", certgen.DefaultHosts, "hosts the server certificate is valid for")
	return cmd
}

func serve(ctx context.Context, opts options) error {
	log := logger.New()
	err := log.Init(opts.logLevel)
	if err != nil {
		return err
	}
	zapLogger := log.Log
	defer func() { _ = zapLogger.Sync() }()

	fake := apitest.New(
		apitest.WithLogger(zapLogger),
		apitest.WithTokens(apitest.NewTokens([]byte(opts.secret), opts.tokenTTL, nil)),
		apitest.WithAdminDomains(opts.domains...),
	)
	if !opts.noSeed {
		if err := fake.Seed(); err != nil {
			return err
		}
		zapLogger.Info("seeded demo data",
			zap.String("admin_email", apitest.SeedAdminEmail),
			zap.String("admin_password", apitest.SeedAdminPassword),
		)
	}

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           fake.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var paths certgen.Paths
	if opts.tlsDir != "" {
		if paths, err = certgen.Ensure(opts.tlsDir, opts.tlsHosts); err != nil {
			return err
		}
		zapLogger.Info("TLS enabled", zap.String("ca_file", paths.CA))
	}

	errCh := make(chan error, 1)
	go func() {
		if opts.tlsDir != "" {
			zapLogger.Info("starting HTTPS server", zap.String("addr", opts.addr))
			errCh <- server.ListenAndServeTLS(paths.Cert, paths.Key)
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", opts.addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
