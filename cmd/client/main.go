// Command wfi is the terminal client of the workforce intelligence API:
// public feeds, report reading and export, and the admin back office.
package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:   "wfi",
		Short: "Workforce intelligence client",
		Long: `wfi reads the workforce intelligence feeds (news, reports, intelligence
cards) and manages them from the admin back office.

The session token is kept in the token file between runs; log in once with
"wfi login" and every later command reuses it until it expires.`,
		Version:       fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (default wfi.yaml, or $WFI_CONFIG)")
	pf.StringVar(&a.flags.BaseURL, "base-url", "", "API base URL, e.g. http://localhost:8000/api")
	pf.StringVar(&a.flags.TokenFile, "token-file", "", "where the session token is stored")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "debug, info, warn or error")
	pf.DurationVar(&a.flags.Timeout, "timeout", 0, "HTTP request timeout")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRegisterCmd(a),
		newNewsCmd(a),
		newReportsCmd(a),
		newCardsCmd(a),
		newDashboardCmd(a),
		newBrowseCmd(a),
		newAdminCmd(a),
		newShellCmd(a),
	)
	return root
}
