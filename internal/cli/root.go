// Package cli assembles the command tree.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
	"github.com/resio/resio-cli/internal/commands"
	"github.com/resio/resio-cli/internal/config"
	"github.com/resio/resio-cli/internal/output"
	"github.com/resio/resio-cli/internal/version"
)

// NewRootCmd builds the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	var flags config.FlagOverrides
	var showStats bool

	root := &cobra.Command{
		Use:           "resio",
		Short:         "Resident portal from the command line",
		Long:          "resio talks to the resident portal API: account, events, bulletins, leases, and invitations.",
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags)
			if err != nil {
				return err
			}
			app := appctx.New(cfg, cmd.OutOrStdout())
			cmd.SetContext(appctx.With(cmd.Context(), app))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if !showStats {
				return
			}
			app := appctx.From(cmd.Context())
			data, err := json.MarshalIndent(app.Collector.Snapshot(), "", "  ")
			if err != nil {
				return
			}
			fmt.Fprintln(cmd.ErrOrStderr(), string(data))
		},
	}

	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&flags.BaseURL, "base-url", "", "override the API base URL")
	pf.StringVar(&flags.CacheDir, "cache-dir", "", "override the response cache directory")
	pf.StringVarP(&flags.Format, "format", "f", "", "output format: json, yaml, or quiet")
	pf.IntVar(&flags.Timeout, "timeout", 0, "request timeout in milliseconds")
	pf.BoolVar(&showStats, "stats", false, "print session request statistics to stderr")

	commands.Register(root)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		var ee *commands.ExitError
		if errors.As(err, &ee) {
			// Already rendered by the command.
			return ee.Code
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return output.ExitUsage
	}
	return output.ExitOK
}
