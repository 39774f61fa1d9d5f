package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and change configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the resolved configuration and where each value came from",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					return map[string]any{
						"config":  app.Config,
						"sources": app.Config.Sources,
					}, nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Persist a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					if err := app.Config.Set(args[0], args[1]); err != nil {
						return nil, err
					}
					if err := app.Config.Save(); err != nil {
						return nil, err
					}
					return okStatus("saved"), nil
				})
			},
		},
	)
	return cmd
}
