package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
)

func newLeasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leases",
		Short: "Lease information",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all leases",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					return app.Home.Leases(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "current",
			Short: "Show the active lease",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					return app.Home.CurrentLease(ctx)
				})
			},
		},
	)
	return cmd
}

func newPropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Property and community details",
	}

	var resourcesPropertyID int
	resources := &cobra.Command{
		Use:   "resources",
		Short: "List community resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				return app.Home.CommunityResources(ctx, resourcesPropertyID)
			})
		},
	}
	resources.Flags().IntVar(&resourcesPropertyID, "property", 0, "property id")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show property office details",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					id, err := parseID("propertyId", args[0])
					if err != nil {
						return nil, err
					}
					return app.Home.PropertyInfo(ctx, id)
				})
			},
		},
		resources,
	)
	return cmd
}

func newConnectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Residents sharing the unit",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List linked accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					return app.Home.LinkedAccounts(ctx)
				})
			},
		},
	)
	return cmd
}

func newWifiCmd() *cobra.Command {
	var leaseID int
	cmd := &cobra.Command{
		Use:   "wifi",
		Short: "Show unit wifi and connectivity details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				return app.Home.UnitInfo(ctx, leaseID)
			})
		},
	}
	cmd.Flags().IntVar(&leaseID, "lease", 0, "lease id")
	return cmd
}
