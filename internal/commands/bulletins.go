package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
)

func newBulletinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulletins",
		Short: "Community announcements",
	}

	var propertyID, page, perPage int
	list := &cobra.Command{
		Use:   "list",
		Short: "List announcements, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				return app.Home.Bulletins(ctx, propertyID, page, perPage)
			})
		},
	}
	list.Flags().IntVar(&propertyID, "property", 0, "property id")
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&perPage, "per-page", 20, "items per page")

	var unreadPropertyID int
	unread := &cobra.Command{
		Use:     "unread-count",
		Aliases: []string{"unread"},
		Short:   "Count unread announcements",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				n, err := app.Home.UnreadBulletinsCount(ctx, unreadPropertyID)
				if err != nil {
					return nil, err
				}
				return map[string]int{"count": n}, nil
			})
		},
	}
	unread.Flags().IntVar(&unreadPropertyID, "property", 0, "property id")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one announcement",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					id, err := parseID("bulletinId", args[0])
					if err != nil {
						return nil, err
					}
					return app.Home.Bulletin(ctx, id)
				})
			},
		},
		&cobra.Command{
			Use:   "read <id>",
			Short: "Mark an announcement as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					id, err := parseID("bulletinId", args[0])
					if err != nil {
						return nil, err
					}
					if err := app.Home.MarkBulletinRead(ctx, id); err != nil {
						return nil, err
					}
					return okStatus("marked read"), nil
				})
			},
		},
		unread,
	)
	return cmd
}
