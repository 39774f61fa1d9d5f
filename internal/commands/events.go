package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
	"github.com/resio/resio-cli/internal/resio"
)

func parseID(field, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &resio.ValidationError{Field: field, Reason: "must be a numeric id"}
	}
	return id, nil
}

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Community events",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List upcoming events",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					return app.Home.Events(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one event",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					id, err := parseID("eventId", args[0])
					if err != nil {
						return nil, err
					}
					return app.Home.Event(ctx, id)
				})
			},
		},
		&cobra.Command{
			Use:   "rsvp <id> <going|maybe|declined>",
			Short: "RSVP to an event",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					id, err := parseID("eventId", args[0])
					if err != nil {
						return nil, err
					}
					if err := app.Home.SetEventRSVP(ctx, id, args[1]); err != nil {
						return nil, err
					}
					return okStatus("rsvp recorded"), nil
				})
			},
		},
	)
	return cmd
}
