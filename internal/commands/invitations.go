package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
)

func newInvitationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invitations",
		Short: "Invite others to the unit",
	}

	var message string
	send := &cobra.Command{
		Use:   "send <email>",
		Short: "Send an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				if err := app.Home.SendInvitation(ctx, args[0], message); err != nil {
					return nil, err
				}
				return okStatus("invitation sent"), nil
			})
		},
	}
	send.Flags().StringVarP(&message, "message", "m", "", "personal message to include")

	var sender string
	decline := &cobra.Command{
		Use:   "decline <id>",
		Short: "Decline an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				id, err := parseID("invitationId", args[0])
				if err != nil {
					return nil, err
				}
				if err := app.Home.DeclineInvitation(ctx, id, sender); err != nil {
					return nil, err
				}
				return okStatus("invitation declined"), nil
			})
		},
	}
	decline.Flags().StringVar(&sender, "sender", "", "name of the person who sent the invitation")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List pending invitations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					return app.Home.Invitations(ctx)
				})
			},
		},
		send,
		&cobra.Command{
			Use:   "accept <id>",
			Short: "Accept an invitation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
					id, err := parseID("invitationId", args[0])
					if err != nil {
						return nil, err
					}
					if err := app.Home.AcceptInvitation(ctx, id); err != nil {
						return nil, err
					}
					return okStatus("invitation accepted"), nil
				})
			},
		},
		decline,
	)
	return cmd
}
