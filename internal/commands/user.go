package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
	"github.com/resio/resio-cli/internal/resio"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "View and manage the account profile",
	}
	cmd.AddCommand(
		newUserShowCmd(),
		newUserUpdateCmd(),
		newUserChangePasswordCmd(),
		newUserDeleteCmd(),
	)
	return cmd
}

func newUserShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "me",
		Aliases: []string{"show"},
		Short:   "Show the authenticated user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				return app.Auth.CurrentUser(ctx)
			})
		},
	}
}

func newUserUpdateCmd() *cobra.Command {
	var req resio.UpdateUserRequest
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				return app.Auth.UpdateUser(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	return cmd
}

func newUserChangePasswordCmd() *cobra.Command {
	var current, next string
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				pw, err := readPassword(next)
				if err != nil {
					return nil, err
				}
				if err := app.Auth.ChangePassword(ctx, current, pw); err != nil {
					return nil, err
				}
				return okStatus("password changed"), nil
			})
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password (prompted when omitted)")
	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account and clear local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				if !confirmed {
					return nil, &resio.ValidationError{Field: "confirm", Reason: "pass --confirm to delete the account"}
				}
				if err := app.Auth.DeleteAccount(ctx); err != nil {
					return nil, err
				}
				return okStatus("account deleted"), nil
			})
		},
	}
	cmd.Flags().BoolVar(&confirmed, "confirm", false, "confirm deletion")
	return cmd
}
