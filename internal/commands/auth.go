package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/resio/resio-cli/internal/appctx"
	"github.com/resio/resio-cli/internal/resio"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the session and account credentials",
	}
	cmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newAuthStatusCmd(),
		newAuthRefreshCmd(),
		newSignupCmd(),
		newForgotPasswordCmd(),
		newResetPasswordCmd(),
		newVerifyEmailCmd(),
	)
	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				return map[string]bool{
					"loggedIn":        app.Client.Tokens().GetToken() != "",
					"hasRefreshToken": app.Client.Tokens().GetRefreshToken() != "",
				}, nil
			})
		},
	}
}

func newAuthRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force an access token refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				if err := app.Client.Refresh(ctx); err != nil {
					return nil, err
				}
				return okStatus("token refreshed"), nil
			})
		},
	}
}

// readPassword prompts on the terminal, or falls back to the flag value.
func readPassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func newLoginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store tokens securely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				pw, err := readPassword(password)
				if err != nil {
					return nil, err
				}
				result, err := app.Auth.Login(ctx, args[0], pw)
				if err != nil {
					return nil, err
				}
				return result.User, nil
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				if err := app.Auth.Logout(ctx); err != nil {
					// Local state is already cleared; report but
					// keep the message honest.
					app.Log.Debug().Err(err).Msg("server-side logout failed")
				}
				return okStatus("logged out"), nil
			})
		},
	}
}

func newSignupCmd() *cobra.Command {
	var req resio.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				req.Email = args[0]
				pw, err := readPassword(req.Password)
				if err != nil {
					return nil, err
				}
				req.Password = pw
				return app.Auth.Signup(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&req.InviteCode, "invite-code", "", "invitation code")
	return cmd
}

func newForgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				if err := app.Auth.ForgotPassword(ctx, args[0]); err != nil {
					return nil, err
				}
				return okStatus("reset email sent"), nil
			})
		},
	}
}

func newResetPasswordCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Set a new password with a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				pw, err := readPassword(password)
				if err != nil {
					return nil, err
				}
				if err := app.Auth.ResetPassword(ctx, args[0], pw); err != nil {
					return nil, err
				}
				return okStatus("password reset"), nil
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password (prompted when omitted)")
	return cmd
}

func newVerifyEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-email <token>",
		Short: "Verify the account email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				if err := app.Auth.VerifyEmail(ctx, args[0]); err != nil {
					return nil, err
				}
				return okStatus("email verified"), nil
			})
		},
	}
}
