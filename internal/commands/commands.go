// Package commands implements the resio subcommands.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
	"github.com/resio/resio-cli/internal/output"
)

// Register attaches every subcommand to root.
func Register(root *cobra.Command) {
	root.AddCommand(
		newAuthCmd(),
		newUserCmd(),
		newEventsCmd(),
		newBulletinsCmd(),
		newLeasesCmd(),
		newPropertyCmd(),
		newConnectionsCmd(),
		newInvitationsCmd(),
		newWifiCmd(),
		newAPICmd(),
		newConfigCmd(),
	)
}

// ExitError carries an exit code for an error that has already been
// rendered to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// run executes fn with the App, rendering the result or error in the
// configured format.
func run(cmd *cobra.Command, fn func(ctx context.Context, app *appctx.App) (any, error)) error {
	app := appctx.From(cmd.Context())
	v, err := fn(cmd.Context(), app)
	if err != nil {
		app.Out.Err(err)
		return &ExitError{Code: output.ExitCodeFor(err)}
	}
	if v == nil {
		return nil
	}
	return app.Out.OK(v)
}

// okMessage is the envelope for operations with no payload.
type okMessage struct {
	Status string `json:"status" yaml:"status"`
}

func okStatus(s string) okMessage {
	return okMessage{Status: s}
}
