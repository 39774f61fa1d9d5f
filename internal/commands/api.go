package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/resio/resio-cli/internal/appctx"
	"github.com/resio/resio-cli/internal/endpoint"
)

// newAPICmd exposes the raw authenticated pipeline for endpoints that
// have no dedicated subcommand yet.
func newAPICmd() *cobra.Command {
	var (
		apiVersion string
		kind       string
		data       string
		jqExpr     string
	)
	cmd := &cobra.Command{
		Use:   "api <method> <path>",
		Short: "Make a raw authenticated API request",
		Long:  "Sends a request through the normal pipeline (auth header, refresh on 401) to an arbitrary path.",
		Example: `  resio api GET home/events
  resio api GET home/bulletins --api-version v2 --jq '.items[].title'
  resio api POST home/invitations --data '{"email": "friend@example.com"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *appctx.App) (any, error) {
				method := strings.ToUpper(args[0])

				var body any
				if data != "" {
					if err := json.Unmarshal([]byte(data), &body); err != nil {
						return nil, fmt.Errorf("--data is not valid JSON: %w", err)
					}
				}

				ep := app.Client.Resolver().Resolve(endpoint.Kind(kind), endpoint.Version(apiVersion), args[1])
				resp, err := app.Client.Do(ctx, method, ep, body)
				if err != nil {
					return nil, err
				}

				var decoded any
				if err := resp.Decode(&decoded); err != nil {
					// Not JSON; hand back the raw text.
					return string(resp.Body), nil
				}
				if jqExpr == "" {
					return decoded, nil
				}
				return applyJQ(jqExpr, decoded)
			})
		},
	}
	cmd.Flags().StringVar(&apiVersion, "api-version", string(endpoint.V1), "API version segment (v1-v4)")
	cmd.Flags().StringVar(&kind, "kind", string(endpoint.KindResio), "backend family: resio or cardConnect")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVar(&jqExpr, "jq", "", "filter the response with a jq expression")
	return cmd
}

// applyJQ runs a jq expression over v and collects the outputs.
func applyJQ(expr string, v any) (any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing jq expression: %w", err)
	}

	var results []any
	iter := query.Run(v)
	for {
		out, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := out.(error); isErr {
			return nil, fmt.Errorf("jq: %w", err)
		}
		results = append(results, out)
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}
