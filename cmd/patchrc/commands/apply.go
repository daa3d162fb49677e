package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// OptsFactory builds the shared command options once flags are parsed
type OptsFactory func(ctx context.Context) (*opts.RootOpts, error)

// NewApplyCmd creates a new apply command
func NewApplyCmd(factory OptsFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the configured replacements to the target file",
		Long: `Apply reads the target file, applies each replacement rule in
order over the output of the previous one, and writes the result back to
the same path in full. A rule whose pattern does not occur is a no-op;
an empty rule list still rewrites the file unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			o, err := factory(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewPatchOperation(operation.Options{
				Config:  o.Config,
				Patcher: o.Patcher,
				Logger:  o.Logger,
			})
			if err != nil {
				return errors.Errorf("creating patch operation: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), o.Config.Async)
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("applying patch: %w", err)
			}

			return nil
		},
	}

	return cmd
}
