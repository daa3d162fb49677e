package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(factory OptsFactory) *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report what apply would change, without writing anything",
		Long: `Check reads the target file and applies the configured rules in
memory. It reports each rule's effect but never writes the file. With
--exit-code the command fails when changes are pending, which is useful
in CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			o, err := factory(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewCheckOperation(operation.Options{
				Config:  o.Config,
				Patcher: o.Patcher,
				Logger:  o.Logger,
			})
			if err != nil {
				return errors.Errorf("creating check operation: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), o.Config.Async)
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("checking target: %w", err)
			}

			if op.WouldModify() {
				o.UserLogger.LogRuleChange(log.RuleChange{
					Type:        log.RuleApplied,
					Path:        o.Config.Target,
					Description: "changes pending",
				})
				if exitCode {
					return errors.Errorf("%s has pending changes", o.Config.Target)
				}
			} else {
				o.UserLogger.LogRuleChange(log.RuleChange{
					Type: log.RuleNoMatch,
					Path: o.Config.Target,
				})
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit non-zero when changes are pending")

	return cmd
}
