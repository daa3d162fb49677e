// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single executable unit of work
type Operation interface {
	// Execute runs the operation
	Execute(ctx context.Context) error

	// Name identifies the operation in logs
	Name() string
}

// 🔧 Options contains configuration for operations
type Options struct {
	// Config is the patch job configuration
	Config *config.Config
	// Patcher performs the read-transform-write cycle
	Patcher patch.Patcher
	// Logger reports progress to the console
	Logger *log.Logger
}

// validate checks that all required options are set
func (opts Options) validate() error {
	if opts.Config == nil {
		return errors.Errorf("config is required")
	}
	if opts.Patcher == nil {
		return errors.Errorf("patcher is required")
	}
	if opts.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}

// 📦 BaseOperation holds the collaborators shared by all operations
type BaseOperation struct {
	Config  *config.Config
	Patcher patch.Patcher
	Logger  *log.Logger
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Config:  opts.Config,
		Patcher: opts.Patcher,
		Logger:  opts.Logger,
	}
}

// job builds the patch job from the configuration
func (op *BaseOperation) job() patch.Job {
	return patch.Job{
		Path:  op.Config.Target,
		Rules: op.Config.ReplacementRules(),
	}
}

// logOutcomes prints one console line per configured rule
func (op *BaseOperation) logOutcomes(ctx context.Context, result *patch.Result) {
	for _, outcome := range result.Outcomes {
		op.Logger.LogRuleOperation(ctx, log.RuleOperation{
			Pattern:     outcome.Rule.FromText,
			Replacement: outcome.Rule.ToText,
			Count:       outcome.Count,
			IsSkipped:   outcome.Skipped,
		})
	}
}
