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

	"github.com/walteh/patchrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewCheckOperation creates the dry-run operation: it applies the
// configured rules in memory and reports what would change. The target
// file is never written.
func NewCheckOperation(opts Options) (*CheckOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return &CheckOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 📦 CheckOperation implements the dry-run operation
type CheckOperation struct {
	BaseOperation

	wouldModify bool
}

func (op *CheckOperation) Name() string {
	return "check"
}

// 🔍 WouldModify reports whether the last Execute found pending changes
func (op *CheckOperation) WouldModify() bool {
	return op.wouldModify
}

// 🏃 Execute runs the check operation
func (op *CheckOperation) Execute(ctx context.Context) error {
	job := op.job()

	op.Logger.StartPatchOperation(ctx, log.PatchOperation{
		Path:      job.Path,
		RuleCount: len(job.Rules),
		DryRun:    true,
	})
	defer op.Logger.EndPatchOperation(ctx)

	result, err := op.Patcher.Preview(ctx, job)
	if err != nil {
		return errors.Errorf("checking %s: %w", job.Path, err)
	}

	op.logOutcomes(ctx, result)
	op.wouldModify = result.WasModified

	if result.WasModified {
		op.Logger.Warningf("%s would change (%d replacements)", job.Path, result.ReplacementCount)
	} else {
		op.Logger.Infof("%s is up to date", job.Path)
	}

	return nil
}
