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

// 📦 NewPatchOperation creates the operation that applies the configured
// rules to the target file and writes the result back
func NewPatchOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return &patchOperation{
		BaseOperation: NewBaseOperation(opts),
	}, nil
}

// 📦 patchOperation implements the patch operation
type patchOperation struct {
	BaseOperation
}

func (op *patchOperation) Name() string {
	return "patch"
}

// 🏃 Execute runs the patch operation
func (op *patchOperation) Execute(ctx context.Context) error {
	job := op.job()

	op.Logger.StartPatchOperation(ctx, log.PatchOperation{
		Path:      job.Path,
		RuleCount: len(job.Rules),
	})
	defer op.Logger.EndPatchOperation(ctx)

	result, err := op.Patcher.Apply(ctx, job)
	if err != nil {
		return errors.Errorf("patching %s: %w", job.Path, err)
	}

	op.logOutcomes(ctx, result)

	if result.WasModified {
		op.Logger.Successf("patched %s (%d replacements)", job.Path, result.ReplacementCount)
	} else {
		op.Logger.Infof("rewrote %s unchanged", job.Path)
	}

	return nil
}
