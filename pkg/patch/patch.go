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

package patch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📦 Job describes one patch operation: a single target file plus an
// ordered list of replacement rules. Rule order is significant: each rule
// is applied to the output of the previous one.
type Job struct {
	// Path is the target file. Must reference an existing regular file
	// containing valid UTF-8 text.
	Path string

	// Rules are applied in order. An empty list is still a full rewrite
	// of the unchanged content.
	Rules []text.ReplacementRule
}

// 📊 RuleOutcome describes what a single configured rule did
type RuleOutcome struct {
	// Rule is the configured rule
	Rule text.ReplacementRule

	// Count is the number of replacements the rule made
	Count int

	// Skipped indicates the rule was excluded by its file filter
	Skipped bool
}

// 📊 Result describes a completed patch operation
type Result struct {
	// Path is the patched file
	Path string

	// WasModified indicates if the written content differs from the
	// original
	WasModified bool

	// ReplacementCount is the total number of replacements made
	ReplacementCount int

	// Outcomes holds one entry per configured rule, in rule order
	Outcomes []RuleOutcome

	// OriginalChecksum and PatchedChecksum are SHA-256 hex digests of the
	// content before and after the rules ran
	OriginalChecksum string
	PatchedChecksum  string
}

// 🔍 RulesSkipped counts the rules excluded by their file filter
func (r *Result) RulesSkipped() int {
	skipped := 0
	for _, outcome := range r.Outcomes {
		if outcome.Skipped {
			skipped++
		}
	}
	return skipped
}

// 💾 Patcher performs one read-transform-write cycle over one file
type Patcher interface {
	// Apply reads the target, applies the rules in order and writes the
	// result back in full.
	Apply(ctx context.Context, job Job) (*Result, error)

	// Preview reads the target and applies the rules in memory. The file
	// is never written.
	Preview(ctx context.Context, job Job) (*Result, error)
}

// 🔧 FilePatcher implements Patcher against the local filesystem.
//
// The encoding contract is fixed: content must be valid UTF-8. Invalid
// byte sequences are a DecodeError, never a best-effort decode.
//
// Writes go to a temporary file next to the target which is then renamed
// over it, so a failed write never leaves a mix of old and new content.
type FilePatcher struct {
	replacer text.TextReplacer
}

// 🏭 NewFilePatcher creates a new FilePatcher
func NewFilePatcher() *FilePatcher {
	return &FilePatcher{
		replacer: text.NewSimpleTextReplacer(),
	}
}

// Apply implements Patcher.Apply
func (p *FilePatcher) Apply(ctx context.Context, job Job) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	content, mode, err := p.read(ctx, job)
	if err != nil {
		return nil, err
	}

	// Probe writability before transforming anything, so a read-only
	// target fails cleanly with the file untouched.
	if err := p.probeWritable(job.Path); err != nil {
		return nil, err
	}

	result, patched, err := p.transform(ctx, job, content)
	if err != nil {
		return nil, err
	}

	if err := p.writeAtomic(job.Path, patched, mode); err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", job.Path).
		Int("replacements", result.ReplacementCount).
		Bool("modified", result.WasModified).
		Msg("patched file")

	return result, nil
}

// Preview implements Patcher.Preview
func (p *FilePatcher) Preview(ctx context.Context, job Job) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	content, _, err := p.read(ctx, job)
	if err != nil {
		return nil, err
	}

	result, _, err := p.transform(ctx, job, content)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", job.Path).
		Int("replacements", result.ReplacementCount).
		Msg("previewed patch")

	return result, nil
}

// read loads the whole file and enforces the UTF-8 contract
func (p *FilePatcher) read(ctx context.Context, job Job) ([]byte, os.FileMode, error) {
	if job.Path == "" {
		return nil, 0, errors.Errorf("job path is required")
	}
	if err := p.replacer.ValidateRules(job.Rules); err != nil {
		return nil, 0, errors.Errorf("validating rules: %w", err)
	}

	info, err := os.Stat(job.Path)
	if err != nil {
		return nil, 0, classifyReadError(job.Path, err)
	}

	content, err := os.ReadFile(job.Path)
	if err != nil {
		return nil, 0, classifyReadError(job.Path, err)
	}

	if !utf8.Valid(content) {
		return nil, 0, newError(KindDecodeError, job.Path, errors.New("content is not valid UTF-8"))
	}

	return content, info.Mode().Perm(), nil
}

// transform runs the rule sequence over the in-memory content
func (p *FilePatcher) transform(ctx context.Context, job Job, content []byte) (*Result, []byte, error) {
	outcomes := make([]RuleOutcome, len(job.Rules))
	applied := make([]text.ReplacementRule, 0, len(job.Rules))
	appliedIdx := make([]int, 0, len(job.Rules))

	for i, rule := range job.Rules {
		outcomes[i].Rule = rule
		matched, err := text.RuleMatchesPath(rule, job.Path)
		if err != nil {
			return nil, nil, errors.Errorf("filtering rules: %w", err)
		}
		if !matched {
			outcomes[i].Skipped = true
			continue
		}
		applied = append(applied, rule)
		appliedIdx = append(appliedIdx, i)
	}

	replaced, err := p.replacer.ReplaceText(ctx, bytes.NewReader(content), applied)
	if err != nil {
		return nil, nil, errors.Errorf("applying replacements: %w", err)
	}

	for j, count := range replaced.RuleCounts {
		outcomes[appliedIdx[j]].Count = count
	}

	result := &Result{
		Path:             job.Path,
		WasModified:      replaced.WasModified,
		ReplacementCount: replaced.ReplacementCount,
		Outcomes:         outcomes,
		OriginalChecksum: checksum(replaced.OriginalContent),
		PatchedChecksum:  checksum(replaced.ModifiedContent),
	}
	return result, replaced.ModifiedContent, nil
}

// probeWritable checks write permission on the target without mutating it
func (p *FilePatcher) probeWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return newError(KindAccessDenied, path, err)
	}
	return f.Close()
}

// writeAtomic writes content to a temp file and renames it over the
// target, preserving the original mode bits
func (p *FilePatcher) writeAtomic(path string, content []byte, mode os.FileMode) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, mode); err != nil {
		os.Remove(tempPath)
		return newError(KindWriteFailure, path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return newError(KindWriteFailure, path, err)
	}

	return nil
}

// 🔍 checksum generates a SHA-256 hex digest of the content
func checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
