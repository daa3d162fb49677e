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

package text

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// SimpleTextReplacer implements TextReplacer using basic string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		RuleCounts:      make([]int, len(rules)),
	}

	// Apply each rule over the output of the previous one
	currentContent := string(originalContent)
	for i, rule := range rules {
		// Skip empty rules rather than looping forever
		if rule.FromText == "" {
			continue
		}

		count := strings.Count(currentContent, rule.FromText)
		if count == 0 {
			continue
		}

		currentContent = strings.ReplaceAll(currentContent, rule.FromText, rule.ToText)
		result.RuleCounts[i] = count
		result.ReplacementCount += count
	}

	result.ModifiedContent = []byte(currentContent)
	result.WasModified = currentContent != string(originalContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
	}
	return nil
}

// 🔍 RuleMatchesPath reports whether a rule applies to the given target path.
// A rule with no FileFilterGlob always applies; otherwise the glob is matched
// against the slash path and against the base name.
func RuleMatchesPath(rule ReplacementRule, path string) (bool, error) {
	if rule.FileFilterGlob == "" {
		return true, nil
	}

	slashPath := filepath.ToSlash(path)
	matched, err := doublestar.Match(rule.FileFilterGlob, slashPath)
	if err != nil {
		return false, errors.Errorf("matching %q against %q: %w", rule.FileFilterGlob, slashPath, err)
	}
	if matched {
		return true, nil
	}

	matched, err = doublestar.Match(rule.FileFilterGlob, filepath.Base(path))
	if err != nil {
		return false, errors.Errorf("matching %q against %q: %w", rule.FileFilterGlob, filepath.Base(path), err)
	}
	return matched, nil
}

// 🔍 FilterRulesForPath returns the subset of rules that apply to path,
// preserving rule order.
func FilterRulesForPath(rules []ReplacementRule, path string) ([]ReplacementRule, error) {
	filtered := make([]ReplacementRule, 0, len(rules))
	for _, rule := range rules {
		matched, err := RuleMatchesPath(rule, path)
		if err != nil {
			return nil, err
		}
		if matched {
			filtered = append(filtered, rule)
		}
	}
	return filtered, nil
}
