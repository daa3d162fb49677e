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
)

// 🔄 ReplacementRule defines a single literal text replacement
type ReplacementRule struct {
	// FromText is the literal text to replace. Must be non-empty.
	FromText string

	// ToText is the replacement text. May be empty (deletion).
	ToText string

	// FileFilterGlob optionally restricts the rule to targets whose path
	// (or base name) matches the glob. Empty means the rule always applies.
	FileFilterGlob string
}

// 📊 ReplacementResult contains the outcome of applying a rule sequence
type ReplacementResult struct {
	// WasModified indicates if any replacement changed the content
	WasModified bool

	// ReplacementCount is the total number of replacements made
	ReplacementCount int

	// RuleCounts holds the number of replacements made by each rule,
	// indexed in rule order
	RuleCounts []int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// 🎯 TextReplacer applies ordered replacement rules to textual content
type TextReplacer interface {
	// ReplaceText applies the rules in order, each rule seeing the output
	// of the previous one. Replacement is literal, non-overlapping and
	// left-to-right: each match is consumed and the scan resumes after
	// the replacement text.
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are well formed
	ValidateRules(rules []ReplacementRule) error
}
