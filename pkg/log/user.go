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

package log

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about patch outcomes
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 RuleChangeType represents the outcome of a rule against the target
type RuleChangeType int

const (
	RuleApplied RuleChangeType = iota
	RuleNoMatch
	RuleSkipped
	RuleError
)

// 🖼️ RuleChange represents one rule's effect on the target file
type RuleChange struct {
	Type        RuleChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogRuleChange logs a rule outcome with appropriate emoji and formatting
func (u *UserLogger) LogRuleChange(change RuleChange) {
	// Get base name for cleaner output
	relPath := filepath.Base(change.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case RuleApplied:
		prefix = "✨"
		action = "Patched"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case RuleNoMatch:
		prefix = "👍"
		action = "Unchanged"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case RuleSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case RuleError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}
	if change.Error != nil {
		msg += fmt.Sprintf(": %v", change.Error)
	}

	printer.Println(msg)

	u.log.Debug().
		Str("path", change.Path).
		Str("action", action).
		Msg("rule change")
}

// 📝 LogValidation logs a validation outcome
func (u *UserLogger) LogValidation(ok bool, msg string, err error) {
	if ok {
		pterm.Success.Println(msg)
		u.log.Debug().Msg(msg)
		return
	}

	if err != nil {
		pterm.Error.Println(fmt.Sprintf("%s: %v", msg, err))
		u.log.Error().Err(err).Msg(msg)
		return
	}
	pterm.Error.Println(msg)
	u.log.Error().Msg(msg)
}
