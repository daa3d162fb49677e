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
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	ruleIndent   = 4  // spaces to indent rule entries
	patternWidth = 35 // Base width for the rule pattern
	statusWidth  = 15 // Width for status text
)

// 🎯 RuleOperation represents a single rule's outcome for logging
type RuleOperation struct {
	Pattern     string // Text the rule searched for
	Replacement string // Text the rule substituted
	Count       int    // Number of replacements made
	IsSkipped   bool   // Whether the rule was excluded by its file filter
}

// 📦 PatchOperation represents a whole-file patch for logging
type PatchOperation struct {
	Path      string // Target file path
	RuleCount int    // Number of configured rules
	DryRun    bool   // Whether this is a check-only run
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *PatchOperation
	operations []RuleOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatRuleOperation formats a rule outcome for display
func (l *Logger) formatRuleOperation(op RuleOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
		status = "skipped"
	case op.Count > 0:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = fmt.Sprintf("%d replaced", op.Count)
	default:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "no match"
	}

	rule := fmt.Sprintf("%q → %q", op.Pattern, op.Replacement)

	// Build the line
	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", ruleIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", patternWidth, rule),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogRuleOperation logs a rule outcome
func (l *Logger) LogRuleOperation(ctx context.Context, op RuleOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatRuleOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Str("pattern", op.Pattern).
		Str("replacement", op.Replacement).
		Int("count", op.Count).
		Bool("is_skipped", op.IsSkipped).
		Msg("rule operation")
}

// 📝 StartPatchOperation starts a new file patch operation
func (l *Logger) StartPatchOperation(ctx context.Context, op PatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	// Print file header
	verb := "patching"
	if op.DryRun {
		verb = "checking"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", verb,
		color.New(color.FgCyan).Sprint(op.Path))

	// Log to zerolog
	l.zlog.Info().
		Str("path", op.Path).
		Int("rules", op.RuleCount).
		Bool("dry_run", op.DryRun).
		Msg("starting patch operation")
}

// 📝 EndPatchOperation ends the current file patch operation
func (l *Logger) EndPatchOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("path", l.currentOp.Path).
		Int("rules", len(l.operations)).
		Msg("patch operation complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	patchrcText := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", patchrcText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
