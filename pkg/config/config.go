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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule represents a single string replacement in the target file
type Rule struct {
	Old        string  `json:"old" yaml:"old"`                                     // Original string to replace
	New        string  `json:"new" yaml:"new"`                                     // New string to use
	FileFilter *string `json:"file_filter,omitempty" yaml:"file_filter,omitempty"` // Optional glob the target must match
}

// 📚 Config represents one patch job: a target file plus an ordered list
// of replacement rules
type Config struct {
	Target string `json:"target" yaml:"target"`
	Rules  []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	Async  bool   `json:"async,omitempty" yaml:"async,omitempty"`
}

// 🎯 Load loads the configuration from a file. The format is determined by
// the file extension: .yaml/.yml, .json, .hcl. A .patchrc file is tried as
// YAML first, then HCL.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	if strings.HasSuffix(path, ".patchrc") || filepath.Base(path) == ".patchrc" {
		return loadFallback(ctx, data)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFallback tries YAML first, then HCL
func loadFallback(ctx context.Context, data []byte) (*Config, error) {
	cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
	if yamlErr == nil {
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}

	cfg, hclErr := (&HCLParser{}).Parse(ctx, data)
	if hclErr == nil {
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}

	return nil, errors.Errorf("failed to parse .patchrc as YAML or HCL: %w", hclErr)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Target == "" {
		return errors.Errorf("target is required")
	}

	for i, rule := range cfg.Rules {
		if rule.Old == "" {
			return errors.Errorf("rule %d: old is required", i)
		}
	}

	// Clean up paths
	cfg.Target = filepath.Clean(cfg.Target)

	return nil
}

// 🔄 ReplacementRules converts the configured rules into the engine's form,
// preserving order
func (cfg *Config) ReplacementRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rule := text.ReplacementRule{
			FromText: r.Old,
			ToText:   r.New,
		}
		if r.FileFilter != nil {
			rule.FileFilterGlob = *r.FileFilter
		}
		rules = append(rules, rule)
	}
	return rules
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s (%d rules)", cfg.Target, len(cfg.Rules))
}
