package main

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile   string
	target       string
	replacements []string
	debug        bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	// Create user logger
	userLogger := log.NewUserLogger(ctx)

	// Load config
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	return &opts.RootOpts{
		Config:     cfg,
		Patcher:    patch.NewFilePatcher(),
		Logger:     log.New(os.Stdout, zerolog.InfoLevel),
		UserLogger: userLogger,
	}, nil
}

// loadConfig builds the job configuration from the config file and flags.
// A --target flag can stand in for a config file entirely; --replace
// rules are appended after any configured rules.
func loadConfig(ctx context.Context) (*config.Config, error) {
	var cfg *config.Config

	if _, err := os.Stat(configFile); err == nil {
		cfg, err = config.Load(ctx, configFile)
		if err != nil {
			return nil, err
		}
	} else if target == "" {
		return nil, errors.Errorf("config file %s not found and no --target given", configFile)
	} else {
		cfg = &config.Config{}
	}

	if target != "" {
		cfg.Target = target
	}

	for _, repl := range replacements {
		from, to, found := strings.Cut(repl, "=")
		if !found {
			return nil, errors.Errorf("invalid --replace %q: expected old=new", repl)
		}
		cfg.Rules = append(cfg.Rules, config.Rule{Old: from, New: to})
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".patchrc", "config file path")
	cmd.PersistentFlags().StringVarP(&target, "target", "t", "", "target file (overrides config)")
	cmd.PersistentFlags().StringArrayVarP(&replacements, "replace", "r", nil, "inline replacement rule old=new (repeatable)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
