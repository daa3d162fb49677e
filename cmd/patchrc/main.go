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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/commands"
	patchrclog "github.com/walteh/patchrc/pkg/log"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "patchrc",
		Short: "A deterministic, targeted text-patching utility",
		Long: `patchrc opens a single named file, applies one or more literal
substring substitutions to its content, and writes the result back to the
same path. Rules are applied in order, each rule over the output of the
previous one.`,
		SilenceUsage: true,
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Setup logging once flags are parsed
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging()
	}

	// Add commands
	rootCmd.AddCommand(
		commands.NewApplyCmd(newRootOpts),
		commands.NewCheckCmd(newRootOpts),
		newVersionCmd(),
	)

	ctx := log.Logger.WithContext(context.Background())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger := patchrclog.NewUserLogger(ctx)
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
