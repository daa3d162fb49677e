package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
)

func testFactory(t *testing.T, cfg *config.Config) (OptsFactory, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	console := &bytes.Buffer{}
	factory := func(ctx context.Context) (*opts.RootOpts, error) {
		return &opts.RootOpts{
			Config:     cfg,
			Patcher:    patch.NewFilePatcher(),
			Logger:     log.New(console, zerolog.InfoLevel),
			UserLogger: log.NewUserLogger(ctx),
		}, nil
	}
	return factory, console
}

func testCommandCtx(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func TestApplyCmd(t *testing.T) {
	targetPath := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(targetPath, []byte("Hello World"), 0644))

	cfg := &config.Config{
		Target: targetPath,
		Rules:  []config.Rule{{Old: "World", New: "Universe"}},
	}
	factory, console := testFactory(t, cfg)

	cmd := NewApplyCmd(factory)
	cmd.SetContext(testCommandCtx(t))
	require.NoError(t, cmd.RunE(cmd, nil))

	content, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "Hello Universe", string(content))
	assert.Contains(t, console.String(), "patched")
}

func TestApplyCmd_MissingTarget(t *testing.T) {
	cfg := &config.Config{
		Target: filepath.Join(t.TempDir(), "missing.txt"),
		Rules:  []config.Rule{{Old: "a", New: "b"}},
	}
	factory, _ := testFactory(t, cfg)

	cmd := NewApplyCmd(factory)
	cmd.SetContext(testCommandCtx(t))
	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.True(t, patch.IsNotFound(err), "expected NotFound, got: %v", err)
}

func TestCheckCmd(t *testing.T) {
	targetPath := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(targetPath, []byte("Hello World"), 0644))

	cfg := &config.Config{
		Target: targetPath,
		Rules:  []config.Rule{{Old: "World", New: "Universe"}},
	}
	factory, console := testFactory(t, cfg)

	cmd := NewCheckCmd(factory)
	cmd.SetContext(testCommandCtx(t))
	require.NoError(t, cmd.RunE(cmd, nil))

	// Target untouched by check
	content, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(content))
	assert.Contains(t, console.String(), "would change")
}

func TestCheckCmd_ExitCode(t *testing.T) {
	targetPath := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(targetPath, []byte("Hello World"), 0644))

	cfg := &config.Config{
		Target: targetPath,
		Rules:  []config.Rule{{Old: "World", New: "Universe"}},
	}
	factory, _ := testFactory(t, cfg)

	cmd := NewCheckCmd(factory)
	cmd.SetContext(testCommandCtx(t))
	require.NoError(t, cmd.Flags().Set("exit-code", "true"))

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending changes")
}
