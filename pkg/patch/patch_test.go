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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/text"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing test file")
	return path
}

func TestFilePatcher_Apply(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []text.ReplacementRule
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:    "simple_replacement",
			content: "Hello World",
			rules: []text.ReplacementRule{
				{FromText: "World", ToText: "Universe"},
			},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "sequential_rules_compose",
			content: "a",
			rules: []text.ReplacementRule{
				{FromText: "a", ToText: "b"},
				{FromText: "b", ToText: "c"},
			},
			want:         "c",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "non_overlapping_scan",
			content: "aaa",
			rules: []text.ReplacementRule{
				{FromText: "aa", ToText: "b"},
			},
			want:         "ba",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "no_match_rewrites_verbatim",
			content: "Hello World",
			rules: []text.ReplacementRule{
				{FromText: "Goodbye", ToText: "Hi"},
			},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_rules_rewrite",
			content:      "hello",
			rules:        []text.ReplacementRule{},
			want:         "hello",
			wantCount:    0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			path := writeTestFile(t, t.TempDir(), "target.txt", tt.content)

			patcher := NewFilePatcher()
			result, err := patcher.Apply(ctx, Job{Path: path, Rules: tt.rules})
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)

			written, err := os.ReadFile(path)
			require.NoError(t, err, "reading patched file")
			assert.Equal(t, tt.want, string(written))
		})
	}
}

func TestFilePatcher_Apply_RewritesEvenWhenUnchanged(t *testing.T) {
	ctx := testContext(t)
	path := writeTestFile(t, t.TempDir(), "target.txt", "hello")

	before, err := os.Stat(path)
	require.NoError(t, err)

	patcher := NewFilePatcher()
	result, err := patcher.Apply(ctx, Job{Path: path})
	require.NoError(t, err)

	// Content preserved byte for byte
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(written))
	assert.Equal(t, result.OriginalChecksum, result.PatchedChecksum, "checksums should match for a no-op")

	// Mode preserved by the rewrite
	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.Mode().Perm(), after.Mode().Perm(), "mode should be preserved")
}

func TestFilePatcher_Apply_GlobFilteredRules(t *testing.T) {
	ctx := testContext(t)
	path := writeTestFile(t, t.TempDir(), "main.go", "package old")

	patcher := NewFilePatcher()
	result, err := patcher.Apply(ctx, Job{
		Path: path,
		Rules: []text.ReplacementRule{
			{FromText: "old", ToText: "new", FileFilterGlob: "*.go"},
			{FromText: "package", ToText: "module", FileFilterGlob: "*.py"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ReplacementCount)
	assert.Equal(t, 1, result.RulesSkipped())
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, 1, result.Outcomes[0].Count)
	assert.False(t, result.Outcomes[0].Skipped)
	assert.True(t, result.Outcomes[1].Skipped)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package new", string(written))
}

func TestFilePatcher_Apply_MissingFile(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	patcher := NewFilePatcher()
	result, err := patcher.Apply(ctx, Job{
		Path:  path,
		Rules: []text.ReplacementRule{{FromText: "a", ToText: "b"}},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsNotFound(err), "expected NotFound, got: %v", err)

	// No write happened
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should have been created")
}

func TestFilePatcher_Apply_ReadOnlyTarget(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	ctx := testContext(t)
	path := writeTestFile(t, t.TempDir(), "readonly.txt", "hello")
	require.NoError(t, os.Chmod(path, 0444), "making file read-only")

	patcher := NewFilePatcher()
	_, err := patcher.Apply(ctx, Job{
		Path:  path,
		Rules: []text.ReplacementRule{{FromText: "hello", ToText: "goodbye"}},
	})

	require.Error(t, err)
	assert.True(t, IsAccessDenied(err), "expected AccessDenied, got: %v", err)

	// Original content unchanged
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "hello", string(content))
}

func TestFilePatcher_Apply_InvalidUTF8(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "binary.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0644))

	patcher := NewFilePatcher()
	_, err := patcher.Apply(ctx, Job{
		Path:  path,
		Rules: []text.ReplacementRule{{FromText: "a", ToText: "b"}},
	})

	require.Error(t, err)
	assert.True(t, IsDecodeError(err), "expected DecodeError, got: %v", err)

	// Original bytes untouched
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, []byte{0xff, 0xfe, 0x00, 0x80}, content)
}

func TestFilePatcher_Apply_InvalidRules(t *testing.T) {
	ctx := testContext(t)
	path := writeTestFile(t, t.TempDir(), "target.txt", "hello")

	patcher := NewFilePatcher()
	_, err := patcher.Apply(ctx, Job{
		Path:  path,
		Rules: []text.ReplacementRule{{FromText: "", ToText: "x"}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "from_text is required")
}

func TestFilePatcher_Preview(t *testing.T) {
	ctx := testContext(t)
	path := writeTestFile(t, t.TempDir(), "target.txt", "Hello World")

	patcher := NewFilePatcher()
	result, err := patcher.Preview(ctx, Job{
		Path:  path,
		Rules: []text.ReplacementRule{{FromText: "World", ToText: "Universe"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ReplacementCount)
	assert.True(t, result.WasModified)
	assert.NotEqual(t, result.OriginalChecksum, result.PatchedChecksum)

	// Preview never writes
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "Hello World", string(content))
}

func TestFilePatcher_Preview_ReadOnlyTargetIsFine(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	ctx := testContext(t)
	path := writeTestFile(t, t.TempDir(), "readonly.txt", "hello")
	require.NoError(t, os.Chmod(path, 0444))

	patcher := NewFilePatcher()
	result, err := patcher.Preview(ctx, Job{
		Path:  path,
		Rules: []text.ReplacementRule{{FromText: "hello", ToText: "goodbye"}},
	})
	require.NoError(t, err, "preview should not need write permission")
	assert.True(t, result.WasModified)
}
