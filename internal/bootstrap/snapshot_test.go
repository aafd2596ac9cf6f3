package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "miniconda3")
	require.NoError(t, os.MkdirAll(prefix, 0o755))

	_, ok, err := ReadSnapshot(RealSystem{}, prefix)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, WriteSnapshot(RealSystem{}, prefix, []byte("dependencies:\n  - numpy\n")))

	data, ok, err := ReadSnapshot(RealSystem{}, prefix)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dependencies:\n  - numpy\n", string(data))
}

func TestLockPathIsSiblingOfPrefix(t *testing.T) {
	path := LockPath("/home/ci/miniconda3")
	assert.Equal(t, "/home/ci/.miniconda3.condaprep.lock", path)
}

func TestDiffPreviewUnchanged(t *testing.T) {
	preview, truncated := DiffPreview("a\n", "a\n", "environment.yml", 0)
	assert.Empty(t, preview)
	assert.False(t, truncated)
}

func TestDiffPreviewShowsChanges(t *testing.T) {
	old := "dependencies:\n  - numpy\n"
	current := "dependencies:\n  - numpy\n  - xarray\n"

	preview, truncated := DiffPreview(old, current, "environment.yml", 0)
	assert.False(t, truncated)
	assert.Contains(t, preview, "+  - xarray")
	assert.Contains(t, preview, "environment.yml")
}

func TestDiffPreviewTruncates(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("dependencies:\n")
	for i := 0; i < 100; i++ {
		sb.WriteString("  - pkg")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteString("\n")
	}

	preview, truncated := DiffPreview("dependencies:\n", sb.String(), "environment.yml", 10)
	assert.True(t, truncated)
	assert.Len(t, strings.Split(preview, "\n"), 10)
}
