package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condaprep/condaprep/internal/config"
)

func withWorkingDirStub(t *testing.T, dir string) {
	t.Helper()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
}

func writeProjectConfig(t *testing.T, root string, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.ConfigFileName), []byte(body), 0o644))
}

func TestResolveProjectRootFindsAncestorConfig(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, "[env]\nname = \"ci-env\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	withWorkingDirStub(t, nested)

	got, err := resolveProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestResolveProjectRootErrorsWithoutConfig(t *testing.T) {
	withWorkingDirStub(t, t.TempDir())

	_, err := resolveProjectRoot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "condaprep init")
}
