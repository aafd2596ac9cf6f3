package conda

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condaprep/condaprep/internal/testutil"
)

// newStubConda writes a recording conda stub under a fake prefix and returns
// the driver plus the stub's invocation log path.
func newStubConda(t *testing.T) (*Conda, string) {
	t.Helper()
	prefix := t.TempDir()
	binDir := filepath.Join(prefix, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	logPath := filepath.Join(prefix, "invocations.log")
	testutil.WriteRecordingStub(t, binDir, "conda", logPath)

	c, err := New(prefix, nil, nil)
	require.NoError(t, err)
	return c, logPath
}

func TestBinPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/opt/conda", "bin", "conda"), BinPath("/opt/conda"))
}

func TestConfigureNonInteractive(t *testing.T) {
	c, logPath := newStubConda(t)
	require.NoError(t, c.ConfigureNonInteractive(context.Background()))

	lines := testutil.ReadStubLog(t, logPath)
	require.Len(t, lines, 1)
	assert.Equal(t, "config --set always_yes yes --set changeps1 no", lines[0])
}

func TestSelfUpdateAndInfo(t *testing.T) {
	c, logPath := newStubConda(t)
	require.NoError(t, c.SelfUpdate(context.Background()))
	require.NoError(t, c.Info(context.Background()))

	lines := testutil.ReadStubLog(t, logPath)
	require.Len(t, lines, 2)
	assert.Equal(t, "update -q conda", lines[0])
	assert.Equal(t, "info -a", lines[1])
}

func TestCreateEnvAndUpdateAll(t *testing.T) {
	c, logPath := newStubConda(t)
	require.NoError(t, c.CreateEnv(context.Background(), "test-environment", "/proj/environment.yml"))
	require.NoError(t, c.UpdateAll(context.Background(), "test-environment"))

	lines := testutil.ReadStubLog(t, logPath)
	require.Len(t, lines, 2)
	assert.Equal(t, "env create -q -n test-environment -f /proj/environment.yml", lines[0])
	assert.Equal(t, "update -q --all -n test-environment", lines[1])
}

func TestRunPropagatesNonzeroExit(t *testing.T) {
	prefix := t.TempDir()
	binDir := filepath.Join(prefix, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	testutil.WriteStubWithExit(t, binDir, "conda", 2)

	c, err := New(prefix, nil, nil)
	require.NoError(t, err)
	assert.Error(t, c.SelfUpdate(context.Background()))
}

func TestListEnvsParsesJSON(t *testing.T) {
	prefix := t.TempDir()
	binDir := filepath.Join(prefix, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	script := fmt.Sprintf("#!/bin/sh\necho '{\"envs\": [\"%s\", \"%s\"]}'\n",
		prefix, filepath.Join(prefix, "envs", "test-environment"))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "conda"), []byte(script), 0o755))

	c, err := New(prefix, nil, nil)
	require.NoError(t, err)

	envs, err := c.ListEnvs(context.Background())
	require.NoError(t, err)
	assert.Len(t, envs, 2)

	exists, err := c.EnvExists(context.Background(), "test-environment")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.EnvExists(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPipInstallUsesEnvPip(t *testing.T) {
	c, _ := newStubConda(t)
	envBin := filepath.Join(c.EnvPrefix("test-environment"), "bin")
	require.NoError(t, os.MkdirAll(envBin, 0o755))
	pipLog := filepath.Join(c.Prefix, "pip.log")
	testutil.WriteRecordingStub(t, envBin, "pip", pipLog)

	require.NoError(t, c.PipInstall(context.Background(), "test-environment", []string{"coverage", "coveralls"}))

	lines := testutil.ReadStubLog(t, pipLog)
	require.Len(t, lines, 1)
	assert.Equal(t, "install -U coverage coveralls", lines[0])
}

func TestPipInstallMissingPip(t *testing.T) {
	c, _ := newStubConda(t)
	err := c.PipInstall(context.Background(), "test-environment", []string{"coverage"})
	assert.Error(t, err)
}

func TestPipInstallNoToolsIsNoop(t *testing.T) {
	c, logPath := newStubConda(t)
	require.NoError(t, c.PipInstall(context.Background(), "test-environment", nil))
	assert.Empty(t, testutil.ReadStubLog(t, logPath))
}
