package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condaprep/condaprep/internal/doctor"
	"github.com/condaprep/condaprep/internal/update"
)

func withUpdateCheckStub(t *testing.T, result update.CheckResult, err error) {
	t.Helper()
	orig := checkForUpdateFunc
	checkForUpdateFunc = func(context.Context, string) (update.CheckResult, error) {
		return result, err
	}
	t.Cleanup(func() { checkForUpdateFunc = orig })
}

func TestUpdateCheckResultSkippedWhenNoNetwork(t *testing.T) {
	t.Setenv(update.EnvNoNetwork, "1")

	res := updateCheckResult(context.Background())
	assert.Equal(t, doctor.StatusWarn, res.Status)
	assert.Contains(t, res.Message, "skipped")
}

func TestUpdateCheckResultStates(t *testing.T) {
	t.Setenv(update.EnvNoNetwork, "")

	tests := []struct {
		name       string
		result     update.CheckResult
		err        error
		wantStatus doctor.Status
		wantText   string
	}{
		{
			name:       "rate limited",
			err:        &update.RateLimitError{StatusCode: 429, Status: "429 Too Many Requests"},
			wantStatus: doctor.StatusWarn,
			wantText:   "rate-limited",
		},
		{
			name:       "check failed",
			err:        errors.New("dial tcp: timeout"),
			wantStatus: doctor.StatusWarn,
			wantText:   "Update check failed",
		},
		{
			name:       "dev build",
			result:     update.CheckResult{Current: "dev", Latest: "1.4.0", CurrentIsDev: true},
			wantStatus: doctor.StatusWarn,
			wantText:   "dev build",
		},
		{
			name:       "outdated",
			result:     update.CheckResult{Current: "1.2.3", Latest: "1.4.0", Outdated: true},
			wantStatus: doctor.StatusWarn,
			wantText:   "Update available",
		},
		{
			name:       "up to date",
			result:     update.CheckResult{Current: "1.4.0", Latest: "1.4.0"},
			wantStatus: doctor.StatusOK,
			wantText:   "up to date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withUpdateCheckStub(t, tt.result, tt.err)

			res := updateCheckResult(context.Background())
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Contains(t, res.Message, tt.wantText)
		})
	}
}

func TestPrintResultFormatsRecommendation(t *testing.T) {
	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	var out bytes.Buffer
	printResult(&out, doctor.Result{
		Status:         doctor.StatusFail,
		CheckName:      "Spec",
		Message:        "spec file missing",
		Recommendation: "create it",
	})

	assert.Contains(t, out.String(), "[FAIL] Spec: spec file missing")
	assert.Contains(t, out.String(), "-> create it")
}

func TestDoctorFailsWhenNothingInstalled(t *testing.T) {
	root := t.TempDir()
	prefix := filepath.Join(root, "miniconda3")
	writeProjectConfig(t, root, "[install]\ndir = \""+prefix+"\"\n\n[env]\nname = \"ci-env\"\nspec_file = \"environment.yml\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "environment.yml"), []byte("dependencies:\n  - python=3.11\n"), 0o644))
	withWorkingDirStub(t, root)
	withUpdateCheckStub(t, update.CheckResult{Current: "1.4.0", Latest: "1.4.0"}, nil)

	var out bytes.Buffer
	err := execute([]string{"condaprep", "doctor"}, &out, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing checks")
	assert.Contains(t, out.String(), "No distribution manager at "+prefix)
	assert.Contains(t, out.String(), "condaprep up")
}

func TestDoctorReportsBrokenConfigWithoutDependentChecks(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, "[env]\nspec_file = \"environment.yml\"\n")
	withWorkingDirStub(t, root)
	withUpdateCheckStub(t, update.CheckResult{Current: "1.4.0", Latest: "1.4.0"}, nil)

	var out bytes.Buffer
	err := execute([]string{"condaprep", "doctor"}, &out, io.Discard)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Config failed to load")
	assert.NotContains(t, out.String(), "Spec file")
}
