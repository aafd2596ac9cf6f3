package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/condaprep/condaprep/internal/bootstrap"
	"github.com/condaprep/condaprep/internal/conda"
	"github.com/condaprep/condaprep/internal/config"
	"github.com/condaprep/condaprep/internal/envspec"
	"github.com/condaprep/condaprep/internal/messages"
)

var (
	loadConfigFunc = config.LoadConfig
	loadSpecFunc   = envspec.Load
)

// CheckConfig validates that condaprep.toml loads and parses. It returns the
// loaded config when successful so downstream checks can run.
func CheckConfig(root string) (Result, *config.Config) {
	paths := config.DefaultPaths(root)
	cfg, err := loadConfigFunc(paths.ConfigPath)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: messages.DoctorConfigLoadRecommend,
		}, nil
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   fmt.Sprintf(messages.DoctorConfigOKFmt, paths.ConfigPath),
	}, cfg
}

// CheckSpec validates that the environment spec file exists and parses.
func CheckSpec(root string, cfg *config.Config) Result {
	specPath := config.DefaultPaths(root).SpecPath(cfg)
	spec, err := loadSpecFunc(specPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameSpec,
				Message:        fmt.Sprintf(messages.DoctorSpecMissingFmt, specPath),
				Recommendation: messages.DoctorSpecMissingRecommend,
			}
		}
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameSpec,
			Message:        fmt.Sprintf(messages.DoctorSpecInvalidFmt, specPath, err),
			Recommendation: messages.DoctorSpecInvalidRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameSpec,
		Message:   fmt.Sprintf(messages.DoctorSpecOKFmt, specPath, len(spec.CondaPackages), len(spec.PipPackages)),
	}
}

// CheckInstallation verifies the distribution manager exists under the prefix.
func CheckInstallation(sys bootstrap.System, prefix string) Result {
	info, err := sys.Stat(prefix)
	if err == nil && !info.IsDir() {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameInstall,
			Message:        fmt.Sprintf(messages.DoctorInstallNotDirFmt, prefix),
			Recommendation: messages.DoctorInstallNotDirRecommend,
		}
	}
	if bootstrap.Detect(sys, prefix) == bootstrap.StateFresh {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameInstall,
			Message:        fmt.Sprintf(messages.DoctorInstallMissingFmt, prefix),
			Recommendation: messages.DoctorInstallMissingRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameInstall,
		Message:   fmt.Sprintf(messages.DoctorInstallOKFmt, conda.BinPath(prefix)),
	}
}

// CheckEnvironment verifies the named environment exists.
func CheckEnvironment(ctx context.Context, mgr *conda.Conda, name string) Result {
	exists, err := mgr.EnvExists(ctx, name)
	if err != nil {
		return Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameEnv,
			Message:   fmt.Sprintf(messages.DoctorEnvListFailedFmt, err),
		}
	}
	if !exists {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameEnv,
			Message:        fmt.Sprintf(messages.DoctorEnvMissingFmt, name),
			Recommendation: messages.DoctorEnvMissingRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameEnv,
		Message:   fmt.Sprintf(messages.DoctorEnvOKFmt, name),
	}
}

// CheckDrift compares the spec file against the last-applied snapshot.
func CheckDrift(sys bootstrap.System, prefix string, specPath string) Result {
	snapshot, ok, err := bootstrap.ReadSnapshot(sys, prefix)
	if err != nil || !ok {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameDrift,
			Message:        messages.DoctorDriftNoSnapshot,
			Recommendation: messages.DoctorDriftNoSnapshotRecommend,
		}
	}
	current, err := sys.ReadFile(specPath)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameDrift,
			Message:        fmt.Sprintf(messages.DoctorSpecMissingFmt, specPath),
			Recommendation: messages.DoctorSpecMissingRecommend,
		}
	}
	if string(snapshot) == string(current) {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameDrift,
			Message:   messages.DoctorDriftClean,
		}
	}
	changed := countChangedLines(string(snapshot), string(current))
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameDrift,
		Message:        fmt.Sprintf(messages.DoctorDriftDetectedFmt, changed),
		Recommendation: messages.DoctorDriftDetectedRecommend,
	}
}

// countChangedLines counts diff body lines between two spec revisions.
func countChangedLines(old string, current string) int {
	preview, _ := DiffLines(old, current)
	return preview
}

// DiffLines reports how many lines a drift preview would contain and whether
// the texts differ at all.
func DiffLines(old string, current string) (int, bool) {
	preview, _ := bootstrap.DiffPreview(old, current, "spec", 1<<20)
	if preview == "" {
		return 0, false
	}
	count := 0
	for _, line := range strings.Split(preview, "\n") {
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			count++
		}
	}
	return count, true
}
