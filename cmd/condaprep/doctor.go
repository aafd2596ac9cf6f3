package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/condaprep/condaprep/internal/bootstrap"
	"github.com/condaprep/condaprep/internal/conda"
	"github.com/condaprep/condaprep/internal/config"
	"github.com/condaprep/condaprep/internal/doctor"
	"github.com/condaprep/condaprep/internal/messages"
	"github.com/condaprep/condaprep/internal/update"
)

// checkForUpdateFunc is a test seam.
var checkForUpdateFunc = update.Check

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	root, err := resolveProjectRoot()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, root)

	failed := false
	report := func(res doctor.Result) {
		printResult(out, res)
		if res.Status == doctor.StatusFail {
			failed = true
		}
	}

	configRes, cfg := doctor.CheckConfig(root)
	report(configRes)
	report(updateCheckResult(cmd.Context()))

	if cfg != nil {
		report(doctor.CheckSpec(root, cfg))
		reportInstallation(cmd.Context(), report, root, cfg)
	}

	if failed {
		return fmt.Errorf(messages.DoctorFailuresFound)
	}
	return nil
}

// reportInstallation runs the checks that need a resolved install prefix, and
// the environment checks that additionally need a working installation.
func reportInstallation(ctx context.Context, report func(doctor.Result), root string, cfg *config.Config) {
	prefix, err := config.ResolvePrefix(cfg)
	if err != nil {
		report(doctor.Result{
			Status:    doctor.StatusFail,
			CheckName: messages.DoctorCheckNameInstall,
			Message:   err.Error(),
		})
		return
	}

	sys := bootstrap.RealSystem{}
	installRes := doctor.CheckInstallation(sys, prefix)
	report(installRes)
	if installRes.Status != doctor.StatusOK {
		return
	}

	if mgr, err := conda.New(prefix, io.Discard, io.Discard); err == nil {
		report(doctor.CheckEnvironment(ctx, mgr, cfg.Env.Name))
	}
	report(doctor.CheckDrift(sys, prefix, config.DefaultPaths(root).SpecPath(cfg)))
}

// updateCheckResult folds the release-freshness check into a doctor result.
// Network problems and rate limits warn rather than fail.
func updateCheckResult(ctx context.Context) doctor.Result {
	name := messages.DoctorCheckNameUpdate
	result, err := checkForUpdateFunc(ctx, Version)
	if err != nil {
		if update.IsRateLimitError(err) {
			return doctor.Result{
				Status:    doctor.StatusWarn,
				CheckName: name,
				Message:   messages.DoctorUpdateRateLimited,
			}
		}
		return doctor.Result{
			Status:         doctor.StatusWarn,
			CheckName:      name,
			Message:        fmt.Sprintf(messages.DoctorUpdateFailedFmt, err),
			Recommendation: messages.DoctorUpdateFailedRecommend,
		}
	}
	if result.Skipped {
		return doctor.Result{
			Status:    doctor.StatusWarn,
			CheckName: name,
			Message:   fmt.Sprintf(messages.DoctorUpdateSkippedFmt, update.EnvNoNetwork),
		}
	}
	if result.CurrentIsDev {
		return doctor.Result{
			Status:    doctor.StatusWarn,
			CheckName: name,
			Message:   fmt.Sprintf(messages.DoctorUpdateDevBuildFmt, result.Latest),
		}
	}
	if result.Outdated {
		return doctor.Result{
			Status:    doctor.StatusWarn,
			CheckName: name,
			Message:   fmt.Sprintf(messages.DoctorUpdateAvailableFmt, result.Latest, result.Current),
		}
	}
	return doctor.Result{
		Status:    doctor.StatusOK,
		CheckName: name,
		Message:   fmt.Sprintf(messages.DoctorUpToDateFmt, result.Current),
	}
}

func printResult(out io.Writer, res doctor.Result) {
	statusColor := color.New(color.FgGreen)
	switch res.Status {
	case doctor.StatusWarn:
		statusColor = color.New(color.FgYellow)
	case doctor.StatusFail:
		statusColor = color.New(color.FgRed)
	}
	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, statusColor.Sprint(res.Status.String()), res.CheckName, res.Message)
	if res.Recommendation != "" {
		_, _ = fmt.Fprintf(out, messages.DoctorRecommendLineFmt, res.Recommendation)
	}
}
