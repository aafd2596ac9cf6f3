package messages

// Doctor command messages.
const (
	DoctorHealthCheckFmt = "Checking condaprep health for %s\n\n"

	DoctorCheckNameConfig  = "Config"
	DoctorCheckNameSpec    = "Spec"
	DoctorCheckNameInstall = "Installation"
	DoctorCheckNameEnv     = "Environment"
	DoctorCheckNameDrift   = "Drift"
	DoctorCheckNameUpdate  = "Update"

	DoctorConfigLoadFailedFmt = "Config failed to load: %v"
	DoctorConfigLoadRecommend = "Fix condaprep.toml or re-run 'condaprep init'."
	DoctorConfigOKFmt         = "Config loaded from %s"

	DoctorSpecMissingFmt       = "Spec file %s does not exist"
	DoctorSpecMissingRecommend = "Create the environment spec file or point env.spec_file at the right path."
	DoctorSpecInvalidFmt       = "Spec file %s failed to parse: %v"
	DoctorSpecInvalidRecommend = "Fix the YAML in the environment spec file."
	DoctorSpecOKFmt            = "Spec file %s parses (%d conda packages, %d pip packages)"

	DoctorInstallMissingFmt       = "No distribution manager at %s"
	DoctorInstallMissingRecommend = "Run 'condaprep up' to install it."
	DoctorInstallNotDirFmt        = "Install prefix %s exists but is not a directory"
	DoctorInstallNotDirRecommend  = "Remove the file and re-run 'condaprep up'."
	DoctorInstallOKFmt            = "Distribution manager present at %s"

	DoctorEnvMissingFmt       = "Named environment %q does not exist"
	DoctorEnvMissingRecommend = "Run 'condaprep up' to create it."
	DoctorEnvListFailedFmt    = "Could not list environments: %v"
	DoctorEnvOKFmt            = "Named environment %q exists"

	DoctorDriftNoSnapshot          = "No spec snapshot recorded yet"
	DoctorDriftNoSnapshotRecommend = "Run 'condaprep up' to record one."
	DoctorDriftDetectedFmt         = "Spec file changed since the last successful run (%d line(s) differ)"
	DoctorDriftDetectedRecommend   = "Run 'condaprep up' to apply the changes."
	DoctorDriftClean               = "Spec file matches the last applied snapshot"

	DoctorUpdateSkippedFmt      = "Update check skipped (%s is set)"
	DoctorUpdateRateLimited     = "Update check rate-limited by GitHub; try again later"
	DoctorUpdateFailedFmt       = "Update check failed: %v"
	DoctorUpdateFailedRecommend = "Check network access or set CONDAPREP_NO_NETWORK to silence this."
	DoctorUpdateDevBuildFmt     = "Running a dev build; latest release is %s"
	DoctorUpdateAvailableFmt    = "Update available: %s (current %s)"
	DoctorUpToDateFmt           = "condaprep %s is up to date"

	DoctorStatusOK   = "OK"
	DoctorStatusWarn = "WARN"
	DoctorStatusFail = "FAIL"

	DoctorResultLineFmt    = "[%s] %s: %s\n"
	DoctorRecommendLineFmt = "       -> %s\n"
	DoctorFailuresFound    = "doctor found failing checks"
)
