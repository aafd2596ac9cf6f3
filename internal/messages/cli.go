package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "condaprep"
	// RootShort is the short description for the root command.
	RootShort         = "Conda environment bootstrapper for CI workers"
	RootMissingConfig = "condaprep isn't initialized here (no condaprep.toml found in this directory or any parent); run 'condaprep init' to create one"
	RootResolveCwdErr = "resolve working directory: %w"

	// VersionUse is the version command name.
	VersionUse   = "version"
	VersionShort = "Print the condaprep version"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// UpUse is the up command name.
	UpUse   = "up"
	UpShort = "Install the distribution manager if needed and bring the named environment up to date"

	UpFlagFresh          = "Discard any existing installation and bootstrap from scratch"
	UpFlagSkipSelfUpdate = "Skip updating the distribution manager itself"
	UpFlagNoReporting    = "Skip installing the test-reporting utilities"

	UpFreshInstallFmt    = "Fresh install: no distribution manager at %s\n"
	UpExistingInstallFmt = "Reusing existing installation at %s\n"
	UpEnvReadyFmt        = "Environment %q is ready (prefix %s)\n"
	UpSpecChangedHeader  = "Environment spec changed since the last run:"

	// InitUse is the init command name.
	InitUse   = "init"
	InitShort = "Create or update condaprep.toml for this project"

	InitFlagYes       = "Accept defaults without prompting"
	InitFlagEnvName   = "Environment name to write to the config"
	InitFlagPrefixDir = "Installation prefix to write to the config"
	InitFlagSpecFile  = "Environment spec file name to write to the config"

	InitWroteConfigFmt   = "Wrote %s\n"
	InitUpdatedConfigFmt = "Updated %s\n"
	InitNextSteps        = "Next: run 'condaprep up' to bootstrap the environment."

	InitWarnUpdateCheckFailedFmt = "Warning: failed to check for updates: %v\n"
	InitWarnDevBuildFmt          = "Warning: running dev build; latest release is %s\n"
	InitWarnUpdateAvailableFmt   = "Warning: update available: %s (current %s)\n"

	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the health of the bootstrapped environment"

	// ShellUse is the shell command name.
	ShellUse   = "shell"
	ShellShort = "Start a subshell with the named environment activated"

	ShellNotInstalledFmt = "no installation at %s; run 'condaprep up' first"

	ShellNoShellEnv    = "cannot determine a shell: SHELL is unset and /bin/sh is missing"
	ShellExitErrFmt    = "shell exited: %w"
	ShellStartErrFmt   = "start shell: %w"
	ShellResizeErrFmt  = "resize pty: %v\n"
	ShellRawModeErrFmt = "set terminal raw mode: %w"
)
