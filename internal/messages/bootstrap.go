package messages

// Bootstrap sequence messages.
const (
	BootstrapConfigRequired = "bootstrap: config is required"
	BootstrapSystemRequired = "bootstrap: system is required"

	BootstrapRemoveStaleFmt      = "Removing stale installation at %s\n"
	BootstrapRemoveStaleErrFmt   = "remove stale installation %s: %w"
	BootstrapDownloadingFmt      = "Downloading installer from %s\n"
	BootstrapDownloadRequestFmt  = "create download request: %w"
	BootstrapDownloadFmt         = "download installer: %w"
	BootstrapDownloadStatusFmt   = "download installer: unexpected status %s"
	BootstrapDownloadWriteFmt    = "write installer artifact: %w"
	BootstrapNoInstallerURLFmt   = "no default installer URL for %s/%s; set install.installer_url in condaprep.toml"
	BootstrapRunningInstallerFmt = "Running installer into %s\n"
	BootstrapInstallerErrFmt     = "run installer: %w"
	BootstrapMkdirErrFmt         = "create directory %s: %w"

	BootstrapCondaMissingFmt  = "conda executable not found at %s after installation"
	BootstrapPathPrependedFmt = "Added %s to PATH\n"

	BootstrapOpenLockFmt    = "open lock file %s: %w"
	BootstrapLockFmt        = "lock %s: %w"
	BootstrapLockTimeoutFmt = "timed out waiting for lock on %s (another bootstrap may be running)"

	BootstrapSnapshotReadErrFmt  = "read spec snapshot %s: %w"
	BootstrapSnapshotWriteErrFmt = "write spec snapshot %s: %w"

	BootstrapSpecMissingFmt = "environment spec file %s does not exist"
)
