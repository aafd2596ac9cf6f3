package messages

// Config loading and validation messages.
const (
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s has unrecognized keys: %w."
	ConfigValidationGuidance  = "Fix condaprep.toml or re-run 'condaprep init'."

	ConfigEnvNameRequired     = "env.name is required"
	ConfigEnvNameInvalidFmt   = "env.name %q must not contain path separators or whitespace"
	ConfigSpecFileRequired    = "env.spec_file is required"
	ConfigSpecFileAbsoluteFmt = "env.spec_file %q must be relative to the project root"
	ConfigInstallDirRequired  = "install.dir is required"
	ConfigInstallerURLFmt     = "install.installer_url %q is not a valid http(s) URL"
	ConfigReportingToolEmpty  = "reporting.tools must not contain empty entries"
	ConfigExpandPrefixErrFmt  = "expand install.dir %q: %w"
	ConfigValidationFailedFmt = "%s: %s"
)
