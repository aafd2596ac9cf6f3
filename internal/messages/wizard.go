package messages

// Init wizard messages.
const (
	WizardRequiresTerminal = "the init wizard requires an interactive terminal; re-run with --yes to accept defaults"
	WizardAborted          = "init wizard aborted"

	WizardTitleEnvName   = "Environment name"
	WizardTitlePrefixDir = "Installation prefix"
	WizardTitleSpecFile  = "Environment spec file"
	WizardTitleReporting = "Test-reporting utilities (comma-separated)"
	WizardTitleConfirm   = "Write condaprep.toml with these settings?"

	WizardNoteTitle = "condaprep setup"
	WizardNoteBody  = "Answers are written to condaprep.toml at the project root. Re-running init updates the file in place and keeps your comments."

	WizardPreviewTitle = "Proposed condaprep.toml"
	WizardNoChanges    = "No rewrites needed. condaprep.toml already matches your answers."

	WizardEnvNameEmpty   = "environment name must not be empty"
	WizardDeclinedWrite  = "nothing written"
	WizardLoadConfigFmt  = "load existing config: %w"
	WizardParseConfigFmt = "parse config file: %w"
	WizardPatchConfigFmt = "update config file: %w"
	WizardWriteConfigFmt = "write config file: %w"
)
