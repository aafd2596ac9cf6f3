package messages

// Distribution manager driver messages.
const (
	CondaExitErrFmt        = "conda %s: %w"
	CondaListEnvsDecodeFmt = "decode conda env list output: %w"
	CondaPipMissingFmt     = "pip executable not found at %s; was the environment created with pip available?"
	CondaPipExitErrFmt     = "pip install: %w"
	CondaBinRequired       = "conda: executable path is required"
)
