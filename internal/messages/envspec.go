package messages

// Environment spec file messages.
const (
	EnvspecReadFailedFmt      = "read environment spec %s: %w"
	EnvspecInvalidYAMLFmt     = "invalid environment spec %s: %w"
	EnvspecNoDependencies     = "environment spec declares no dependencies"
	EnvspecEmptyDependencyFmt = "environment spec dependency %d is empty"
	EnvspecBadDependencyFmt   = "environment spec dependency %d has unsupported type %T"
	EnvspecBadPipEntryFmt     = "environment spec pip entry %d is not a string"
	EnvspecBadPipSectionFmt   = "environment spec %q section must be a list of strings"
)
