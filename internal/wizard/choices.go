package wizard

import (
	"strings"

	"github.com/condaprep/condaprep/internal/config"
)

// Choices accumulates the wizard's answers before they are written to
// condaprep.toml.
type Choices struct {
	EnvName        string
	PrefixDir      string
	SpecFile       string
	ReportingTools []string
}

// NewChoices returns choices seeded with the documented defaults.
func NewChoices() *Choices {
	cfg := config.Default()
	return ChoicesFromConfig(cfg)
}

// ChoicesFromConfig seeds choices from an existing config, falling back to
// defaults for any blank field.
func ChoicesFromConfig(cfg *config.Config) *Choices {
	choices := &Choices{
		EnvName:        cfg.Env.Name,
		PrefixDir:      cfg.Install.Dir,
		SpecFile:       cfg.Env.SpecFile,
		ReportingTools: append([]string(nil), cfg.Reporting.Tools...),
	}
	if choices.EnvName == "" {
		choices.EnvName = config.DefaultEnvName
	}
	if choices.PrefixDir == "" {
		choices.PrefixDir = config.DefaultPrefixDir
	}
	if choices.SpecFile == "" {
		choices.SpecFile = config.DefaultSpecFile
	}
	if len(choices.ReportingTools) == 0 {
		choices.ReportingTools = append([]string(nil), config.DefaultReportingTools...)
	}
	return choices
}

// Clone returns a deep copy used for back-navigation snapshots.
func (c *Choices) Clone() *Choices {
	if c == nil {
		return nil
	}
	clone := *c
	clone.ReportingTools = append([]string(nil), c.ReportingTools...)
	return &clone
}

// splitToolList parses a comma-separated tool list, dropping blank entries.
func splitToolList(raw string) []string {
	parts := strings.Split(raw, ",")
	tools := make([]string, 0, len(parts))
	for _, part := range parts {
		tool := strings.TrimSpace(part)
		if tool != "" {
			tools = append(tools, tool)
		}
	}
	return tools
}

// joinToolList renders a tool list for display in an input prompt.
func joinToolList(tools []string) string {
	return strings.Join(tools, ", ")
}
