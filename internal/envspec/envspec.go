// Package envspec parses the declarative environment spec file
// (environment.yml). condaprep only validates the file and summarizes its
// contents; dependency resolution belongs entirely to the distribution
// manager.
package envspec

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/condaprep/condaprep/internal/messages"
)

// Spec is the parsed environment spec.
type Spec struct {
	Name     string
	Channels []string
	// CondaPackages are the plain dependency entries, in file order.
	CondaPackages []string
	// PipPackages are the entries of a nested "pip:" dependency section.
	PipPackages []string
}

// rawSpec mirrors the YAML layout. Dependencies mixes plain strings with
// nested maps (the pip section), so it decodes as []any and is coerced below.
type rawSpec struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels"`
	Dependencies []any    `yaml:"dependencies"`
}

// Load reads and parses the spec file at path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.EnvspecReadFailedFmt, path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf(messages.EnvspecInvalidYAMLFmt, path, err)
	}
	return spec, nil
}

// Parse decodes spec YAML content.
func Parse(data []byte) (*Spec, error) {
	var raw rawSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	spec := &Spec{
		Name:     strings.TrimSpace(raw.Name),
		Channels: raw.Channels,
	}
	for i, dep := range raw.Dependencies {
		switch v := dep.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return nil, fmt.Errorf(messages.EnvspecEmptyDependencyFmt, i)
			}
			spec.CondaPackages = append(spec.CondaPackages, strings.TrimSpace(v))
		case map[string]any:
			pip, err := pipEntries(v)
			if err != nil {
				return nil, err
			}
			spec.PipPackages = append(spec.PipPackages, pip...)
		default:
			return nil, fmt.Errorf(messages.EnvspecBadDependencyFmt, i, dep)
		}
	}
	return spec, nil
}

// Validate checks that the spec declares at least one dependency.
func (s *Spec) Validate() error {
	if len(s.CondaPackages) == 0 && len(s.PipPackages) == 0 {
		return fmt.Errorf(messages.EnvspecNoDependencies)
	}
	return nil
}

// pipEntries extracts the string list of a nested pip section.
func pipEntries(section map[string]any) ([]string, error) {
	for key, value := range section {
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf(messages.EnvspecBadPipSectionFmt, key)
		}
		out := make([]string, 0, len(list))
		for i, item := range list {
			str, ok := item.(string)
			if !ok || strings.TrimSpace(str) == "" {
				return nil, fmt.Errorf(messages.EnvspecBadPipEntryFmt, i)
			}
			out = append(out, strings.TrimSpace(str))
		}
		return out, nil
	}
	return nil, nil
}
