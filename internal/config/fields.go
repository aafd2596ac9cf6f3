// Package config loads, validates, and resolves the condaprep.toml project
// configuration.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/condaprep/condaprep/internal/messages"
)

// DefaultEnvName is the environment name written by init when the user does
// not choose one.
const DefaultEnvName = "test-environment"

// DefaultSpecFile is the declarative environment spec file read from the
// project root.
const DefaultSpecFile = "environment.yml"

// DefaultPrefixDir is the default installation prefix, expanded with the
// user's home directory at load time.
const DefaultPrefixDir = "~/miniconda3"

// DefaultReportingTools are the utilities installed into an existing
// environment after its packages are updated.
var DefaultReportingTools = []string{"coverage", "coveralls"}

// Config models condaprep.toml.
type Config struct {
	Install   InstallConfig   `toml:"install"`
	Env       EnvConfig       `toml:"env"`
	Reporting ReportingConfig `toml:"reporting"`
	Warnings  WarningsConfig  `toml:"warnings"`
}

// InstallConfig controls where and how the distribution manager is installed.
type InstallConfig struct {
	Dir          string `toml:"dir"`
	InstallerURL string `toml:"installer_url"`
}

// EnvConfig names the isolated environment and its spec file.
type EnvConfig struct {
	Name     string `toml:"name"`
	SpecFile string `toml:"spec_file"`
}

// ReportingConfig lists the test-reporting utilities to install.
type ReportingConfig struct {
	Tools []string `toml:"tools"`
}

// WarningsConfig controls best-effort warnings emitted during up.
type WarningsConfig struct {
	UpdateCheck *bool `toml:"update_check"`
}

// Default returns a config populated with the documented defaults.
func Default() *Config {
	return &Config{
		Install:   InstallConfig{Dir: DefaultPrefixDir},
		Env:       EnvConfig{Name: DefaultEnvName, SpecFile: DefaultSpecFile},
		Reporting: ReportingConfig{Tools: append([]string(nil), DefaultReportingTools...)},
	}
}

// UpdateCheckEnabled reports whether the release-freshness warning should run.
// It defaults to true when the field is absent.
func (c *Config) UpdateCheckEnabled() bool {
	if c.Warnings.UpdateCheck == nil {
		return true
	}
	return *c.Warnings.UpdateCheck
}

// Validate checks the config for structural problems. source names the file
// for error messages.
func (c *Config) Validate(source string) error {
	var problems []string

	if strings.TrimSpace(c.Install.Dir) == "" {
		problems = append(problems, messages.ConfigInstallDirRequired)
	}
	if raw := strings.TrimSpace(c.Install.InstallerURL); raw != "" {
		parsed, err := url.Parse(raw)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			problems = append(problems, fmt.Sprintf(messages.ConfigInstallerURLFmt, raw))
		}
	}

	name := strings.TrimSpace(c.Env.Name)
	switch {
	case name == "":
		problems = append(problems, messages.ConfigEnvNameRequired)
	case strings.ContainsAny(name, "/\\ \t"):
		problems = append(problems, fmt.Sprintf(messages.ConfigEnvNameInvalidFmt, name))
	}

	spec := strings.TrimSpace(c.Env.SpecFile)
	switch {
	case spec == "":
		problems = append(problems, messages.ConfigSpecFileRequired)
	case strings.HasPrefix(spec, "/"):
		problems = append(problems, fmt.Sprintf(messages.ConfigSpecFileAbsoluteFmt, spec))
	}

	for _, tool := range c.Reporting.Tools {
		if strings.TrimSpace(tool) == "" {
			problems = append(problems, messages.ConfigReportingToolEmpty)
			break
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf(messages.ConfigValidationFailedFmt, source, strings.Join(problems, "; "))
}
