package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/condaprep/condaprep/internal/messages"
)

// ConfigFileName is the fixed name of the project config file.
const ConfigFileName = "condaprep.toml"

// Paths holds resolved paths for a project's config and spec files.
type Paths struct {
	Root       string
	ConfigPath string
}

// DefaultPaths returns the default config paths for a project root.
func DefaultPaths(root string) Paths {
	return Paths{
		Root:       root,
		ConfigPath: filepath.Join(root, ConfigFileName),
	}
}

// SpecPath resolves the environment spec file path against the project root.
func (p Paths) SpecPath(cfg *Config) string {
	return filepath.Join(p.Root, filepath.FromSlash(cfg.Env.SpecFile))
}

// ResolvePrefix expands install.dir into an absolute installation prefix.
// A leading ~ resolves against the user's home directory.
func ResolvePrefix(cfg *Config) (string, error) {
	expanded, err := homedir.Expand(cfg.Install.Dir)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPrefixErrFmt, cfg.Install.Dir, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPrefixErrFmt, cfg.Install.Dir, err)
	}
	return abs, nil
}
