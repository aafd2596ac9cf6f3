// Package shellenv computes the process environment for an activated named
// environment. Activation is purely environment-variable surgery; nothing
// here persists beyond the receiving process.
package shellenv

import (
	"path/filepath"
	"strings"
)

// Activation returns environ with the named environment activated: the env's
// bin directory and the prefix bin directory lead PATH, and CONDA_PREFIX /
// CONDA_DEFAULT_ENV identify the environment.
func Activation(environ []string, prefix string, envName string) []string {
	envPrefix := filepath.Join(prefix, "envs", envName)
	envBin := filepath.Join(envPrefix, "bin")
	prefixBin := filepath.Join(prefix, "bin")

	path, _ := Get(environ, "PATH")
	entries := []string{envBin, prefixBin}
	for _, entry := range strings.Split(path, string(filepath.ListSeparator)) {
		if entry == "" || entry == envBin || entry == prefixBin {
			continue
		}
		entries = append(entries, entry)
	}

	out := Set(environ, "PATH", strings.Join(entries, string(filepath.ListSeparator)))
	out = Set(out, "CONDA_PREFIX", envPrefix)
	out = Set(out, "CONDA_DEFAULT_ENV", envName)
	return out
}

// Get returns the value of key in environ and whether it is present.
func Get(environ []string, key string) (string, bool) {
	needle := key + "="
	for i := len(environ) - 1; i >= 0; i-- {
		if strings.HasPrefix(environ[i], needle) {
			return environ[i][len(needle):], true
		}
	}
	return "", false
}

// Set returns environ with key set to value, replacing any existing entry.
func Set(environ []string, key string, value string) []string {
	needle := key + "="
	out := make([]string, 0, len(environ)+1)
	replaced := false
	for _, entry := range environ {
		if strings.HasPrefix(entry, needle) {
			if !replaced {
				out = append(out, needle+value)
				replaced = true
			}
			continue
		}
		out = append(out, entry)
	}
	if !replaced {
		out = append(out, needle+value)
	}
	return out
}
