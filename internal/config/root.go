package config

import (
	"os"
	"path/filepath"
)

// FindProjectRoot searches upward from start for a directory containing
// condaprep.toml. It returns the directory, whether one was found, and any
// filesystem error other than non-existence.
func FindProjectRoot(start string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return dir, true, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
