package bootstrap

import (
	"github.com/condaprep/condaprep/internal/conda"
)

// State is the single branch point of the bootstrap sequence, determined
// once at entry by the installation existence check.
type State int

const (
	// StateFresh means no distribution manager exists under the prefix.
	StateFresh State = iota
	// StateExisting means a prior installation was detected and is reused.
	StateExisting
)

// String returns the state name for diagnostics.
func (s State) String() string {
	if s == StateFresh {
		return "fresh"
	}
	return "existing"
}

// Detect classifies the installation under prefix by checking for the
// manager executable.
func Detect(sys System, prefix string) State {
	info, err := sys.Stat(conda.BinPath(prefix))
	if err != nil || info.IsDir() {
		return StateFresh
	}
	return StateExisting
}
