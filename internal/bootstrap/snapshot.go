package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/condaprep/condaprep/internal/messages"
)

// stateDirName holds condaprep's bookkeeping under the installation prefix.
const stateDirName = ".condaprep"

// DefaultDiffMaxLines caps the spec drift preview length.
const DefaultDiffMaxLines = 40

// SnapshotPath returns the location of the last-applied spec snapshot.
func SnapshotPath(prefix string) string {
	return filepath.Join(prefix, stateDirName, "spec.snapshot")
}

// LockPath returns the lock file guarding bootstraps of prefix. It lives
// beside the prefix so a fresh install can wipe the prefix while holding it.
func LockPath(prefix string) string {
	return filepath.Join(filepath.Dir(prefix), "."+filepath.Base(prefix)+".condaprep.lock")
}

// ReadSnapshot returns the recorded spec contents, reporting absence
// separately from read failures.
func ReadSnapshot(sys System, prefix string) ([]byte, bool, error) {
	path := SnapshotPath(prefix)
	data, err := sys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(messages.BootstrapSnapshotReadErrFmt, path, err)
	}
	return data, true, nil
}

// WriteSnapshot records the spec contents that were just applied.
func WriteSnapshot(sys System, prefix string, specContent []byte) error {
	dir := filepath.Join(prefix, stateDirName)
	if err := sys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.BootstrapMkdirErrFmt, dir, err)
	}
	path := SnapshotPath(prefix)
	if err := sys.WriteFileAtomic(path, specContent, 0o644); err != nil {
		return fmt.Errorf(messages.BootstrapSnapshotWriteErrFmt, path, err)
	}
	return nil
}

// DiffPreview renders a unified diff between the last-applied snapshot and
// the current spec contents, truncated to maxLines. The second return value
// reports truncation.
func DiffPreview(snapshot string, current string, specPath string, maxLines int) (string, bool) {
	if maxLines <= 0 {
		maxLines = DefaultDiffMaxLines
	}
	unified := udiff.Unified("last applied", filepath.Base(specPath), snapshot, current)
	if unified == "" {
		return "", false
	}
	lines := strings.Split(strings.TrimRight(unified, "\n"), "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n"), false
	}
	return strings.Join(lines[:maxLines], "\n"), true
}
