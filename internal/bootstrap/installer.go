package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/condaprep/condaprep/internal/messages"
)

// removeStalePrefix deletes any partial installation left under prefix.
func removeStalePrefix(sys System, prefix string, stdout io.Writer) error {
	if _, err := sys.Stat(prefix); err != nil {
		return nil
	}
	_, _ = fmt.Fprintf(stdout, messages.BootstrapRemoveStaleFmt, prefix)
	if err := sys.RemoveAll(prefix); err != nil {
		return fmt.Errorf(messages.BootstrapRemoveStaleErrFmt, prefix, err)
	}
	return nil
}

// runInstaller executes the downloaded installer artifact non-interactively,
// installing into prefix (`sh installer.sh -b -p <prefix>`).
func runInstaller(ctx context.Context, sys System, installerPath string, prefix string, stdout io.Writer, stderr io.Writer) error {
	_, _ = fmt.Fprintf(stdout, messages.BootstrapRunningInstallerFmt, prefix)
	cmd := exec.CommandContext(ctx, "sh", installerPath, "-b", "-p", prefix)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := sys.RunCommand(cmd); err != nil {
		return fmt.Errorf(messages.BootstrapInstallerErrFmt, err)
	}
	return nil
}

// prependPath puts dir at the front of the process PATH and re-resolves the
// manager executable, the analogue of a shell's `hash -r`.
func prependPath(sys System, dir string, stdout io.Writer) error {
	current := sys.Getenv("PATH")
	if first(current) == dir {
		return nil
	}
	updated := dir
	if current != "" {
		updated = dir + string(filepath.ListSeparator) + current
	}
	if err := sys.Setenv("PATH", updated); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, messages.BootstrapPathPrependedFmt, dir)
	return nil
}

// first returns the leading entry of a PATH-style list.
func first(pathList string) string {
	if pathList == "" {
		return ""
	}
	for i := 0; i < len(pathList); i++ {
		if pathList[i] == filepath.ListSeparator {
			return pathList[:i]
		}
	}
	return pathList
}
