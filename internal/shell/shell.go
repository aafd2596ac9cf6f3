// Package shell starts an interactive subshell with an activated environment.
// When stdin and stdout are terminals the child runs on a pty so line editing,
// job control, and window resizes behave normally; otherwise the child
// inherits the plain streams, which keeps `condaprep shell -c`-style piping
// usable in CI.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/condaprep/condaprep/internal/messages"
	"github.com/condaprep/condaprep/internal/terminal"
)

// System abstracts process-level lookups for tests.
type System interface {
	Getenv(key string) string
	Stat(name string) (os.FileInfo, error)
}

// RealSystem implements System against the OS.
type RealSystem struct{}

func (RealSystem) Getenv(key string) string { return os.Getenv(key) }

func (RealSystem) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

// Options configures a subshell launch.
type Options struct {
	// Env is the complete child environment, typically the activation
	// environment from shellenv.
	Env []string
	// Args are extra arguments passed to the shell (for example -c "cmd").
	Args []string

	Stdin  *os.File
	Stdout *os.File
	Stderr io.Writer
}

// Seams for the pty plumbing, replaced in tests.
var (
	startPtyFunc    = pty.Start
	inheritSizeFunc = pty.InheritSize
	makeRawFunc     = term.MakeRaw
	restoreTermFunc = term.Restore
)

// Run launches the user's shell with the provided environment. The returned
// error wraps *exec.ExitError when the shell exits nonzero so callers can
// propagate the code.
func Run(ctx context.Context, sys System, opts Options) error {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	shellPath, err := resolveShell(sys)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, shellPath, opts.Args...)
	cmd.Env = opts.Env

	if terminal.IsTerminalFile(opts.Stdin) && terminal.IsTerminalFile(opts.Stdout) {
		return runOnPty(cmd, opts.Stdin, opts.Stdout, opts.Stderr)
	}
	return runPlain(cmd, opts)
}

// resolveShell returns $SHELL when set, falling back to /bin/sh.
func resolveShell(sys System) (string, error) {
	if sh := strings.TrimSpace(sys.Getenv("SHELL")); sh != "" {
		return sh, nil
	}
	if _, err := sys.Stat("/bin/sh"); err == nil {
		return "/bin/sh", nil
	}
	return "", fmt.Errorf(messages.ShellNoShellEnv)
}

// runPlain attaches the shell directly to the provided streams.
func runPlain(cmd *exec.Cmd, opts Options) error {
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf(messages.ShellExitErrFmt, err)
	}
	return nil
}

// runOnPty runs the shell on a pseudo-terminal, mirroring window size from
// the controlling terminal and putting it into raw mode for the duration.
func runOnPty(cmd *exec.Cmd, stdin *os.File, stdout *os.File, stderr io.Writer) error {
	ptmx, err := startPtyFunc(cmd)
	if err != nil {
		return fmt.Errorf(messages.ShellStartErrFmt, err)
	}
	defer func() { _ = ptmx.Close() }()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			if err := inheritSizeFunc(stdin, ptmx); err != nil {
				_, _ = fmt.Fprintf(stderr, messages.ShellResizeErrFmt, err)
			}
		}
	}()
	winch <- syscall.SIGWINCH // set the initial size
	defer func() {
		signal.Stop(winch)
		close(winch)
	}()

	oldState, err := makeRawFunc(int(stdin.Fd()))
	if err != nil {
		return fmt.Errorf(messages.ShellRawModeErrFmt, err)
	}
	defer func() { _ = restoreTermFunc(int(stdin.Fd()), oldState) }()

	// stdin copy never finishes on its own; it dies with the process.
	go func() { _, _ = io.Copy(ptmx, stdin) }()
	_, _ = io.Copy(stdout, ptmx)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf(messages.ShellExitErrFmt, err)
	}
	return nil
}
