// Package conda drives the distribution manager executable. Every operation
// is a synchronous invocation of the conda (or env-local pip) binary; the
// manager's own exit status propagates unwrapped so failures abort the
// bootstrap sequence with the manager's diagnostics.
package conda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/condaprep/condaprep/internal/messages"
)

// Conda invokes a specific conda executable.
type Conda struct {
	// Bin is the absolute path of the conda executable.
	Bin string
	// Prefix is the installation prefix Bin lives under.
	Prefix string
	// Env is the process environment for invocations; nil inherits os.Environ.
	Env []string
	// Stdout and Stderr receive command output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	runner Runner
}

// New returns a driver for the conda executable under prefix.
func New(prefix string, stdout io.Writer, stderr io.Writer) (*Conda, error) {
	bin := BinPath(prefix)
	return newWithRunner(bin, prefix, stdout, stderr, RealRunner{})
}

func newWithRunner(bin string, prefix string, stdout io.Writer, stderr io.Writer, runner Runner) (*Conda, error) {
	if strings.TrimSpace(bin) == "" {
		return nil, fmt.Errorf(messages.CondaBinRequired)
	}
	return &Conda{Bin: bin, Prefix: prefix, Stdout: stdout, Stderr: stderr, runner: runner}, nil
}

// BinPath returns the conda executable path under an installation prefix.
func BinPath(prefix string) string {
	return filepath.Join(prefix, "bin", "conda")
}

// EnvPrefix returns the directory of a named environment under the prefix.
func (c *Conda) EnvPrefix(name string) string {
	return filepath.Join(c.Prefix, "envs", name)
}

// ConfigureNonInteractive sets the always-confirm, no-prompt-mangling flags.
func (c *Conda) ConfigureNonInteractive(ctx context.Context) error {
	return c.run(ctx, "config", "--set", "always_yes", "yes", "--set", "changeps1", "no")
}

// SelfUpdate updates the distribution manager itself.
func (c *Conda) SelfUpdate(ctx context.Context) error {
	return c.run(ctx, "update", "-q", "conda")
}

// Info prints installation diagnostics.
func (c *Conda) Info(ctx context.Context) error {
	return c.run(ctx, "info", "-a")
}

// CreateEnv materializes the named environment from the spec file.
func (c *Conda) CreateEnv(ctx context.Context, name string, specPath string) error {
	return c.run(ctx, "env", "create", "-q", "-n", name, "-f", specPath)
}

// UpdateAll updates every package inside the named environment.
func (c *Conda) UpdateAll(ctx context.Context, name string) error {
	return c.run(ctx, "update", "-q", "--all", "-n", name)
}

// ListEnvs returns the prefixes of all environments the manager knows about.
func (c *Conda) ListEnvs(ctx context.Context) ([]string, error) {
	cmd := c.command(ctx, "env", "list", "--json")
	cmd.Stdout = nil // Output captures stdout itself.
	out, err := c.runner.Output(cmd)
	if err != nil {
		return nil, fmt.Errorf(messages.CondaExitErrFmt, "env list", err)
	}
	var payload struct {
		Envs []string `json:"envs"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf(messages.CondaListEnvsDecodeFmt, err)
	}
	return payload.Envs, nil
}

// EnvExists reports whether the named environment exists under the prefix.
func (c *Conda) EnvExists(ctx context.Context, name string) (bool, error) {
	envs, err := c.ListEnvs(ctx)
	if err != nil {
		return false, err
	}
	want := c.EnvPrefix(name)
	for _, env := range envs {
		if filepath.Clean(env) == filepath.Clean(want) {
			return true, nil
		}
	}
	return false, nil
}

// PipInstall install-or-upgrades tools with the environment's own pip.
func (c *Conda) PipInstall(ctx context.Context, envName string, tools []string) error {
	if len(tools) == 0 {
		return nil
	}
	pip := filepath.Join(c.EnvPrefix(envName), "bin", "pip")
	if _, err := os.Stat(pip); err != nil {
		return fmt.Errorf(messages.CondaPipMissingFmt, pip)
	}
	args := append([]string{"install", "-U"}, tools...)
	cmd := exec.CommandContext(ctx, pip, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.Env = c.Env
	if err := c.runner.Run(cmd); err != nil {
		return fmt.Errorf(messages.CondaPipExitErrFmt, err)
	}
	return nil
}

// run executes conda with args and streams output to the configured writers.
func (c *Conda) run(ctx context.Context, args ...string) error {
	cmd := c.command(ctx, args...)
	if err := c.runner.Run(cmd); err != nil {
		return fmt.Errorf(messages.CondaExitErrFmt, strings.Join(args, " "), err)
	}
	return nil
}

func (c *Conda) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Bin, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.Env = c.Env
	return cmd
}
