// Package bootstrap implements the environment bootstrap sequence: it
// conditionally installs the distribution manager, then creates or updates
// the named isolated environment from the declarative spec file. The whole
// run is a fixed, non-looping sequence in one of two states (fresh install
// or existing install), decided once by a filesystem existence check.
// Failures are not retried or cleaned up; the first failing step aborts the
// run and its exit status propagates.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/condaprep/condaprep/internal/conda"
	"github.com/condaprep/condaprep/internal/config"
	"github.com/condaprep/condaprep/internal/envspec"
	"github.com/condaprep/condaprep/internal/messages"
	"github.com/condaprep/condaprep/internal/shellenv"
)

// Options controls a bootstrap run.
type Options struct {
	Config *config.Config
	Paths  config.Paths
	// Stdout receives progress lines; Stderr receives subprocess error
	// output. Both default to io.Discard.
	Stdout io.Writer
	Stderr io.Writer
	System System

	// ForceFresh discards any existing installation before bootstrapping.
	ForceFresh bool
	// SkipSelfUpdate omits the manager self-update step.
	SkipSelfUpdate bool
	// SkipReporting omits the reporting-tool install on the existing branch.
	SkipReporting bool
	// DiffMaxLines caps the spec drift preview; zero means the default.
	DiffMaxLines int

	// newConda is a test seam; nil uses conda.New.
	newConda func(prefix string, stdout io.Writer, stderr io.Writer) (*conda.Conda, error)
}

// Result reports the outcome of a successful bootstrap run.
type Result struct {
	State   State
	Prefix  string
	EnvName string
	// ActivationEnv is the process environment with the named environment
	// activated, for handing to subprocesses.
	ActivationEnv []string
}

// Run executes the bootstrap sequence and returns its outcome.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf(messages.BootstrapConfigRequired)
	}
	if opts.System == nil {
		return nil, fmt.Errorf(messages.BootstrapSystemRequired)
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.newConda == nil {
		opts.newConda = conda.New
	}

	prefix, err := config.ResolvePrefix(opts.Config)
	if err != nil {
		return nil, err
	}

	parent := filepath.Dir(prefix)
	if err := opts.System.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf(messages.BootstrapMkdirErrFmt, parent, err)
	}

	var result *Result
	err = withFileLock(LockPath(prefix), func() error {
		var runErr error
		result, runErr = run(ctx, opts, prefix)
		return runErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func run(ctx context.Context, opts Options, prefix string) (*Result, error) {
	sys := opts.System
	cfg := opts.Config
	specPath := opts.Paths.SpecPath(cfg)

	if opts.ForceFresh {
		if err := removeStalePrefix(sys, prefix, opts.Stdout); err != nil {
			return nil, err
		}
	}

	state := Detect(sys, prefix)
	if state == StateFresh {
		_, _ = fmt.Fprintf(opts.Stdout, messages.UpFreshInstallFmt, prefix)
		if err := installManager(ctx, opts, prefix); err != nil {
			return nil, err
		}
	} else {
		_, _ = fmt.Fprintf(opts.Stdout, messages.UpExistingInstallFmt, prefix)
	}

	if err := prependPath(sys, filepath.Join(prefix, "bin"), opts.Stdout); err != nil {
		return nil, err
	}
	// Re-resolve the executable after the PATH mutation (the `hash -r`
	// analogue) and confirm the installation actually produced it.
	if _, err := sys.Stat(conda.BinPath(prefix)); err != nil {
		return nil, fmt.Errorf(messages.BootstrapCondaMissingFmt, conda.BinPath(prefix))
	}
	if _, err := sys.LookPath("conda"); err != nil {
		return nil, fmt.Errorf(messages.BootstrapCondaMissingFmt, conda.BinPath(prefix))
	}

	mgr, err := opts.newConda(prefix, opts.Stdout, opts.Stderr)
	if err != nil {
		return nil, err
	}

	if err := mgr.ConfigureNonInteractive(ctx); err != nil {
		return nil, err
	}
	if !opts.SkipSelfUpdate {
		if err := mgr.SelfUpdate(ctx); err != nil {
			return nil, err
		}
	}

	envName := cfg.Env.Name
	specContent, err := applyEnvironment(ctx, opts, mgr, state, envName, specPath, prefix)
	if err != nil {
		return nil, err
	}

	if specContent != nil {
		if err := WriteSnapshot(sys, prefix, specContent); err != nil {
			return nil, err
		}
	}

	return &Result{
		State:         state,
		Prefix:        prefix,
		EnvName:       envName,
		ActivationEnv: shellenv.Activation(sys.Environ(), prefix, envName),
	}, nil
}

// installManager fetches the installer artifact and runs it into prefix.
func installManager(ctx context.Context, opts Options, prefix string) error {
	sys := opts.System
	if err := removeStalePrefix(sys, prefix, opts.Stdout); err != nil {
		return err
	}

	url := strings.TrimSpace(opts.Config.Install.InstallerURL)
	if url == "" {
		defaultURL, err := DefaultInstallerURL()
		if err != nil {
			return err
		}
		url = defaultURL
	}

	_, _ = fmt.Fprintf(opts.Stdout, messages.BootstrapDownloadingFmt, url)
	installerPath, err := downloadInstaller(ctx, sys, url, filepath.Dir(prefix))
	if err != nil {
		return err
	}
	defer func() {
		_ = sys.RemoveAll(installerPath)
	}()

	return runInstaller(ctx, sys, installerPath, prefix, opts.Stdout, opts.Stderr)
}

// applyEnvironment runs the state-specific half of the sequence. It returns
// the spec contents to snapshot, or nil when no snapshot should be written.
// The spec file is required only on the fresh branch; the existing branch
// updates in place and consults the file solely for the drift preview.
func applyEnvironment(ctx context.Context, opts Options, mgr *conda.Conda, state State, envName string, specPath string, prefix string) ([]byte, error) {
	sys := opts.System

	if state == StateFresh {
		if _, err := sys.Stat(specPath); err != nil {
			return nil, fmt.Errorf(messages.BootstrapSpecMissingFmt, specPath)
		}
		spec, err := envspec.Load(specPath)
		if err != nil {
			return nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		specContent, err := sys.ReadFile(specPath)
		if err != nil {
			return nil, fmt.Errorf(messages.EnvspecReadFailedFmt, specPath, err)
		}

		if err := mgr.Info(ctx); err != nil {
			return nil, err
		}
		if err := mgr.CreateEnv(ctx, envName, specPath); err != nil {
			return nil, err
		}
		return specContent, nil
	}

	var specContent []byte
	if data, err := sys.ReadFile(specPath); err == nil {
		specContent = data
		printDriftPreview(opts, prefix, specPath, specContent)
	}

	if err := mgr.UpdateAll(ctx, envName); err != nil {
		return nil, err
	}
	if !opts.SkipReporting {
		if err := mgr.PipInstall(ctx, envName, opts.Config.Reporting.Tools); err != nil {
			return nil, err
		}
	}
	return specContent, nil
}

// printDriftPreview shows how the spec changed since the last applied
// snapshot. Best effort only; preview problems never fail the run.
func printDriftPreview(opts Options, prefix string, specPath string, specContent []byte) {
	snapshot, ok, err := ReadSnapshot(opts.System, prefix)
	if err != nil || !ok || string(snapshot) == string(specContent) {
		return
	}
	preview, truncated := DiffPreview(string(snapshot), string(specContent), specPath, opts.DiffMaxLines)
	if preview == "" {
		return
	}
	_, _ = fmt.Fprintln(opts.Stdout, messages.UpSpecChangedHeader)
	_, _ = fmt.Fprintln(opts.Stdout, preview)
	if truncated {
		_, _ = fmt.Fprintln(opts.Stdout, "...")
	}
}
