package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/condaprep/condaprep/internal/config"
	"github.com/condaprep/condaprep/internal/messages"
	"github.com/condaprep/condaprep/internal/terminal"
	"github.com/condaprep/condaprep/internal/wizard"
)

// Test seams.
var (
	isInteractiveFunc = terminal.IsInteractive
	runWizardFunc     = wizard.Run
)

func newInitCmd() *cobra.Command {
	var yes bool
	var envName string
	var prefixDir string
	var specFile string

	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := initRoot()
			if err != nil {
				return err
			}

			flagged := envName != "" || prefixDir != "" || specFile != ""
			if yes || flagged || !isInteractiveFunc() {
				return runInitNonInteractive(cmd.OutOrStdout(), root, envName, prefixDir, specFile)
			}
			if err := runWizardFunc(root, wizard.NewHuhUI(), cmd.OutOrStdout()); err != nil {
				// The wizard already printed the abort message.
				if errors.Is(err, wizard.ErrCancelled) {
					return &SilentExitError{Code: 1}
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, messages.InitFlagYes)
	cmd.Flags().StringVar(&envName, "env-name", "", messages.InitFlagEnvName)
	cmd.Flags().StringVar(&prefixDir, "prefix-dir", "", messages.InitFlagPrefixDir)
	cmd.Flags().StringVar(&specFile, "spec-file", "", messages.InitFlagSpecFile)
	return cmd
}

// initRoot resolves the project root for init. Unlike the other commands a
// missing condaprep.toml is fine here; init falls back to the current
// directory so it can create one.
func initRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", fmt.Errorf(messages.RootResolveCwdErr, err)
	}
	root, found, err := config.FindProjectRoot(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return cwd, nil
	}
	return root, nil
}

// runInitNonInteractive writes the config from defaults, any existing config,
// and flag overrides, without prompting.
func runInitNonInteractive(out io.Writer, root string, envName string, prefixDir string, specFile string) error {
	paths := config.DefaultPaths(root)

	choices, existed, err := seedInitChoices(paths.ConfigPath)
	if err != nil {
		return err
	}
	if envName != "" {
		choices.EnvName = envName
	}
	if prefixDir != "" {
		choices.PrefixDir = prefixDir
	}
	if specFile != "" {
		choices.SpecFile = specFile
	}

	content, err := wizard.Render(paths.ConfigPath, choices)
	if err != nil {
		return err
	}
	if err := wizard.Apply(paths.ConfigPath, content); err != nil {
		return err
	}

	if existed {
		_, _ = fmt.Fprintf(out, messages.InitUpdatedConfigFmt, paths.ConfigPath)
	} else {
		_, _ = fmt.Fprintf(out, messages.InitWroteConfigFmt, paths.ConfigPath)
	}
	_, _ = color.New(color.FgGreen).Fprintln(out, messages.InitNextSteps)
	return nil
}

// seedInitChoices seeds from an existing config when present, loading
// leniently so a config that fails validation can still be repaired.
func seedInitChoices(configPath string) (*wizard.Choices, bool, error) {
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return wizard.NewChoices(), false, nil
		}
		return nil, false, err
	}
	cfg, err := config.LoadConfigLenient(configPath)
	if err != nil {
		return nil, false, fmt.Errorf(messages.WizardLoadConfigFmt, err)
	}
	return wizard.ChoicesFromConfig(cfg), true, nil
}
