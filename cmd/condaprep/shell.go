package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/condaprep/condaprep/internal/bootstrap"
	"github.com/condaprep/condaprep/internal/config"
	"github.com/condaprep/condaprep/internal/messages"
	"github.com/condaprep/condaprep/internal/shell"
	"github.com/condaprep/condaprep/internal/shellenv"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ShellUse,
		Short: messages.ShellShort,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveProjectRoot()
			if err != nil {
				return err
			}
			paths := config.DefaultPaths(root)
			cfg, err := config.LoadConfig(paths.ConfigPath)
			if err != nil {
				return err
			}
			prefix, err := config.ResolvePrefix(cfg)
			if err != nil {
				return err
			}
			if bootstrap.Detect(bootstrap.RealSystem{}, prefix) == bootstrap.StateFresh {
				return fmt.Errorf(messages.ShellNotInstalledFmt, prefix)
			}

			env := shellenv.Activation(os.Environ(), prefix, cfg.Env.Name)
			return shell.Run(cmd.Context(), shell.RealSystem{}, shell.Options{
				Env:  env,
				Args: args,
			})
		},
	}
}
