package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condaprep/condaprep/internal/bootstrap"
	"github.com/condaprep/condaprep/internal/config"
	"github.com/condaprep/condaprep/internal/messages"
	"github.com/condaprep/condaprep/internal/updatewarn"
)

func newUpCmd() *cobra.Command {
	var fresh bool
	var skipSelfUpdate bool
	var noReporting bool

	cmd := &cobra.Command{
		Use:   messages.UpUse,
		Short: messages.UpShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveProjectRoot()
			if err != nil {
				return err
			}
			paths := config.DefaultPaths(root)
			cfg, err := config.LoadConfig(paths.ConfigPath)
			if err != nil {
				return err
			}

			if cfg.UpdateCheckEnabled() {
				updatewarn.WarnIfOutdated(cmd.Context(), Version, cmd.ErrOrStderr())
			}

			result, err := bootstrap.Run(cmd.Context(), bootstrap.Options{
				Config:         cfg,
				Paths:          paths,
				Stdout:         cmd.OutOrStdout(),
				Stderr:         cmd.ErrOrStderr(),
				System:         bootstrap.RealSystem{},
				ForceFresh:     fresh,
				SkipSelfUpdate: skipSelfUpdate,
				SkipReporting:  noReporting,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.UpEnvReadyFmt, result.EnvName, result.Prefix)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, messages.UpFlagFresh)
	cmd.Flags().BoolVar(&skipSelfUpdate, "skip-self-update", false, messages.UpFlagSkipSelfUpdate)
	cmd.Flags().BoolVar(&noReporting, "no-reporting", false, messages.UpFlagNoReporting)
	return cmd
}
