package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condaprep/condaprep/internal/config"
	"github.com/condaprep/condaprep/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newUpCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newShellCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

// resolveProjectRoot returns the nearest ancestor directory containing
// condaprep.toml, or fails with a pointer at init.
func resolveProjectRoot() (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", fmt.Errorf(messages.RootResolveCwdErr, err)
	}
	root, found, err := config.FindProjectRoot(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf(messages.RootMissingConfig)
	}
	return root, nil
}
