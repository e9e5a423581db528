package cli

import (
	"pom_automation/presentation/terminal"

	"github.com/spf13/cobra"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Pick scenarios to run interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := terminal.NewTerminalInterface(
				a.runner(cmd.OutOrStdout()),
				a.guard(),
				a.logger,
				cmd.InOrStdin(),
				cmd.OutOrStdout(),
			)
			return shell.Run(cmd.Context())
		},
	}
}
