package cli

import (
	"pom_automation/presentation/terminal"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var sites []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios with their risk level",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := selectScenarios(nil, sites)
			if err != nil {
				return err
			}
			terminal.PrintScenarios(cmd.OutOrStdout(), a.guard(), list)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&sites, "site", "s", nil, "only these sites")
	return cmd
}
