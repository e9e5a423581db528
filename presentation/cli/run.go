package cli

import (
	"bufio"
	"fmt"
	"slices"

	"pom_automation/application/scenarios"
	"pom_automation/domain/entities"
	"pom_automation/presentation/terminal"

	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		sites []string
		yes   bool
	)
	cmd := &cobra.Command{
		Use:   "run [scenarios...]",
		Short: "Run scenarios (all of them when none are named)",
		Long: `Run scenarios by name or by site. Each scenario gets its own browser
session. Scenarios that create accounts or place orders ask first unless
--yes is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := selectScenarios(args, sites)
			if err != nil {
				return err
			}
			if !yes {
				list, err = terminal.Approve(cmd.Context(), a.guard(), bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), list)
				if err != nil {
					return err
				}
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to run")
				return nil
			}

			report, err := a.runner(cmd.OutOrStdout()).Run(cmd.Context(), list)
			if err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%d of %d scenario(s) failed", report.Failed, len(report.Results))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&sites, "site", "s", nil, "run every scenario of these sites")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "run data-changing scenarios without asking")
	return cmd
}

// selectScenarios resolves names and sites; neither means everything
func selectScenarios(names, sites []string) ([]scenarios.Scenario, error) {
	for _, site := range sites {
		if !slices.Contains(entities.Sites, entities.Site(site)) {
			return nil, fmt.Errorf("unknown site %q, want one of %v", site, entities.Sites)
		}
	}
	all := append(append([]string(nil), sites...), names...)
	if len(all) == 0 {
		return scenarios.All(), nil
	}
	return scenarios.Find(all...)
}
