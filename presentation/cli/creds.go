package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCredsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "creds",
		Short: "Inspect or remove the saved test user",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the saved test user",
			RunE: func(cmd *cobra.Command, args []string) error {
				creds, ok := a.credentials().Load()
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "No saved credentials in %s\n", a.cfg.Credentials.File)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Name:     %s\nEmail:    %s\nPassword: %s\n",
					creds.Name, creds.Email, strings.Repeat("*", len(creds.Password)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete the saved test user",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.credentials().Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Credentials cleared")
				return nil
			},
		},
	)
	return cmd
}
