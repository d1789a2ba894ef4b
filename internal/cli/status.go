package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatusCmd(factory controllerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the current status of the selenium hosts",
		Long: `Report how many WebDriver browsers the grid serves.

Exits with status 1 when no grid answers on the configured host and port.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := factory(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			count, err := ctrl.Detect(cmd.Context())
			if err != nil {
				color.New(color.FgRed).Fprintln(out, "Selenium is not running.")
				return ErrNotRunning
			}

			color.New(color.FgGreen).Fprintf(out, "Selenium is running with %d browsers.\n", count)
			return nil
		},
	}
}
