package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStartCmd(factory controllerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a selenium grid on the docker host",
		Long: `Start a Selenium grid using docker-compose.

If a grid is already answering on the configured host and port, its browser
count is reported and nothing is started. Otherwise the bundled hub and
browser nodes are brought up and the command waits until the hub serves
browsers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := factory(cmd)
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			if count, err := ctrl.Detect(cmd.Context()); err == nil {
				color.New(color.FgCyan).Fprintf(out, "Selenium already running with %d browsers.\n", count)
				return nil
			}

			if _, err := ctrl.Start(cmd.Context()); err != nil {
				printErr(errOut, err)
				return nil
			}

			color.New(color.FgGreen).Fprintln(out, "Selenium started.")
			return nil
		},
	}
}
