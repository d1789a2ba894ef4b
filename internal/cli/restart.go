package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRestartCmd(factory controllerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the selenium grid on the docker host",
		Long:  `Stop the Selenium grid, then start it again. A failed stop aborts the restart.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := factory(cmd)
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			progress := color.New(color.FgCyan)

			progress.Fprintln(out, "Stopping Selenium.")
			if err := ctrl.Stop(cmd.Context()); err != nil {
				printErr(errOut, err)
				return nil
			}

			progress.Fprintln(out, "Selenium stopped.")
			progress.Fprintln(out, "Restarting Selenium.")

			if _, err := ctrl.Start(cmd.Context()); err != nil {
				printErr(errOut, err)
				return nil
			}

			color.New(color.FgGreen).Fprintln(out, "Selenium restarted successfully.")
			return nil
		},
	}
}
