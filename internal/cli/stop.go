package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStopCmd(factory controllerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the selenium grid (if it exists) on the docker host",
		Long:  `Stop the Selenium grid containers. The compose tool is invoked even when no grid is running.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := factory(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			color.New(color.FgCyan).Fprintln(out, "Stopping Selenium.")

			if err := ctrl.Stop(cmd.Context()); err != nil {
				printErr(cmd.ErrOrStderr(), err)
				return nil
			}

			color.New(color.FgGreen).Fprintln(out, "Selenium stopped.")
			return nil
		},
	}
}
