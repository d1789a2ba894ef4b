package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/selenium-grid-control/internal/docker"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "selenium-grid version %s\n", cmd.Root().Version)

			file, err := docker.Bundled()
			if err != nil {
				return err
			}

			images := file.Images()
			fmt.Fprintln(out, "\nImages:")
			for _, name := range file.ServiceNames() {
				fmt.Fprintf(out, "  %-10s %s\n", name+":", images[name])
			}

			return nil
		},
	}
}
