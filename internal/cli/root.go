// Package cli implements the selenium-grid command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/selenium-grid-control/internal/config"
	"github.com/blackwell-systems/selenium-grid-control/internal/docker"
	"github.com/blackwell-systems/selenium-grid-control/internal/grid"
	"github.com/blackwell-systems/selenium-grid-control/internal/selenium"
)

// ErrNotRunning is returned by status when no grid answers. The message has
// already been printed; callers only need to exit non-zero.
var ErrNotRunning = errors.New("selenium is not running")

// gridController is what the commands need from grid.Controller
type gridController interface {
	Detect(ctx context.Context) (int, error)
	Start(ctx context.Context) (int, error)
	Stop(ctx context.Context) error
}

type controllerFactory func(cmd *cobra.Command) (gridController, error)

// Execute runs the root command with args. ctx cancels a pending startup wait.
func Execute(ctx context.Context, version string, args []string) error {
	root := newRootCmd(version, newController)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}

func newRootCmd(version string, factory controllerFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "selenium-grid",
		Short: "Manage a Selenium grid on the local docker host",
		Long: `Start, stop, restart and inspect a Selenium grid running as
docker-compose services on the local docker host.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("a command is required: start, stop, restart or status")
		},
	}

	root.AddCommand(
		newStartCmd(factory),
		newStopCmd(factory),
		newRestartCmd(factory),
		newStatusCmd(factory),
		newVersionCmd(),
	)

	return root
}

// newController wires the real controller from configuration
func newController(cmd *cobra.Command) (gridController, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger()
	logger.SetOutput(cmd.ErrOrStderr())

	// The compose file is only needed by up and down; status and the
	// detect step of start must work without a cache directory.
	resolveFile := func() (string, error) {
		return docker.ResolveComposeFile(cfg.ComposeFile)
	}

	runner := docker.NewExecRunner(cmd.OutOrStdout(), cmd.ErrOrStderr())
	compose, err := docker.NewCompose(runner, cfg.ComposeCommand, resolveFile, cfg.ProjectName, logger)
	if err != nil {
		return nil, err
	}

	status := selenium.NewClient(cfg.Grid.Address(), cfg.RequestTimeout)

	return grid.New(compose, status, grid.Options{
		StartupTimeout: cfg.StartupTimeout,
		PollInterval:   cfg.PollInterval,
		Logger:         logger,
	}), nil
}

func printErr(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "%v\n", err)
}
