package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/blackwell-systems/selenium-grid-control/internal/cli"
	"github.com/blackwell-systems/selenium-grid-control/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code. Only configuration errors and a
// status check that finds no grid exit non-zero; start, stop and restart
// report their own failures.
func run(args []string) int {
	if err := config.Init(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		return 1
	}

	// Interrupting start cancels the wait for the hub.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx, version, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrNotRunning):
		// "Selenium is not running." was already printed.
		return 1
	default:
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}
