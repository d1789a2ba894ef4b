// Package grid controls the lifecycle of a local Selenium grid.
//
// A Controller brings the grid up through the compose tool, waits until the
// hub answers a status query, and tears the grid down again.
package grid

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/siderolabs/go-retry/retry"
	"github.com/sirupsen/logrus"
)

// Default startup wait settings.
const (
	DefaultStartupTimeout = 2 * time.Minute
	DefaultPollInterval   = time.Second
)

// Composer starts and stops the grid containers
type Composer interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}

// StatusChecker counts the WebDriver browsers the grid serves
type StatusChecker interface {
	BrowserCount(ctx context.Context) (int, error)
}

// Options tune the startup wait
type Options struct {
	StartupTimeout time.Duration
	PollInterval   time.Duration
	Logger         logrus.FieldLogger
}

// Controller wraps bring-up, tear-down and status detection
type Controller struct {
	compose  Composer
	status   StatusChecker
	timeout  time.Duration
	interval time.Duration
	log      logrus.FieldLogger

	mu    sync.Mutex
	state State
}

// New creates a Controller. Zero options fall back to the defaults.
func New(compose Composer, status StatusChecker, opts Options) *Controller {
	if opts.StartupTimeout <= 0 {
		opts.StartupTimeout = DefaultStartupTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Controller{
		compose:  compose,
		status:   status,
		timeout:  opts.StartupTimeout,
		interval: opts.PollInterval,
		log:      opts.Logger,
		state:    Idle,
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) transition(next State) {
	c.mu.Lock()
	prev := c.state
	c.state = next
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"from": prev.String(),
		"to":   next.String(),
	}).Debug("grid state changed")
}

// Detect reports how many WebDriver browsers a running grid serves.
// It fails when no grid answers.
func (c *Controller) Detect(ctx context.Context) (int, error) {
	count, err := c.status.BrowserCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("selenium grid not detected: %w", err)
	}

	return count, nil
}

// Start brings the grid up and returns once the hub answers a status query.
// The returned count may be 0 if no node has registered yet.
func (c *Controller) Start(ctx context.Context) (int, error) {
	c.transition(BringingUp)

	if err := c.compose.Up(ctx); err != nil {
		c.transition(Failed)
		return 0, err
	}

	c.transition(Waiting)

	count, err := c.waitForStartup(ctx)
	if err != nil {
		c.transition(Failed)
		return 0, err
	}

	c.transition(Ready)

	return count, nil
}

// Stop tears the grid down
func (c *Controller) Stop(ctx context.Context) error {
	if err := c.compose.Down(ctx); err != nil {
		c.transition(Failed)
		return err
	}

	c.transition(Idle)

	return nil
}

// waitForStartup polls the status endpoint until it answers, the startup
// timeout elapses or ctx is cancelled.
func (c *Controller) waitForStartup(ctx context.Context) (int, error) {
	var (
		count   int
		attempt int
	)

	err := retry.Constant(c.timeout, retry.WithUnits(c.interval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			attempt++

			n, err := c.status.BrowserCount(ctx)
			if err != nil {
				c.log.WithError(err).WithField("attempt", attempt).Debug("grid not ready")
				return retry.ExpectedError(err)
			}

			count = n
			return nil
		})
	if err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("startup wait cancelled after %d attempts: %w", attempt, ctx.Err())
		}
		return 0, fmt.Errorf("timeout waiting for selenium grid after %s: %w", c.timeout, err)
	}

	return count, nil
}
