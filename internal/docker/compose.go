package docker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// FileResolver locates the service-definition file. It is only called when
// compose actually runs.
type FileResolver func() (string, error)

// StaticFile resolves to path as-is
func StaticFile(path string) FileResolver {
	return func() (string, error) {
		return path, nil
	}
}

// Compose drives the compose tool against one service-definition file
type Compose struct {
	runner  Runner
	command []string
	file    FileResolver
	project string
	log     logrus.FieldLogger
}

// NewCompose builds a Compose. command may hold several words, e.g. "docker compose".
func NewCompose(runner Runner, command string, file FileResolver, project string, log logrus.FieldLogger) (*Compose, error) {
	words := strings.Fields(command)
	if len(words) == 0 {
		return nil, errors.New("compose command must not be empty")
	}
	if file == nil {
		return nil, errors.New("compose file resolver must not be nil")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Compose{
		runner:  runner,
		command: words,
		file:    file,
		project: project,
		log:     log,
	}, nil
}

// Up starts the stack in detached mode
func (c *Compose) Up(ctx context.Context) error {
	if err := c.run(ctx, "up", "-d"); err != nil {
		return fmt.Errorf("%s up failed: %w", c.command[0], err)
	}

	return nil
}

// Down stops the stack
func (c *Compose) Down(ctx context.Context) error {
	if err := c.run(ctx, "down"); err != nil {
		return fmt.Errorf("%s down failed: %w", c.command[0], err)
	}

	return nil
}

func (c *Compose) run(ctx context.Context, args ...string) error {
	path, err := c.file()
	if err != nil {
		return err
	}

	definition, err := LoadComposeFile(path)
	if err != nil {
		return err
	}

	full := append([]string{}, c.command[1:]...)
	full = append(full, "-f", path, "-p", c.project)
	full = append(full, args...)

	c.log.WithFields(logrus.Fields{
		"command":  c.command[0],
		"args":     strings.Join(full, " "),
		"services": definition.ServiceNames(),
	}).Debug("running compose")

	_, err = c.runner.Run(ctx, c.command[0], full...)
	return err
}
