package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result is the outcome of an external command
type Result struct {
	ExitCode int
	Output   []byte
}

// Runner runs an external command to completion
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExitError reports a command that ran but exited non-zero
type ExitError struct {
	Command  string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// ExecRunner runs commands on the local host, streaming their output to
// Stdout and Stderr while also capturing it.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner attached to the given streams
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{Stdout: stdout, Stderr: stderr}
}

// Run executes name with args. A spawn failure yields ExitCode -1.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var captured bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.MultiWriter(stdout, &captured)
	cmd.Stderr = io.MultiWriter(stderr, &captured)

	err := cmd.Run()
	result := Result{Output: captured.Bytes()}
	if err == nil {
		return result, nil
	}

	commandLine := strings.Join(append([]string{name}, args...), " ")

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, &ExitError{Command: commandLine, ExitCode: result.ExitCode}
	}

	result.ExitCode = -1
	return result, fmt.Errorf("failed to run %s: %w", commandLine, err)
}
