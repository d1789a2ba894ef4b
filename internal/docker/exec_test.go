package docker

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerStreamsAndCaptures(t *testing.T) {
	var stdout, stderr bytes.Buffer
	runner := NewExecRunner(&stdout, &stderr)

	result, err := runner.Run(context.Background(), "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
	assert.Contains(t, string(result.Output), "out\n")
	assert.Contains(t, string(result.Output), "err\n")
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	runner := NewExecRunner(&stdout, &stderr)

	result, err := runner.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)

	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "boom\n", stderr.String())

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Equal(t, "sh -c echo boom >&2; exit 3 exited with code 3", exitErr.Error())
}

func TestExecRunnerSpawnFailure(t *testing.T) {
	runner := NewExecRunner(&bytes.Buffer{}, &bytes.Buffer{})

	result, err := runner.Run(context.Background(), "selenium-grid-no-such-binary")
	require.Error(t, err)

	assert.Equal(t, -1, result.ExitCode)
	assert.Contains(t, err.Error(), "failed to run selenium-grid-no-such-binary")
}
