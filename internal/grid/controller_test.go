package grid

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComposer struct {
	mu      sync.Mutex
	calls   []string
	upErr   error
	downErr error
}

func (f *fakeComposer) Up(context.Context) error {
	f.record("up")
	return f.upErr
}

func (f *fakeComposer) Down(context.Context) error {
	f.record("down")
	return f.downErr
}

func (f *fakeComposer) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

// fakeStatus fails the first failures queries, then reports count.
type fakeStatus struct {
	mu       sync.Mutex
	failures int
	count    int
	queries  int
}

func (f *fakeStatus) BrowserCount(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries++
	if f.failures < 0 || f.queries <= f.failures {
		return 0, errors.New("connection refused")
	}
	return f.count, nil
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

func newController(compose Composer, status StatusChecker, timeout time.Duration) *Controller {
	return New(compose, status, Options{
		StartupTimeout: timeout,
		PollInterval:   5 * time.Millisecond,
		Logger:         quietLogger(),
	})
}

func TestDetect(t *testing.T) {
	ctrl := newController(&fakeComposer{}, &fakeStatus{count: 4}, time.Second)

	count, err := ctrl.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	ctrl = newController(&fakeComposer{}, &fakeStatus{failures: -1}, time.Second)

	_, err = ctrl.Detect(context.Background())
	assert.ErrorContains(t, err, "selenium grid not detected")
}

func TestStartWaitsForGrid(t *testing.T) {
	compose := &fakeComposer{}
	status := &fakeStatus{failures: 3, count: 2}
	ctrl := newController(compose, status, 5*time.Second)

	count, err := ctrl.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"up"}, compose.calls)
	assert.Equal(t, 4, status.queries)
	assert.Equal(t, Ready, ctrl.State())
}

func TestStartUpFailureSkipsWait(t *testing.T) {
	compose := &fakeComposer{upErr: errors.New("docker-compose up failed")}
	status := &fakeStatus{}
	ctrl := newController(compose, status, time.Second)

	_, err := ctrl.Start(context.Background())
	require.EqualError(t, err, "docker-compose up failed")

	assert.Zero(t, status.queries)
	assert.Equal(t, Failed, ctrl.State())
}

func TestStartTimesOut(t *testing.T) {
	status := &fakeStatus{failures: -1}
	ctrl := newController(&fakeComposer{}, status, 50*time.Millisecond)

	_, err := ctrl.Start(context.Background())
	require.Error(t, err)

	assert.Contains(t, err.Error(), "timeout waiting for selenium grid")
	assert.Greater(t, status.queries, 1)
	assert.Equal(t, Failed, ctrl.State())
}

func TestStartCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	status := &fakeStatus{failures: -1}
	ctrl := newController(&fakeComposer{}, status, time.Minute)

	time.AfterFunc(30*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Start(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}

func TestStop(t *testing.T) {
	compose := &fakeComposer{}
	ctrl := newController(compose, &fakeStatus{}, time.Second)

	require.NoError(t, ctrl.Stop(context.Background()))
	assert.Equal(t, []string{"down"}, compose.calls)
	assert.Equal(t, Idle, ctrl.State())

	compose.downErr = errors.New("docker-compose down failed")
	assert.Error(t, ctrl.Stop(context.Background()))
	assert.Equal(t, Failed, ctrl.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "bringing-up", BringingUp.String())
	assert.Equal(t, "waiting", Waiting.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestStartSucceedsOnEmptyGrid(t *testing.T) {
	status := &fakeStatus{failures: 1, count: 0}
	ctrl := newController(&fakeComposer{}, status, 5*time.Second)

	count, err := ctrl.Start(context.Background())
	require.NoError(t, err)

	assert.Zero(t, count)
	assert.Equal(t, 2, status.queries)
	assert.Equal(t, Ready, ctrl.State())
}
