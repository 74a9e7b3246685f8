package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pearlworks/countdown/internal/countdown"
	"github.com/pearlworks/countdown/internal/platform/logger"
)

func TestJobRunsOncePerInterval(t *testing.T) {
	ticker := NewTicker(logger.Discard())
	runs := 0
	_, err := ticker.ScheduleRepeating(TicksPerSecond, func() { runs++ })
	require.NoError(t, err)

	for range TicksPerSecond - 1 {
		ticker.Step()
	}
	assert.Zero(t, runs, "first run waits a full interval")

	ticker.Step()
	assert.Equal(t, 1, runs)

	for range 3 * TicksPerSecond {
		ticker.Step()
	}
	assert.Equal(t, 4, runs)
	assert.Equal(t, int64(4*TicksPerSecond), ticker.TickNumber())
}

func TestCancelledJobStopsRunning(t *testing.T) {
	ticker := NewTicker(logger.Discard())
	runs := 0
	id, err := ticker.ScheduleRepeating(1, func() { runs++ })
	require.NoError(t, err)

	ticker.Step()
	ticker.Cancel(id)
	ticker.Step()

	assert.Equal(t, 1, runs)
	assert.Zero(t, ticker.Jobs())
}

func TestJobMayCancelItself(t *testing.T) {
	ticker := NewTicker(logger.Discard())
	runs := 0
	var id countdown.JobID
	id, err := ticker.ScheduleRepeating(1, func() {
		runs++
		ticker.Cancel(id)
	})
	require.NoError(t, err)

	ticker.Step()
	ticker.Step()
	assert.Equal(t, 1, runs)
}

func TestScheduleRejectsBadInput(t *testing.T) {
	ticker := NewTicker(logger.Discard())

	_, err := ticker.ScheduleRepeating(0, func() {})
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = ticker.ScheduleRepeating(1, nil)
	assert.Error(t, err)
}

func TestClosedTickerRefusesJobs(t *testing.T) {
	ticker := NewTicker(logger.Discard())
	runs := 0
	_, err := ticker.ScheduleRepeating(1, func() { runs++ })
	require.NoError(t, err)

	ticker.Close()
	ticker.Step()
	assert.Zero(t, runs)

	_, err = ticker.ScheduleRepeating(1, func() {})
	assert.ErrorIs(t, err, ErrTickerStopped)
}

func TestStartDrivesStepsUntilCancelled(t *testing.T) {
	ticker := NewTicker(logger.Discard())
	var runs atomic.Int32
	_, err := ticker.ScheduleRepeating(1, func() { runs.Add(1) })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ticker.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, TickRate)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not stop after cancel")
	}
}
