package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pearlworks/countdown/internal/countdown"
	"github.com/pearlworks/countdown/internal/platform/logger"
)

// TicksPerSecond is the host clock rate.
const TicksPerSecond = 20

// TickRate is the real time between two host ticks.
const TickRate = time.Second / TicksPerSecond

var (
	ErrTickerStopped   = errors.New("engine: ticker is closed")
	ErrInvalidInterval = errors.New("engine: interval must be positive")
)

type job struct {
	id       countdown.JobID
	interval int64
	nextDue  int64
	fn       func()
}

// Ticker manages the host heartbeat and runs repeating jobs on it.
// It does NOT know about countdowns - only tick progression.
type Ticker struct {
	mu         sync.Mutex
	logger     *logger.Logger
	tickNumber int64
	nextID     countdown.JobID
	jobs       map[countdown.JobID]*job
	closed     bool
}

// NewTicker creates a new host ticker.
func NewTicker(log *logger.Logger) *Ticker {
	return &Ticker{
		logger: log,
		jobs:   make(map[countdown.JobID]*job),
	}
}

// ScheduleRepeating runs fn every intervalTicks ticks, first after one full
// interval. It fails once the ticker has been closed.
func (t *Ticker) ScheduleRepeating(intervalTicks int, fn func()) (countdown.JobID, error) {
	if intervalTicks <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidInterval, intervalTicks)
	}
	if fn == nil {
		return 0, errors.New("engine: job function is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, ErrTickerStopped
	}
	t.nextID++
	t.jobs[t.nextID] = &job{
		id:       t.nextID,
		interval: int64(intervalTicks),
		nextDue:  t.tickNumber + int64(intervalTicks),
		fn:       fn,
	}
	return t.nextID, nil
}

// Cancel removes a job. A callback already collected by a running Step may
// still fire once; job bodies guard against that themselves.
func (t *Ticker) Cancel(id countdown.JobID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, id)
}

// Jobs returns the number of scheduled jobs.
func (t *Ticker) Jobs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

// TickNumber returns how many ticks have elapsed.
func (t *Ticker) TickNumber() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tickNumber
}

// Step processes a single host tick: due jobs are collected under the lock
// and run after it is released, so a job may schedule or cancel jobs.
func (t *Ticker) Step() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.tickNumber++
	var due []func()
	for _, j := range t.jobs {
		if j.nextDue <= t.tickNumber {
			j.nextDue += j.interval
			due = append(due, j.fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// Start drives Step from real time until ctx is cancelled or the ticker is
// closed. Call in a goroutine.
func (t *Ticker) Start(ctx context.Context) {
	t.logger.Info("Host ticker started", "ticks_per_second", TicksPerSecond)

	ticker := time.NewTicker(TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Host ticker stopped by context.")
			return
		case <-ticker.C:
			if t.isClosed() {
				t.logger.Info("Host ticker stopped manually.")
				return
			}
			t.Step()
		}
	}
}

// Close stops the clock for good and drops every job.
func (t *Ticker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	clear(t.jobs)
}

func (t *Ticker) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
