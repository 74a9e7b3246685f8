package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pearlworks/countdown/internal/platform/logger"
)

// Scheduler drives a Registry from a TickSource, one Advance per interval.
// It is either stopped (initially) or running, and can be restarted any
// number of times.
type Scheduler struct {
	mu       sync.Mutex
	running  bool
	job      JobID
	gen      uint64
	interval int

	source   TickSource
	registry *Registry
	logger   *logger.Logger
	metrics  SchedulerMetrics
}

type SchedulerOption func(*Scheduler)

func WithSchedulerLogger(log *logger.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = log
	}
}

func WithSchedulerMetrics(m SchedulerMetrics) SchedulerOption {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// NewScheduler binds registry to source. intervalTicks is the number of host
// ticks in one countdown second.
func NewScheduler(source TickSource, registry *Registry, intervalTicks int, opts ...SchedulerOption) (*Scheduler, error) {
	if source == nil {
		return nil, errors.New("countdown: tick source is required")
	}
	if registry == nil {
		return nil, errors.New("countdown: registry is required")
	}
	if intervalTicks <= 0 {
		return nil, fmt.Errorf("countdown: interval must be positive, got %d", intervalTicks)
	}
	s := &Scheduler{
		interval: intervalTicks,
		source:   source,
		registry: registry,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start schedules the driver. Starting a running scheduler logs a warning and
// does nothing. If the tick source refuses the job the scheduler stays
// stopped and the error wraps ErrSchedulingFailed. A successful start drops
// any countdowns left over from a previous run.
func (s *Scheduler) Start() error {
	_, err := s.TryStart()
	return err
}

// TryStart is Start that also reports whether this call moved the scheduler
// from stopped to running.
func (s *Scheduler) TryStart() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn("Tried to start the countdown scheduler but it was already started.")
		return false, nil
	}

	gen := s.gen + 1
	job, err := s.source.ScheduleRepeating(s.interval, func() { s.tick(gen) })
	if err != nil {
		s.logger.Error("Failed to start the countdown scheduler", "error", err)
		return false, fmt.Errorf("%w: %w", ErrSchedulingFailed, err)
	}

	s.registry.Clear()
	s.gen = gen
	s.job = job
	s.running = true
	s.setRunningMetric(true)
	s.logger.Info("Started the countdown scheduler", "interval_ticks", s.interval)
	return true, nil
}

// Stop cancels the driver. Once Stop returns no Advance is in progress and
// none will start until the next Start.
func (s *Scheduler) Stop() {
	s.TryStop()
}

// TryStop is Stop that reports whether the scheduler was running.
func (s *Scheduler) TryStop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}
	s.source.Cancel(s.job)
	s.running = false
	s.job = 0
	s.setRunningMetric(false)
	s.logger.Info("Stopped the countdown scheduler")
	return true
}

// Restart stops and starts the scheduler.
func (s *Scheduler) Restart() error {
	s.Stop()
	return s.Start()
}

// IsRunning reports whether the driver is scheduled.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// tick is the job body. A callback from an earlier run that fires late,
// after Stop or Restart, does nothing.
func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || gen != s.gen {
		return
	}

	started := time.Now()
	s.registry.Advance()
	if s.metrics != nil {
		s.metrics.ObserveTick(time.Since(started))
	}
}

func (s *Scheduler) setRunningMetric(running bool) {
	if s.metrics != nil {
		s.metrics.SetSchedulerRunning(running)
	}
}
