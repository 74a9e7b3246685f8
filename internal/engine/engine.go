package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/countdown"
	"github.com/pearlworks/countdown/internal/domain/player"
	"github.com/pearlworks/countdown/internal/events"
	"github.com/pearlworks/countdown/internal/platform/logger"
	"github.com/pearlworks/countdown/internal/platform/metrics"
	"github.com/pearlworks/countdown/internal/roster"
)

// DefaultSuicideTimeout is the countdown length in seconds.
const DefaultSuicideTimeout = 180

// Spawn is where players without a saved position appear.
var Spawn = player.Position{World: "world", X: 0, Y: 64, Z: 0}

// PlayerStore persists player snapshots between sessions.
type PlayerStore interface {
	LoadPlayer(ctx context.Context, id uuid.UUID) (player.Player, bool, error)
	SavePlayers(ctx context.Context, players []player.Player) error
}

// Engine is the central orchestrator that wires the countdown to the
// players, the clock and the event log.
type Engine struct {
	eventLog *events.EventLog
	logger   *logger.Logger
	metrics  *metrics.Metrics
	store    PlayerStore
	timeout  int

	ticker    *Ticker
	roster    *roster.Roster
	registry  *countdown.Registry
	scheduler *countdown.Scheduler
	watcher   *countdown.MovementWatcher
}

type Option func(*Engine)

// WithMetrics records countdown and scheduler metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithSuicideTimeout sets the countdown length in seconds.
func WithSuicideTimeout(seconds int) Option {
	return func(e *Engine) {
		e.timeout = seconds
	}
}

// WithPlayerStore restores returning players and enables Snapshot.
func WithPlayerStore(store PlayerStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// NewEngine initializes the countdown and its dependencies.
func NewEngine(eventLog *events.EventLog, log *logger.Logger, opts ...Option) (*Engine, error) {
	if eventLog == nil {
		return nil, errors.New("engine: event log is required")
	}
	if log == nil {
		log = logger.Discard()
	}
	e := &Engine{
		eventLog: eventLog,
		logger:   log,
		timeout:  DefaultSuicideTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.timeout <= 0 {
		return nil, countdown.ErrInvalidTimeout
	}

	e.ticker = NewTicker(log)
	e.roster = roster.New(eventLog, roster.WithLogger(log))

	regOpts := []countdown.RegistryOption{
		countdown.WithRegistryLogger(log),
		countdown.WithObserver(&observer{engine: e}),
	}
	if e.metrics != nil {
		regOpts = append(regOpts, countdown.WithRegistryMetrics(e.metrics))
	}
	registry, err := countdown.NewRegistry(e.roster, regOpts...)
	if err != nil {
		return nil, err
	}
	e.registry = registry

	schedOpts := []countdown.SchedulerOption{countdown.WithSchedulerLogger(log)}
	if e.metrics != nil {
		schedOpts = append(schedOpts, countdown.WithSchedulerMetrics(e.metrics))
	}
	scheduler, err := countdown.NewScheduler(e.ticker, registry, TicksPerSecond, schedOpts...)
	if err != nil {
		return nil, err
	}
	e.scheduler = scheduler

	e.watcher = countdown.NewMovementWatcher(registry)
	eventLog.Subscribe(events.EventTypePlayerMove, events.PriorityMonitor, true, e.onPlayerMove)

	return e, nil
}

// Start starts the countdown scheduler and spawns the clock loop.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Starting countdown engine...", "timeout_seconds", e.timeout)
	if err := e.StartScheduler(); err != nil {
		return err
	}
	go e.ticker.Start(ctx)
	return nil
}

// Shutdown stops the scheduler and closes the clock for good.
func (e *Engine) Shutdown() {
	e.StopScheduler()
	e.ticker.Close()
	e.logger.Info("Countdown engine shut down")
}

// StartScheduler starts the countdown driver. Countdowns left from an earlier
// run are discarded.
func (e *Engine) StartScheduler() error {
	started, err := e.scheduler.TryStart()
	if err != nil {
		return err
	}
	if started {
		e.eventLog.Publish(&events.GameEvent{Type: events.EventTypeSchedulerStarted})
		e.setActive()
	}
	return nil
}

// StopScheduler stops the countdown driver. Running countdowns freeze until
// the next start clears them.
func (e *Engine) StopScheduler() {
	if !e.scheduler.TryStop() {
		return
	}
	e.eventLog.Publish(&events.GameEvent{Type: events.EventTypeSchedulerStopped})
}

// RestartScheduler stops and starts the countdown driver.
func (e *Engine) RestartScheduler() error {
	e.StopScheduler()
	return e.StartScheduler()
}

// SchedulerRunning reports whether countdowns are being advanced.
func (e *Engine) SchedulerRunning() bool {
	return e.scheduler.IsRunning()
}

// Join brings a player online with their last saved position and health,
// or fresh at Spawn. A player saved dead comes back dead and must respawn.
func (e *Engine) Join(ctx context.Context, id uuid.UUID, name string) player.Player {
	if e.store != nil {
		saved, ok, err := e.store.LoadPlayer(ctx, id)
		switch {
		case err != nil:
			e.logger.Warn("Failed to load player snapshot", "player", id, "error", err)
		case ok:
			saved.ID = id
			return e.roster.Restore(saved, name)
		}
	}
	return e.roster.Join(id, name, Spawn)
}

// Leave takes a player offline. A running countdown keeps ticking; if it
// expires while the player is away nothing happens to them.
func (e *Engine) Leave(id uuid.UUID) {
	e.roster.Leave(id)
}

// Move relocates an online player.
func (e *Engine) Move(id uuid.UUID, to player.Position) error {
	_, err := e.roster.Move(id, to)
	return err
}

// Respawn brings a dead player back at Spawn.
func (e *Engine) Respawn(id uuid.UUID) error {
	return e.roster.Respawn(id, Spawn)
}

// Suicide starts a countdown for an online, living player at their current
// position. Calling it again restarts the countdown from the full timeout.
func (e *Engine) Suicide(id uuid.UUID) (countdown.Record, error) {
	p, ok := e.roster.Get(id)
	if !ok {
		return countdown.Record{}, roster.ErrUnknownPlayer
	}
	if p.IsDead() {
		return countdown.Record{}, roster.ErrPlayerDead
	}
	if err := e.registry.Enroll(id, p.Position, e.timeout); err != nil {
		return countdown.Record{}, err
	}
	rec, _ := e.registry.Get(id)
	return rec, nil
}

// CancelSuicide calls off a player's countdown. It reports whether one was
// running.
func (e *Engine) CancelSuicide(id uuid.UUID) bool {
	return e.registry.Cancel(id)
}

// Status returns the running countdown of a player.
func (e *Engine) Status(id uuid.UUID) (countdown.Record, bool) {
	return e.registry.Get(id)
}

// Countdowns returns every running countdown.
func (e *Engine) Countdowns() []countdown.Record {
	return e.registry.Snapshot()
}

// Snapshot saves every online player to the store.
func (e *Engine) Snapshot(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	online := e.roster.Online()
	if len(online) == 0 {
		return nil
	}
	return e.store.SavePlayers(ctx, online)
}

// RunSnapshots calls Snapshot every interval until ctx is done, then once
// more so the final positions are kept.
func (e *Engine) RunSnapshots(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := e.Snapshot(context.WithoutCancel(ctx)); err != nil {
				e.logger.Error("Final player snapshot failed", "error", err)
			}
			return
		case <-ticker.C:
			if err := e.Snapshot(ctx); err != nil {
				e.logger.Error("Player snapshot failed", "error", err)
			}
		}
	}
}

// Roster exposes the online players.
func (e *Engine) Roster() *roster.Roster {
	return e.roster
}

// Ticker exposes the host clock.
func (e *Engine) Ticker() *Ticker {
	return e.ticker
}

// GetEventLog exposes the event log for queries.
func (e *Engine) GetEventLog() *events.EventLog {
	return e.eventLog
}

func (e *Engine) onPlayerMove(event *events.GameEvent) {
	payload, ok := event.Payload.(events.MovePayload)
	if !ok {
		return
	}
	id, err := uuid.Parse(event.ActorID)
	if err != nil {
		e.logger.Warn("PLAYER_MOVE with invalid actor", "actor", event.ActorID)
		return
	}
	e.watcher.OnSubjectMoved(id, payload.To)
}

func (e *Engine) setActive() {
	if e.metrics != nil {
		e.metrics.SetActive(e.registry.Len())
	}
}

// observer turns countdown transitions into events and metrics.
type observer struct {
	engine *Engine
}

func (o *observer) CountdownStarted(id uuid.UUID, seconds int) {
	o.publish(events.EventTypeCountdownStarted, id, events.CountdownPayload{Seconds: seconds})
	if m := o.engine.metrics; m != nil {
		m.IncrementStarted()
	}
	o.engine.setActive()
}

func (o *observer) CountdownProgress(id uuid.UUID, remaining int) {
	o.publish(events.EventTypeCountdownProgress, id, events.CountdownPayload{Seconds: remaining})
}

func (o *observer) CountdownCancelled(id uuid.UUID, reason countdown.CancelReason) {
	o.publish(events.EventTypeCountdownCancelled, id, events.CountdownPayload{Reason: string(reason)})
	if m := o.engine.metrics; m != nil {
		m.IncrementCancelled(string(reason))
	}
	o.engine.setActive()
}

func (o *observer) CountdownExpired(id uuid.UUID) {
	o.publish(events.EventTypeCountdownExpired, id, events.CountdownPayload{})
	if m := o.engine.metrics; m != nil {
		m.IncrementExpired()
	}
	o.engine.setActive()
}

func (o *observer) publish(t events.EventType, id uuid.UUID, payload events.CountdownPayload) {
	o.engine.eventLog.Publish(&events.GameEvent{
		Type:    t,
		ActorID: id.String(),
		Payload: payload,
	})
}
