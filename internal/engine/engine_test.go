package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pearlworks/countdown/internal/domain/player"
	"github.com/pearlworks/countdown/internal/events"
	"github.com/pearlworks/countdown/internal/platform/logger"
	"github.com/pearlworks/countdown/internal/platform/metrics"
	"github.com/pearlworks/countdown/internal/roster"
)

type inbox struct {
	mu       sync.Mutex
	messages map[uuid.UUID][]string
}

func (i *inbox) SendTo(id uuid.UUID, text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.messages == nil {
		i.messages = make(map[uuid.UUID][]string)
	}
	i.messages[id] = append(i.messages[id], text)
}

func (i *inbox) of(id uuid.UUID) []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.messages[id]...)
}

type memoryStore struct {
	players map[uuid.UUID]player.Player
	err     error
}

func (m *memoryStore) LoadPlayer(_ context.Context, id uuid.UUID) (player.Player, bool, error) {
	if m.err != nil {
		return player.Player{}, false, m.err
	}
	p, ok := m.players[id]
	return p, ok, nil
}

func (m *memoryStore) SavePlayers(_ context.Context, players []player.Player) error {
	if m.err != nil {
		return m.err
	}
	for _, p := range players {
		m.players[p.ID] = p
	}
	return nil
}

type EngineSuite struct {
	suite.Suite
	engine  *Engine
	log     *events.EventLog
	inbox   *inbox
	metrics *metrics.Metrics
	player  uuid.UUID
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.log = events.NewEventLog(nil)
	s.inbox = &inbox{}
	s.metrics = metrics.New()

	e, err := NewEngine(s.log, logger.Discard(), WithSuicideTimeout(12), WithMetrics(s.metrics))
	s.Require().NoError(err)
	e.Roster().SetMessenger(s.inbox)
	s.engine = e

	s.player = uuid.New()
	e.Join(context.Background(), s.player, "Gordon")
	s.Require().NoError(e.StartScheduler())
}

// seconds steps the host clock by n countdown seconds.
func (s *EngineSuite) seconds(n int) {
	for range n * TicksPerSecond {
		s.engine.Ticker().Step()
	}
}

func (s *EngineSuite) TestCountdownRunsToDeath() {
	rec, err := s.engine.Suicide(s.player)
	s.Require().NoError(err)
	s.Equal(12, rec.Remaining)
	s.Equal(Spawn, rec.Anchor)

	s.seconds(11)
	p, _ := s.engine.Roster().Get(s.player)
	s.False(p.IsDead())
	remaining, ok := s.engine.Status(s.player)
	s.Require().True(ok)
	s.Equal(1, remaining.Remaining)

	s.seconds(1)
	p, _ = s.engine.Roster().Get(s.player)
	s.True(p.IsDead())
	_, ok = s.engine.Status(s.player)
	s.False(ok)

	s.Equal([]string{
		"You will die in 12 seconds. Don't move!",
		"You will die in 10 seconds. Don't move!",
		"You will die in 5 seconds. Don't move!",
		"You will die in 4 seconds. Don't move!",
		"You will die in 3 seconds. Don't move!",
		"You will die in 2 seconds. Don't move!",
		"You will die in 1 seconds. Don't move!",
	}, s.inbox.of(s.player))

	s.Len(s.log.GetByType(events.EventTypeCountdownExpired), 1)
	s.Len(s.log.GetByType(events.EventTypePlayerDeath), 1)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CountdownsExpired))
	s.Equal(0.0, testutil.ToFloat64(s.metrics.ActiveCountdowns))

	s.seconds(5)
	s.Len(s.log.GetByType(events.EventTypePlayerDeath), 1, "terminated exactly once")
}

func (s *EngineSuite) TestWalkingAwayCancels() {
	_, err := s.engine.Suicide(s.player)
	s.Require().NoError(err)

	s.Require().NoError(s.engine.Move(s.player, player.Position{World: "world", X: 1, Y: 64}))
	_, ok := s.engine.Status(s.player)
	s.True(ok, "a one block step is tolerated")

	s.Require().NoError(s.engine.Move(s.player, player.Position{World: "world", X: 3, Y: 64}))
	_, ok = s.engine.Status(s.player)
	s.False(ok)

	msgs := s.inbox.of(s.player)
	s.Equal("Suicide cancelled.", msgs[len(msgs)-1])

	cancelled := s.log.GetByType(events.EventTypeCountdownCancelled)
	s.Require().Len(cancelled, 1)
	s.Equal("moved", cancelled[0].Payload.(events.CountdownPayload).Reason)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CountdownsCancelled.WithLabelValues(metrics.ReasonMoved)))

	s.seconds(20)
	p, _ := s.engine.Roster().Get(s.player)
	s.False(p.IsDead())
}

func (s *EngineSuite) TestVetoedMoveDoesNotCancel() {
	s.log.Subscribe(events.EventTypePlayerMove, events.PriorityHigh, false, func(e *events.GameEvent) {
		e.Cancelled = true
	})
	_, err := s.engine.Suicide(s.player)
	s.Require().NoError(err)

	s.Require().NoError(s.engine.Move(s.player, player.Position{World: "world", X: 30, Y: 64}))
	_, ok := s.engine.Status(s.player)
	s.True(ok)
}

func (s *EngineSuite) TestCancelSuicide() {
	s.False(s.engine.CancelSuicide(s.player))

	_, err := s.engine.Suicide(s.player)
	s.Require().NoError(err)
	s.True(s.engine.CancelSuicide(s.player))
	s.Empty(s.engine.Countdowns())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CountdownsCancelled.WithLabelValues(metrics.ReasonExplicit)))
}

func (s *EngineSuite) TestSuicideRejectsUnknownAndDead() {
	_, err := s.engine.Suicide(uuid.New())
	s.ErrorIs(err, roster.ErrUnknownPlayer)

	_, err = s.engine.Suicide(s.player)
	s.Require().NoError(err)
	s.seconds(12)

	_, err = s.engine.Suicide(s.player)
	s.ErrorIs(err, roster.ErrPlayerDead)
}

func (s *EngineSuite) TestRestartDropsCountdowns() {
	_, err := s.engine.Suicide(s.player)
	s.Require().NoError(err)
	s.seconds(3)

	s.Require().NoError(s.engine.RestartScheduler())
	s.Empty(s.engine.Countdowns())
	s.Equal(1, s.engine.Ticker().Jobs())

	s.seconds(20)
	p, _ := s.engine.Roster().Get(s.player)
	s.False(p.IsDead())
	s.Len(s.log.GetByType(events.EventTypeSchedulerStopped), 1)
	s.Len(s.log.GetByType(events.EventTypeSchedulerStarted), 2)
}

func (s *EngineSuite) TestStoppedSchedulerFreezesCountdowns() {
	_, err := s.engine.Suicide(s.player)
	s.Require().NoError(err)

	s.engine.StopScheduler()
	s.False(s.engine.SchedulerRunning())
	s.Zero(s.engine.Ticker().Jobs())
	s.seconds(30)

	rec, ok := s.engine.Status(s.player)
	s.Require().True(ok)
	s.Equal(12, rec.Remaining)
	s.Equal(0.0, testutil.ToFloat64(s.metrics.SchedulerRunning))
}

func (s *EngineSuite) TestConcurrentStartsPublishOnce() {
	s.engine.StopScheduler()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.engine.StartScheduler())
		}()
	}
	wg.Wait()

	s.True(s.engine.SchedulerRunning())
	s.Equal(1, s.engine.Ticker().Jobs())
	s.Len(s.log.GetByType(events.EventTypeSchedulerStarted), 2, "one from setup, one from the race")

	var stops sync.WaitGroup
	for range 8 {
		stops.Add(1)
		go func() {
			defer stops.Done()
			s.engine.StopScheduler()
		}()
	}
	stops.Wait()
	s.Len(s.log.GetByType(events.EventTypeSchedulerStopped), 2)
}

func (s *EngineSuite) TestShutdownReleasesClock() {
	s.engine.Shutdown()

	s.False(s.engine.SchedulerRunning())
	s.Zero(s.engine.Ticker().Jobs())

	err := s.engine.StartScheduler()
	s.ErrorIs(err, ErrTickerStopped)
	s.False(s.engine.SchedulerRunning())
}

func (s *EngineSuite) TestPlayerLeavingSkipsTermination() {
	_, err := s.engine.Suicide(s.player)
	s.Require().NoError(err)

	s.engine.Leave(s.player)
	s.seconds(12)

	s.Empty(s.engine.Countdowns())
	s.Len(s.log.GetByType(events.EventTypeCountdownExpired), 1)
	s.Empty(s.log.GetByType(events.EventTypePlayerDeath))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Notifications), "only the start message was delivered")
}

func TestJoinRestoresSavedPosition(t *testing.T) {
	id := uuid.New()
	saved := player.Position{World: "nether", X: 10, Y: 70, Z: -4}
	store := &memoryStore{players: map[uuid.UUID]player.Player{
		id: {ID: id, Name: "Alyx", Position: saved, Health: player.MaxHealth},
	}}
	e, err := NewEngine(events.NewEventLog(nil), logger.Discard(), WithPlayerStore(store))
	require.NoError(t, err)

	p := e.Join(context.Background(), id, "Alyx")
	assert.Equal(t, saved, p.Position)

	other := e.Join(context.Background(), uuid.New(), "Barney")
	assert.Equal(t, Spawn, other.Position)

	require.NoError(t, e.Move(id, player.Position{World: "nether", X: 11, Y: 70, Z: -4}))
	require.NoError(t, e.Snapshot(context.Background()))
	assert.Equal(t, 11.0, store.players[id].Position.X)
	assert.Len(t, store.players, 2)
}

func TestJoinRestoresDeadPlayer(t *testing.T) {
	id := uuid.New()
	store := &memoryStore{players: map[uuid.UUID]player.Player{
		id: {ID: id, Name: "Alyx", Position: Spawn, Health: 0},
	}}
	e, err := NewEngine(events.NewEventLog(nil), logger.Discard(), WithPlayerStore(store))
	require.NoError(t, err)

	p := e.Join(context.Background(), id, "Alyx")
	assert.True(t, p.IsDead(), "death survives a reconnect")

	_, err = e.Suicide(id)
	assert.ErrorIs(t, err, roster.ErrPlayerDead)

	require.NoError(t, e.Respawn(id))
	require.NoError(t, e.Snapshot(context.Background()))
	assert.Equal(t, player.MaxHealth, store.players[id].Health)
}

func TestJoinFallsBackToSpawnOnStoreError(t *testing.T) {
	store := &memoryStore{err: errors.New("db down")}
	e, err := NewEngine(events.NewEventLog(nil), logger.Discard(), WithPlayerStore(store))
	require.NoError(t, err)

	p := e.Join(context.Background(), uuid.New(), "Alyx")
	assert.Equal(t, Spawn, p.Position)
	assert.Error(t, e.Snapshot(context.Background()))
}

func TestNewEngineValidates(t *testing.T) {
	_, err := NewEngine(nil, logger.Discard())
	assert.Error(t, err)

	_, err = NewEngine(events.NewEventLog(nil), logger.Discard(), WithSuicideTimeout(0))
	assert.Error(t, err)
}
