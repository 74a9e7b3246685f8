package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pearlworks/countdown/internal/domain/player"
	"github.com/pearlworks/countdown/internal/events"
)

type SQLiteSuite struct {
	suite.Suite
	ctx       context.Context
	events    *SQLiteEventRepository
	snapshots *SQLiteSnapshotRepository
}

func TestSQLiteSuite(t *testing.T) {
	suite.Run(t, new(SQLiteSuite))
}

func (s *SQLiteSuite) SetupTest() {
	db, err := InitSQLite(InMemory)
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })

	s.ctx = context.Background()
	s.events = NewSQLiteEventRepository(db)
	s.snapshots = NewSQLiteSnapshotRepository(db)
}

func (s *SQLiteSuite) TestAppendAndQueryEvents() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.events.Append(s.ctx, GameEvent{
		ID: "e2", Timestamp: base.Add(time.Second), EventType: eventCountdownExpired, ActorID: "p1",
	}))
	s.Require().NoError(s.events.Append(s.ctx, GameEvent{
		ID: "e1", Timestamp: base, EventType: eventCountdownStarted, ActorID: "p1",
		Payload: map[string]any{"seconds": 180},
	}))
	s.Require().NoError(s.events.Append(s.ctx, GameEvent{
		ID: "e3", Timestamp: base, EventType: eventCountdownStarted, ActorID: "p2", Cancelled: true,
	}))

	byActor, err := s.events.GetByActorID(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(byActor, 2)
	s.Equal("e1", byActor[0].ID, "oldest first")
	s.True(base.Equal(byActor[0].Timestamp))
	s.Equal(180.0, byActor[0].Payload["seconds"])

	byType, err := s.events.GetByEventType(s.ctx, eventCountdownStarted)
	s.Require().NoError(err)
	s.Len(byType, 2)
	s.True(byType[1].Cancelled)

	none, err := s.events.GetByActorID(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *SQLiteSuite) TestDuplicateEventIsRejected() {
	e := GameEvent{ID: "dup", Timestamp: time.Now(), EventType: eventPlayerDeath, ActorID: "p1"}
	s.Require().NoError(s.events.Append(s.ctx, e))
	s.ErrorIs(s.events.Append(s.ctx, e), ErrDuplicateEvent)
}

func (s *SQLiteSuite) TestSnapshotsUpsert() {
	_, err := s.snapshots.GetByPlayerID(s.ctx, "p1")
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(s.snapshots.UpsertMany(s.ctx, []PlayerSnapshot{
		{PlayerID: "p1", Name: "Gordon", World: "world", X: 1, Y: 64, Z: 2, Health: 20},
		{PlayerID: "p2", Name: "Alyx", World: "nether", Health: 12},
	}))
	s.Require().NoError(s.snapshots.UpsertMany(s.ctx, []PlayerSnapshot{
		{PlayerID: "p1", Name: "Gordon", World: "world", X: 9, Y: 64, Z: 2, Health: 0},
	}))

	got, err := s.snapshots.GetByPlayerID(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(9.0, got.X)
	s.Equal(0.0, got.Health)
	s.False(got.LastUpdated.IsZero())

	all, err := s.snapshots.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Alyx", all[0].Name)
}

func (s *SQLiteSuite) TestEventPersisterWritesDomainEvents() {
	persister := NewEventPersister(s.events, time.Second)
	el := events.NewEventLog(persister)

	id := uuid.New().String()
	el.Publish(&events.GameEvent{
		Type:    events.EventTypeCountdownCancelled,
		ActorID: id,
		Payload: events.CountdownPayload{Reason: "moved"},
	})
	el.Publish(&events.GameEvent{Type: events.EventTypePlayerDeath, ActorID: id})
	el.Publish(&events.GameEvent{Type: events.EventTypePlayerJoin, ActorID: id, Payload: "plain"})

	stored, err := s.events.GetByActorID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(stored, 3)
	s.Equal("moved", stored[0].Payload["reason"])
	s.Empty(stored[1].Payload)
	s.Equal("plain", stored[2].Payload["value"])
}

func (s *SQLiteSuite) TestPlayerStoreRoundTrip() {
	store := NewPlayerStore(s.snapshots)
	id := uuid.New()

	_, ok, err := store.LoadPlayer(s.ctx, id)
	s.Require().NoError(err)
	s.False(ok)

	p := player.NewPlayer(id, "Gordon", player.Position{World: "world", X: 3, Y: 70, Z: -1})
	s.Require().NoError(store.SavePlayers(s.ctx, []player.Player{*p}))

	loaded, ok, err := store.LoadPlayer(s.ctx, id)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(p.Position, loaded.Position)
	s.Equal("Gordon", loaded.Name)
}

func (s *SQLiteSuite) TestReconstructorSummarizesCountdowns() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	add := func(id, typ string, offset int, payload map[string]any) {
		s.Require().NoError(s.events.Append(s.ctx, GameEvent{
			ID: id, Timestamp: base.Add(time.Duration(offset) * time.Second),
			EventType: typ, ActorID: "p1", Payload: payload,
		}))
	}
	add("1", eventCountdownStarted, 0, map[string]any{"seconds": 180})
	add("2", eventCountdownCancelled, 5, map[string]any{"reason": "moved"})
	add("3", eventCountdownStarted, 10, map[string]any{"seconds": 180})
	add("4", eventCountdownExpired, 190, nil)
	add("5", eventPlayerDeath, 190, nil)
	add("6", "PLAYER_MOVE", 191, nil)

	h, err := NewReconstructor(s.events).RebuildHistory(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(2, h.Started)
	s.Equal(map[string]int{"moved": 1}, h.Cancelled)
	s.Equal(1, h.Expired)
	s.Equal(1, h.Deaths)
	s.Equal("expired", h.LastOutcome)
	s.Require().Len(h.Recap, 5)
	s.Equal("Started a 180 second countdown.", h.Recap[0].Summary)
	s.Equal("Walked away and called it off.", h.Recap[1].Summary)
}

func TestPayloadMap(t *testing.T) {
	m, err := payloadMap(nil)
	require.NoError(t, err)
	assert.Empty(t, m)

	m, err = payloadMap(events.MovePayload{To: player.Position{World: "world", X: 1}})
	require.NoError(t, err)
	assert.Equal(t, "world", m["to"].(map[string]any)["world"])

	_, err = payloadMap(make(chan int))
	assert.Error(t, err)
}
