package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/domain/player"
	"github.com/pearlworks/countdown/internal/events"
)

// EventPersister translates domain events to storage events. It implements
// events.EventPersister on top of any EventRepository.
type EventPersister struct {
	repo    EventRepository
	timeout time.Duration
}

// NewEventPersister bounds every write by timeout.
func NewEventPersister(repo EventRepository, timeout time.Duration) *EventPersister {
	return &EventPersister{repo: repo, timeout: timeout}
}

func (a *EventPersister) Append(event events.GameEvent) error {
	payload, err := payloadMap(event.Payload)
	if err != nil {
		return fmt.Errorf("event %s: %w", event.ID, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	return a.repo.Append(ctx, GameEvent{
		ID:        event.ID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		ActorID:   event.ActorID,
		TargetID:  event.TargetID,
		Payload:   payload,
		Cancelled: event.Cancelled,
	})
}

// payloadMap flattens any JSON-serializable payload into an object.
// Non-object payloads are stored under "value".
func payloadMap(payload any) (map[string]any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return map[string]any{"value": v}, nil
	}
	return m, nil
}

// PlayerStore keeps player positions across sessions.
type PlayerStore struct {
	repo SnapshotRepository
}

func NewPlayerStore(repo SnapshotRepository) *PlayerStore {
	return &PlayerStore{repo: repo}
}

// LoadPlayer returns the last saved state of a player.
func (s *PlayerStore) LoadPlayer(ctx context.Context, id uuid.UUID) (player.Player, bool, error) {
	snap, err := s.repo.GetByPlayerID(ctx, id.String())
	if errors.Is(err, ErrNotFound) {
		return player.Player{}, false, nil
	}
	if err != nil {
		return player.Player{}, false, err
	}
	return player.Player{
		ID:       id,
		Name:     snap.Name,
		Position: player.Position{World: snap.World, X: snap.X, Y: snap.Y, Z: snap.Z},
		Health:   snap.Health,
	}, true, nil
}

// SavePlayers snapshots players in one transaction.
func (s *PlayerStore) SavePlayers(ctx context.Context, players []player.Player) error {
	snaps := make([]PlayerSnapshot, 0, len(players))
	for _, p := range players {
		snaps = append(snaps, PlayerSnapshot{
			PlayerID: p.ID.String(),
			Name:     p.Name,
			World:    p.Position.World,
			X:        p.Position.X,
			Y:        p.Position.Y,
			Z:        p.Position.Z,
			Health:   p.Health,
		})
	}
	return s.repo.UpsertMany(ctx, snaps)
}
