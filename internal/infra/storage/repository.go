// Package storage provides the persistence layer for the countdown server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrDuplicateEvent = errors.New("storage: duplicate event id")
)

// GameEvent mirrors the domain event structure for persistence.
// The domain package should NOT import this; use interfaces instead.
type GameEvent struct {
	ID        string         `json:"id" db:"id"`
	Timestamp time.Time      `json:"timestamp" db:"timestamp"`
	EventType string         `json:"event_type" db:"event_type"`
	ActorID   string         `json:"actor_id" db:"actor_id"`
	TargetID  string         `json:"target_id" db:"target_id"`
	Payload   map[string]any `json:"payload" db:"payload"`
	Cancelled bool           `json:"cancelled" db:"cancelled"`
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	// Append adds a new event to the immutable ledger.
	Append(ctx context.Context, event GameEvent) error

	// GetByActorID retrieves all events performed by an actor, oldest first.
	GetByActorID(ctx context.Context, actorID string) ([]GameEvent, error)

	// GetByEventType retrieves all events of a specific type, oldest first.
	GetByEventType(ctx context.Context, eventType string) ([]GameEvent, error)
}

// PlayerSnapshot is the last known state of a player.
type PlayerSnapshot struct {
	PlayerID    string    `json:"player_id" db:"player_id"`
	Name        string    `json:"name" db:"name"`
	World       string    `json:"world" db:"world"`
	X           float64   `json:"x" db:"x"`
	Y           float64   `json:"y" db:"y"`
	Z           float64   `json:"z" db:"z"`
	Health      float64   `json:"health" db:"health"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

// SnapshotRepository defines the interface for player snapshots.
type SnapshotRepository interface {
	// UpsertMany inserts or updates snapshots in one transaction.
	UpsertMany(ctx context.Context, snapshots []PlayerSnapshot) error

	// GetByPlayerID returns ErrNotFound for unknown players.
	GetByPlayerID(ctx context.Context, playerID string) (*PlayerSnapshot, error)

	// List returns every snapshot.
	List(ctx context.Context) ([]PlayerSnapshot, error)
}
