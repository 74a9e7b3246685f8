package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// InitPostgres opens a Postgres connection pool and creates the event ledger.
func InitPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS event_log (
			id TEXT PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL,
			event_type TEXT NOT NULL,
			actor_id TEXT NOT NULL,
			target_id TEXT,
			payload JSONB NOT NULL,
			cancelled BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE INDEX IF NOT EXISTS idx_event_log_actor_id ON event_log(actor_id);
		CREATE INDEX IF NOT EXISTS idx_event_log_event_type ON event_log(event_type);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}
	return db, nil
}

// PostgresEventRepository implements EventRepository using PostgreSQL.
type PostgresEventRepository struct {
	db *sql.DB
}

// NewPostgresEventRepository creates a new PostgreSQL event repository.
func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

// Append inserts a new event into the immutable ledger.
func (r *PostgresEventRepository) Append(ctx context.Context, event GameEvent) error {
	payloadJSON, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO event_log (id, timestamp, event_type, actor_id, target_id, payload, cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		event.EventType,
		event.ActorID,
		event.TargetID,
		payloadJSON,
		event.Cancelled,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateEvent, event.ID)
		}
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}

// GetByActorID retrieves all events performed by an actor.
func (r *PostgresEventRepository) GetByActorID(ctx context.Context, actorID string) ([]GameEvent, error) {
	query := `
		SELECT id, timestamp, event_type, actor_id, target_id, payload, cancelled
		FROM event_log
		WHERE actor_id = $1
		ORDER BY timestamp ASC
	`

	return r.queryEvents(ctx, query, actorID)
}

// GetByEventType retrieves all events of a specific type.
func (r *PostgresEventRepository) GetByEventType(ctx context.Context, eventType string) ([]GameEvent, error) {
	query := `
		SELECT id, timestamp, event_type, actor_id, target_id, payload, cancelled
		FROM event_log
		WHERE event_type = $1
		ORDER BY timestamp ASC
	`

	return r.queryEvents(ctx, query, eventType)
}

// queryEvents is a helper to execute queries and scan results.
func (r *PostgresEventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]GameEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []GameEvent
	for rows.Next() {
		var e GameEvent
		var payloadJSON []byte
		var targetID sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&e.EventType,
			&e.ActorID,
			&targetID,
			&payloadJSON,
			&e.Cancelled,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		if targetID.Valid {
			e.TargetID = targetID.String
		}

		if err := json.Unmarshal(payloadJSON, &e.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}

		events = append(events, e)
	}

	return events, rows.Err()
}

// Ensure PostgresEventRepository implements EventRepository
var _ EventRepository = (*PostgresEventRepository)(nil)
