package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event GameEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO events (id, timestamp_ns, event_type, actor_id, target_id, payload, cancelled)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.Timestamp.UnixNano(), event.EventType, event.ActorID,
		event.TargetID, string(payloadBytes), event.Cancelled,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateEvent, event.ID)
		}
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...any) ([]GameEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []GameEvent
	for rows.Next() {
		var e GameEvent
		var payloadStr string
		var ts int64
		err := rows.Scan(
			&e.ID, &ts, &e.EventType, &e.ActorID,
			&e.TargetID, &payloadStr, &e.Cancelled,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const selectEvents = `SELECT id, timestamp_ns, event_type, actor_id, target_id, payload, cancelled FROM events`

func (r *SQLiteEventRepository) GetByActorID(ctx context.Context, actorID string) ([]GameEvent, error) {
	return r.getMany(ctx, selectEvents+` WHERE actor_id = ? ORDER BY timestamp_ns ASC, rowid ASC`, actorID)
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, eventType string) ([]GameEvent, error) {
	return r.getMany(ctx, selectEvents+` WHERE event_type = ? ORDER BY timestamp_ns ASC, rowid ASC`, eventType)
}

var _ EventRepository = (*SQLiteEventRepository)(nil)

// ---------------------------------------------------------
// SQLiteSnapshotRepository
// ---------------------------------------------------------

type SQLiteSnapshotRepository struct {
	db *sql.DB
}

func NewSQLiteSnapshotRepository(db *sql.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

func (r *SQLiteSnapshotRepository) UpsertMany(ctx context.Context, snapshots []PlayerSnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO players (player_id, name, world, x, y, z, health, last_updated_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			name=excluded.name,
			world=excluded.world,
			x=excluded.x,
			y=excluded.y,
			z=excluded.z,
			health=excluded.health,
			last_updated_ns=excluded.last_updated_ns
	`
	now := time.Now().UnixNano()
	for _, s := range snapshots {
		_, err := tx.ExecContext(ctx, query,
			s.PlayerID, s.Name, s.World, s.X, s.Y, s.Z, s.Health, now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", s.PlayerID, err)
		}
	}
	return tx.Commit()
}

const selectPlayers = `SELECT player_id, name, world, x, y, z, health, last_updated_ns FROM players`

func scanSnapshot(row interface{ Scan(...any) error }) (PlayerSnapshot, error) {
	var p PlayerSnapshot
	var updated int64
	err := row.Scan(&p.PlayerID, &p.Name, &p.World, &p.X, &p.Y, &p.Z, &p.Health, &updated)
	if err != nil {
		return PlayerSnapshot{}, err
	}
	p.LastUpdated = time.Unix(0, updated).UTC()
	return p, nil
}

func (r *SQLiteSnapshotRepository) GetByPlayerID(ctx context.Context, playerID string) (*PlayerSnapshot, error) {
	p, err := scanSnapshot(r.db.QueryRowContext(ctx, selectPlayers+` WHERE player_id = ?`, playerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}
	return &p, nil
}

func (r *SQLiteSnapshotRepository) List(ctx context.Context) ([]PlayerSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, selectPlayers+` ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var snaps []PlayerSnapshot
	for rows.Next() {
		p, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		snaps = append(snaps, p)
	}
	return snaps, rows.Err()
}

var _ SnapshotRepository = (*SQLiteSnapshotRepository)(nil)
