package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only when COUNTDOWN_TEST_DATABASE_URL points at a scratch database.
func TestPostgresEventRepository(t *testing.T) {
	url := os.Getenv("COUNTDOWN_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("COUNTDOWN_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := InitPostgres(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewPostgresEventRepository(db)

	actor := uuid.NewString()
	e := GameEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		EventType: eventCountdownCancelled,
		ActorID:   actor,
		Payload:   map[string]any{"reason": "explicit"},
	}
	require.NoError(t, repo.Append(ctx, e))
	assert.ErrorIs(t, repo.Append(ctx, e), ErrDuplicateEvent)

	got, err := repo.GetByActorID(ctx, actor)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "explicit", got[0].Payload["reason"])
	assert.True(t, e.Timestamp.Equal(got[0].Timestamp))
}
