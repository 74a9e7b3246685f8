package countdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pearlworks/countdown/internal/countdown"
	"github.com/pearlworks/countdown/internal/domain/player"
)

func newWatcher(t *testing.T) (*fakeDirectory, *countdown.Registry, *countdown.MovementWatcher) {
	t.Helper()
	directory := newFakeDirectory()
	registry, err := countdown.NewRegistry(directory)
	require.NoError(t, err)
	return directory, registry, countdown.NewMovementWatcher(registry)
}

func TestSmallMovesKeepCountdown(t *testing.T) {
	directory, registry, watcher := newWatcher(t)
	subject := directory.add(spawn)
	require.NoError(t, registry.Enroll(subject.id, spawn, 30))

	steps := []player.Position{
		{World: "world", X: spawn.X + 1, Y: spawn.Y, Z: spawn.Z},
		{World: "world", X: spawn.X, Y: spawn.Y, Z: spawn.Z - 1.9},
		{World: "world", X: spawn.X + 2, Y: spawn.Y, Z: spawn.Z},
		spawn,
	}
	for _, to := range steps {
		assert.False(t, watcher.OnSubjectMoved(subject.id, to), "moved to %+v", to)
	}
	assert.True(t, registry.IsActive(subject.id))
	assert.Zero(t, subject.cancellations())
}

func TestWalkingAwayCancelsOnce(t *testing.T) {
	directory, registry, watcher := newWatcher(t)
	subject := directory.add(spawn)
	require.NoError(t, registry.Enroll(subject.id, spawn, 30))

	away := player.Position{World: "world", X: spawn.X + 2.01, Y: spawn.Y, Z: spawn.Z}
	assert.True(t, watcher.OnSubjectMoved(subject.id, away))
	assert.False(t, registry.IsActive(subject.id))

	further := player.Position{World: "world", X: spawn.X + 5, Y: spawn.Y, Z: spawn.Z}
	assert.False(t, watcher.OnSubjectMoved(subject.id, further))
	assert.Equal(t, 1, subject.cancellations())
}

func TestChangingWorldCancels(t *testing.T) {
	directory, registry, watcher := newWatcher(t)
	subject := directory.add(spawn)
	require.NoError(t, registry.Enroll(subject.id, spawn, 30))

	nether := spawn
	nether.World = "world_nether"
	assert.True(t, watcher.OnSubjectMoved(subject.id, nether))
}

func TestMoveWithoutCountdownIsIgnored(t *testing.T) {
	directory, registry, watcher := newWatcher(t)
	subject := directory.add(spawn)

	assert.False(t, watcher.OnSubjectMoved(subject.id, player.Position{World: "world", X: 1000}))
	assert.Zero(t, registry.Len())
	assert.Zero(t, subject.cancellations())
}

func TestMoveIsMeasuredFromNewAnchorAfterRestart(t *testing.T) {
	directory, registry, watcher := newWatcher(t)
	subject := directory.add(spawn)
	require.NoError(t, registry.Enroll(subject.id, spawn, 30))

	elsewhere := player.Position{World: "world", X: spawn.X + 50, Y: spawn.Y, Z: spawn.Z}
	require.NoError(t, registry.Enroll(subject.id, elsewhere, 30))

	near := elsewhere
	near.X++
	assert.False(t, watcher.OnSubjectMoved(subject.id, near))
	assert.True(t, watcher.OnSubjectMoved(subject.id, spawn))
}
