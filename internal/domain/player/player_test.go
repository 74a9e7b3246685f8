package player

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	origin := Position{World: "world"}

	assert.Equal(t, 0.0, origin.Distance(origin))
	assert.Equal(t, 2.0, origin.Distance(Position{World: "world", X: 2}))
	assert.InDelta(t, 3.0, origin.Distance(Position{World: "world", X: 1, Y: 2, Z: 2}), 1e-9)
	assert.True(t, math.IsInf(origin.Distance(Position{World: "nether"}), 1))
}

func TestKillAndRespawn(t *testing.T) {
	p := NewPlayer(uuid.New(), "Gordon", Position{World: "world"})
	assert.False(t, p.IsDead())

	p.Kill()
	assert.True(t, p.IsDead())

	spawn := Position{World: "world", Y: 64}
	p.Respawn(spawn)
	assert.False(t, p.IsDead())
	assert.Equal(t, spawn, p.Position)
	assert.Equal(t, MaxHealth, p.Health)
}
