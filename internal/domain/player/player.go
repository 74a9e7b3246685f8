// Package player defines the core domain entities for players on the server.
// This package is PURE and must NOT import any infrastructure packages (network, events, platform).
package player

import (
	"math"

	"github.com/google/uuid"
)

// MaxHealth is the health a player joins with.
const MaxHealth = 20.0

// Position is a point in a named world.
type Position struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// Distance returns the euclidean distance between two positions.
// Positions in different worlds are infinitely far apart.
func (p Position) Distance(o Position) float64 {
	if p.World != o.World {
		return math.Inf(1)
	}
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Player represents the state of a connected participant.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position Position  `json:"position"`
	Health   float64   `json:"health"`
	Online   bool      `json:"online"`
}

// NewPlayer creates a fresh player at full health.
func NewPlayer(id uuid.UUID, name string, at Position) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Position: at,
		Health:   MaxHealth,
		Online:   true,
	}
}

// IsDead reports whether the player has no health left.
func (p *Player) IsDead() bool {
	return p.Health <= 0
}

// Kill drops the player's health to zero.
func (p *Player) Kill() {
	p.Health = 0
}

// Respawn restores full health at the given position.
func (p *Player) Respawn(at Position) {
	p.Health = MaxHealth
	p.Position = at
}
