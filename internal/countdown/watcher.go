package countdown

import (
	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/domain/player"
)

// MoveThreshold is how far a player may drift from the anchor before the
// countdown is called off.
const MoveThreshold = 2.0

// MovementWatcher cancels countdowns of players who walk away.
type MovementWatcher struct {
	registry *Registry
}

func NewMovementWatcher(registry *Registry) *MovementWatcher {
	return &MovementWatcher{registry: registry}
}

// OnSubjectMoved handles a position change of id. It reports whether a
// countdown was cancelled; later moves of the same player are no-ops until
// a new countdown starts.
func (w *MovementWatcher) OnSubjectMoved(id uuid.UUID, to player.Position) bool {
	return w.registry.cancelWhen(id, CancelMoved, func(rec Record) bool {
		return rec.Anchor.Distance(to) > MoveThreshold
	})
}
