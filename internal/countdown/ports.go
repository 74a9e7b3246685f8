package countdown

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"time"

	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/domain/lang"
	"github.com/pearlworks/countdown/internal/domain/player"
)

// JobID identifies a repeating job on a TickSource.
type JobID uint64

// TickSource runs callbacks on the host's tick clock.
type TickSource interface {
	// ScheduleRepeating runs fn every intervalTicks host ticks until cancelled.
	ScheduleRepeating(intervalTicks int, fn func()) (JobID, error)
	// Cancel stops a job. Unknown ids are ignored.
	Cancel(id JobID)
}

// Subject is a player the countdown can talk to and kill.
type Subject interface {
	ID() uuid.UUID
	Position() player.Position
	Notify(key lang.Key, args ...any)
	Terminate()
}

// Directory resolves players by id. ok is false for players the host no
// longer knows about (for example after they disconnected).
type Directory interface {
	Resolve(id uuid.UUID) (Subject, bool)
}

// Observer is told about countdown transitions after they happened.
type Observer interface {
	CountdownStarted(id uuid.UUID, seconds int)
	CountdownProgress(id uuid.UUID, remaining int)
	CountdownCancelled(id uuid.UUID, reason CancelReason)
	CountdownExpired(id uuid.UUID)
}

// RegistryMetrics counts messages that reached an online subject.
type RegistryMetrics interface {
	IncrementNotifications()
}

// SchedulerMetrics receives driver measurements.
type SchedulerMetrics interface {
	ObserveTick(d time.Duration)
	SetSchedulerRunning(running bool)
}
