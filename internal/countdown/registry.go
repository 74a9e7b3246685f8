package countdown

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/domain/lang"
	"github.com/pearlworks/countdown/internal/domain/player"
	"github.com/pearlworks/countdown/internal/platform/logger"
)

// CancelReason says why a countdown ended early.
type CancelReason string

const (
	CancelExplicit CancelReason = "explicit"
	CancelMoved    CancelReason = "moved"
)

// Record is one player's running countdown.
type Record struct {
	SubjectID uuid.UUID       `json:"subject_id"`
	Anchor    player.Position `json:"anchor"`
	Remaining int             `json:"remaining_seconds"`
}

// effect is a side effect computed under the lock and delivered after it.
type effect struct {
	subject   uuid.UUID
	key       lang.Key
	args      []any
	terminate bool
}

// Registry is the authoritative store of running countdowns.
// All methods are safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Record

	directory Directory
	observer  Observer
	metrics   RegistryMetrics
	logger    *logger.Logger
}

type RegistryOption func(*Registry)

func WithRegistryLogger(log *logger.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = log
	}
}

func WithObserver(observer Observer) RegistryOption {
	return func(r *Registry) {
		r.observer = observer
	}
}

func WithRegistryMetrics(m RegistryMetrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry that reaches players through directory.
func NewRegistry(directory Directory, opts ...RegistryOption) (*Registry, error) {
	if directory == nil {
		return nil, errors.New("countdown: directory is required")
	}
	r := &Registry{
		records:   make(map[uuid.UUID]*Record),
		directory: directory,
		observer:  nopObserver{},
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Enroll starts a countdown of timeoutSeconds for id anchored at anchor.
// An existing countdown for id is replaced.
func (r *Registry) Enroll(id uuid.UUID, anchor player.Position, timeoutSeconds int) error {
	if id == uuid.Nil {
		return ErrInvalidSubject
	}
	if timeoutSeconds <= 0 {
		return ErrInvalidTimeout
	}

	r.mu.Lock()
	_, replaced := r.records[id]
	r.records[id] = &Record{SubjectID: id, Anchor: anchor, Remaining: timeoutSeconds}
	r.mu.Unlock()

	if replaced {
		r.logger.Debug("Restarted countdown", "player", id, "seconds", timeoutSeconds)
	}
	r.deliver([]effect{{subject: id, key: lang.SuicideInSeconds, args: []any{timeoutSeconds}}})
	r.observer.CountdownStarted(id, timeoutSeconds)
	return nil
}

// IsActive reports whether id has a running countdown.
func (r *Registry) IsActive(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[id]
	return ok
}

// AnchorOf returns where id's countdown started.
func (r *Registry) AnchorOf(id uuid.UUID) (player.Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return player.Position{}, false
	}
	return rec.Anchor, true
}

// Remaining returns the seconds left on id's countdown.
func (r *Registry) Remaining(id uuid.UUID) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return 0, false
	}
	return rec.Remaining, true
}

// Get returns a copy of id's record.
func (r *Registry) Get(id uuid.UUID) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Snapshot returns copies of all running countdowns in no particular order.
func (r *Registry) Snapshot() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out
}

// Len returns the number of running countdowns.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Cancel stops id's countdown. It reports whether one was running;
// cancelling a player without a countdown is a no-op.
func (r *Registry) Cancel(id uuid.UUID) bool {
	return r.cancelWhen(id, CancelExplicit, nil)
}

// cancelWhen removes id's record if pred accepts it (nil accepts all).
// The check and the removal happen under one lock.
func (r *Registry) cancelWhen(id uuid.UUID, reason CancelReason, pred func(Record) bool) bool {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok || (pred != nil && !pred(*rec)) {
		r.mu.Unlock()
		return false
	}
	delete(r.records, id)
	r.mu.Unlock()

	r.deliver([]effect{{subject: id, key: lang.SuicideCancelled}})
	r.observer.CountdownCancelled(id, reason)
	return true
}

// Clear drops every countdown without notifying anyone.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.records)
}

// Advance moves every countdown one second closer to zero. Players are told
// about the new value when ShouldNotify says so; countdowns that reach zero
// are removed and their players terminated, each exactly once.
func (r *Registry) Advance() {
	r.mu.Lock()
	var (
		effects  []effect
		progress []Record
		expired  []uuid.UUID
	)
	for id, rec := range r.records {
		rec.Remaining--
		if rec.Remaining > 0 {
			if ShouldNotify(rec.Remaining) {
				effects = append(effects, effect{subject: id, key: lang.SuicideInSeconds, args: []any{rec.Remaining}})
				progress = append(progress, *rec)
			}
			continue
		}
		expired = append(expired, id)
	}
	for _, id := range expired {
		delete(r.records, id)
		effects = append(effects, effect{subject: id, terminate: true})
	}
	r.mu.Unlock()

	r.deliver(effects)
	for _, rec := range progress {
		r.observer.CountdownProgress(rec.SubjectID, rec.Remaining)
	}
	for _, id := range expired {
		r.logger.Info("Countdown expired", "player", id)
		r.observer.CountdownExpired(id)
	}
}

// deliver applies effects to players that still resolve. Players the host
// no longer knows are skipped silently.
func (r *Registry) deliver(effects []effect) {
	for _, e := range effects {
		subject, ok := r.directory.Resolve(e.subject)
		if !ok {
			continue
		}
		if e.terminate {
			subject.Terminate()
			continue
		}
		subject.Notify(e.key, e.args...)
		if r.metrics != nil {
			r.metrics.IncrementNotifications()
		}
	}
}

type nopObserver struct{}

func (nopObserver) CountdownStarted(uuid.UUID, int)            {}
func (nopObserver) CountdownProgress(uuid.UUID, int)           {}
func (nopObserver) CountdownCancelled(uuid.UUID, CancelReason) {}
func (nopObserver) CountdownExpired(uuid.UUID)                 {}
