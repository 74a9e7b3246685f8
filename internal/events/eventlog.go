// Package events provides the event feed of the server: an in-memory,
// append-only log of player and countdown events with prioritized handlers.
package events

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/domain/player"
)

// EventType defines the category of an event.
type EventType string

const (
	EventTypePlayerJoin         EventType = "PLAYER_JOIN"
	EventTypePlayerQuit         EventType = "PLAYER_QUIT"
	EventTypePlayerMove         EventType = "PLAYER_MOVE"
	EventTypePlayerDeath        EventType = "PLAYER_DEATH"
	EventTypeCountdownStarted   EventType = "COUNTDOWN_STARTED"
	EventTypeCountdownProgress  EventType = "COUNTDOWN_PROGRESS"
	EventTypeCountdownCancelled EventType = "COUNTDOWN_CANCELLED"
	EventTypeCountdownExpired   EventType = "COUNTDOWN_EXPIRED"
	EventTypeSchedulerStarted   EventType = "SCHEDULER_STARTED"
	EventTypeSchedulerStopped   EventType = "SCHEDULER_STOPPED"
)

// Priority orders handlers of the same event. Lower runs first; Monitor
// handlers run last and only observe the outcome.
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityHighest
	PriorityMonitor
)

// GameEvent represents an immutable record of something that happened.
type GameEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ActorID   string    `json:"actor_id"`  // Who performed the action
	TargetID  string    `json:"target_id"` // Who was affected (optional)
	Payload   any       `json:"payload"`   // Event-specific data
	Cancelled bool      `json:"cancelled"` // Set by a handler to veto the action
}

// MovePayload travels with PLAYER_MOVE.
type MovePayload struct {
	From player.Position `json:"from"`
	To   player.Position `json:"to"`
}

// CountdownPayload travels with COUNTDOWN_* events.
type CountdownPayload struct {
	Seconds int    `json:"seconds,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Handler reacts to an event. Handlers below Monitor may set Cancelled.
type Handler func(event *GameEvent)

type subscription struct {
	priority        Priority
	ignoreCancelled bool
	handler         Handler
	seq             int
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only log of events.
type EventLog struct {
	mu     sync.RWMutex
	events []GameEvent

	subMu sync.RWMutex
	subs  map[EventType][]subscription
	seq   int

	persister EventPersister
	onError   func(error)
	retention int
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]GameEvent, 0),
		subs:      make(map[EventType][]subscription),
		persister: persister,
	}
}

// OnPersistError registers a callback for failed write-throughs.
func (el *EventLog) OnPersistError(fn func(error)) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.onError = fn
}

// SetRetention bounds the in-memory history to the newest n events.
// Zero keeps everything. The persister still sees every event.
func (el *EventLog) SetRetention(n int) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.retention = n
	el.trim()
}

func (el *EventLog) trim() {
	if el.retention > 0 && len(el.events) > el.retention {
		el.events = append([]GameEvent(nil), el.events[len(el.events)-el.retention:]...)
	}
}

// Subscribe registers handler for events of type t. With ignoreCancelled the
// handler is skipped for events an earlier handler cancelled.
func (el *EventLog) Subscribe(t EventType, priority Priority, ignoreCancelled bool, handler Handler) {
	el.subMu.Lock()
	defer el.subMu.Unlock()
	el.seq++
	// Copy so a concurrent Publish keeps iterating its own snapshot.
	subs := make([]subscription, 0, len(el.subs[t])+1)
	subs = append(subs, el.subs[t]...)
	subs = append(subs, subscription{
		priority:        priority,
		ignoreCancelled: ignoreCancelled,
		handler:         handler,
		seq:             el.seq,
	})
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].priority != subs[j].priority {
			return subs[i].priority < subs[j].priority
		}
		return subs[i].seq < subs[j].seq
	})
	el.subs[t] = subs
}

// Publish stamps the event, runs its handlers synchronously in priority
// order and appends it. It returns false if a handler cancelled it.
func (el *EventLog) Publish(event *GameEvent) bool {
	if event.ID == "" {
		event.ID = GenerateEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	el.subMu.RLock()
	subs := el.subs[event.Type]
	el.subMu.RUnlock()

	for _, sub := range subs {
		if event.Cancelled && sub.ignoreCancelled {
			continue
		}
		sub.handler(event)
	}

	el.Append(*event)
	return !event.Cancelled
}

// Append adds a new event to the log. Events are immutable once appended.
func (el *EventLog) Append(event GameEvent) {
	el.mu.Lock()
	el.events = append(el.events, event)
	el.trim()
	persister, onError := el.persister, el.onError
	el.mu.Unlock()

	if persister != nil {
		if err := persister.Append(event); err != nil && onError != nil {
			onError(err)
		}
	}
}

// GetByActor returns all events performed by a specific actor.
func (el *EventLog) GetByActor(actorID string) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.ActorID == actorID {
			result = append(result, e)
		}
	}
	return result
}

// GetByType returns all events of a type.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Replay returns a copy of the full history.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return append([]GameEvent(nil), el.events...)
}

// Len returns the number of logged events.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}
