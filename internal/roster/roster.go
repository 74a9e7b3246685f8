// Package roster tracks the players currently online and is the countdown's
// view of them: it resolves ids to subjects that can be messaged and killed.
package roster

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/countdown"
	"github.com/pearlworks/countdown/internal/domain/lang"
	"github.com/pearlworks/countdown/internal/domain/player"
	"github.com/pearlworks/countdown/internal/events"
	"github.com/pearlworks/countdown/internal/platform/logger"
)

var (
	ErrUnknownPlayer = errors.New("roster: unknown player")
	ErrPlayerDead    = errors.New("roster: player is dead")
)

// Messenger delivers a rendered message to one player.
type Messenger interface {
	SendTo(playerID uuid.UUID, text string)
}

// Roster is the set of online players.
type Roster struct {
	mu      sync.RWMutex
	players map[uuid.UUID]*player.Player

	messenger Messenger
	eventLog  *events.EventLog
	logger    *logger.Logger
}

type Option func(*Roster)

func WithMessenger(m Messenger) Option {
	return func(r *Roster) {
		r.messenger = m
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(r *Roster) {
		r.logger = log
	}
}

// New creates an empty roster that publishes player events to eventLog.
func New(eventLog *events.EventLog, opts ...Option) *Roster {
	r := &Roster{
		players:  make(map[uuid.UUID]*player.Player),
		eventLog: eventLog,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetMessenger replaces the message sink. The WebSocket hub is built after
// the roster, so main wires it late.
func (r *Roster) SetMessenger(m Messenger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messenger = m
}

// Join brings a player online at the given position. Joining twice updates
// the name and position of the existing entry.
func (r *Roster) Join(id uuid.UUID, name string, at player.Position) player.Player {
	r.mu.Lock()
	p, ok := r.players[id]
	if ok {
		p.Name = name
		p.Position = at
	} else {
		p = player.NewPlayer(id, name, at)
		r.players[id] = p
	}
	snapshot := *p
	r.mu.Unlock()

	r.joined(snapshot)
	return snapshot
}

// Restore brings a player back with saved position and health. A player who
// is already online keeps their live state and only takes the new name.
func (r *Roster) Restore(saved player.Player, name string) player.Player {
	r.mu.Lock()
	p, ok := r.players[saved.ID]
	if ok {
		p.Name = name
	} else {
		p = player.NewPlayer(saved.ID, name, saved.Position)
		p.Health = saved.Health
		r.players[saved.ID] = p
	}
	snapshot := *p
	r.mu.Unlock()

	r.joined(snapshot)
	return snapshot
}

func (r *Roster) joined(p player.Player) {
	r.eventLog.Publish(&events.GameEvent{
		Type:    events.EventTypePlayerJoin,
		ActorID: p.ID.String(),
		Payload: p,
	})
	r.logger.Event(string(events.EventTypePlayerJoin), p.ID.String(), "Player joined: "+p.Name)
}

// Leave takes a player offline. Unknown ids are ignored.
func (r *Roster) Leave(id uuid.UUID) {
	r.mu.Lock()
	p, ok := r.players[id]
	if ok {
		delete(r.players, id)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	p.Online = false
	r.eventLog.Publish(&events.GameEvent{
		Type:    events.EventTypePlayerQuit,
		ActorID: id.String(),
		Payload: *p,
	})
}

// Move relocates a player. The PLAYER_MOVE event is published first; if a
// handler cancels it the player stays put. It reports whether the move
// happened.
func (r *Roster) Move(id uuid.UUID, to player.Position) (bool, error) {
	r.mu.RLock()
	p, ok := r.players[id]
	var from player.Position
	var dead bool
	if ok {
		from = p.Position
		dead = p.IsDead()
	}
	r.mu.RUnlock()

	if !ok {
		return false, ErrUnknownPlayer
	}
	if dead {
		return false, ErrPlayerDead
	}

	allowed := r.eventLog.Publish(&events.GameEvent{
		Type:    events.EventTypePlayerMove,
		ActorID: id.String(),
		Payload: events.MovePayload{From: from, To: to},
	})
	if !allowed {
		return false, nil
	}

	r.mu.Lock()
	if p, ok := r.players[id]; ok {
		p.Position = to
	}
	r.mu.Unlock()
	return true, nil
}

// Respawn brings a dead player back at the given position.
func (r *Roster) Respawn(id uuid.UUID, at player.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.Respawn(at)
	return nil
}

// Get returns a copy of an online player.
func (r *Roster) Get(id uuid.UUID) (player.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return player.Player{}, false
	}
	return *p, true
}

// Online returns copies of all online players.
func (r *Roster) Online() []player.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out
}

// Resolve implements countdown.Directory. Offline players do not resolve.
func (r *Roster) Resolve(id uuid.UUID) (countdown.Subject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.players[id]; !ok {
		return nil, false
	}
	return &subject{roster: r, id: id}, true
}

func (r *Roster) send(id uuid.UUID, text string) {
	r.mu.RLock()
	m := r.messenger
	r.mu.RUnlock()
	if m == nil {
		r.logger.Debug("No messenger for player message", "player", id, "text", text)
		return
	}
	m.SendTo(id, text)
}

func (r *Roster) kill(id uuid.UUID) {
	r.mu.Lock()
	p, ok := r.players[id]
	if ok {
		p.Kill()
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	r.eventLog.Publish(&events.GameEvent{
		Type:    events.EventTypePlayerDeath,
		ActorID: id.String(),
	})
	r.logger.Event(string(events.EventTypePlayerDeath), id.String(), "Player died")
}

// subject is a live handle on a roster entry. Every call looks the player
// up again, so a player who left in the meantime is silently skipped.
type subject struct {
	roster *Roster
	id     uuid.UUID
}

func (s *subject) ID() uuid.UUID {
	return s.id
}

func (s *subject) Position() player.Position {
	p, _ := s.roster.Get(s.id)
	return p.Position
}

func (s *subject) Notify(key lang.Key, args ...any) {
	s.roster.send(s.id, lang.Render(key, args...))
}

func (s *subject) Terminate() {
	s.roster.kill(s.id)
}
