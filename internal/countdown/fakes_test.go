package countdown_test

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/countdown"
	"github.com/pearlworks/countdown/internal/domain/lang"
	"github.com/pearlworks/countdown/internal/domain/player"
)

// recordingSubject remembers everything the registry told it.
type recordingSubject struct {
	mu         sync.Mutex
	id         uuid.UUID
	pos        player.Position
	seconds    []int
	cancelled  int
	terminated int
}

func (s *recordingSubject) ID() uuid.UUID             { return s.id }
func (s *recordingSubject) Position() player.Position { return s.pos }

func (s *recordingSubject) Notify(key lang.Key, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case lang.SuicideInSeconds:
		s.seconds = append(s.seconds, args[0].(int))
	case lang.SuicideCancelled:
		s.cancelled++
	}
}

func (s *recordingSubject) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terminated++
}

func (s *recordingSubject) notified() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.seconds...)
}

func (s *recordingSubject) terminations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

func (s *recordingSubject) cancellations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

type fakeDirectory struct {
	mu       sync.Mutex
	subjects map[uuid.UUID]*recordingSubject
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{subjects: make(map[uuid.UUID]*recordingSubject)}
}

func (d *fakeDirectory) add(pos player.Position) *recordingSubject {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := &recordingSubject{id: uuid.New(), pos: pos}
	d.subjects[s.id] = s
	return s
}

func (d *fakeDirectory) remove(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subjects, id)
}

func (d *fakeDirectory) Resolve(id uuid.UUID) (countdown.Subject, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.subjects[id]
	if !ok {
		return nil, false
	}
	return s, true
}

type notificationCounter struct {
	mu sync.Mutex
	n  int
}

func (c *notificationCounter) IncrementNotifications() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *notificationCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
