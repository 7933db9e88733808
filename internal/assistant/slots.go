package assistant

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ActionKind names a kind of request the user can start.
type ActionKind string

const (
	ActionChat    ActionKind = "chat"
	ActionRoutine ActionKind = "routine"
)

var ErrActionInFlight = errors.New("a request of this kind is already in flight")

// Slots holds at most one in-flight request per action kind. Different kinds
// never block each other.
type Slots struct {
	mu       sync.Mutex
	inFlight map[ActionKind]uuid.UUID
}

func NewSlots() *Slots {
	return &Slots{inFlight: make(map[ActionKind]uuid.UUID)}
}

// Acquire claims kind's slot and returns the handle that releases it.
func (s *Slots) Acquire(kind ActionKind) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[kind]; busy {
		return uuid.Nil, ErrActionInFlight
	}
	id := uuid.New()
	s.inFlight[kind] = id
	return id, nil
}

// Release frees kind's slot if id still holds it.
func (s *Slots) Release(kind ActionKind, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[kind] == id {
		delete(s.inFlight, kind)
	}
}

func (s *Slots) InFlight(kind ActionKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inFlight[kind]
	return busy
}
