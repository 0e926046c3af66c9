// Package session provides the in-memory conversation session store.
// Sessions are process-local and never persisted; each one isolates its own
// history and contact-capture state, so concurrent sessions in one process
// do not share mutable conversation state.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"faqdesk/internal/domain/entities"
)

// ErrNotFound indicates an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Store holds live sessions keyed by ID.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entities.Session
	greeting string
	now      func() time.Time
}

// NewStore creates a store. Every new session's history opens with the given
// assistant greeting.
func NewStore(greeting string) *Store {
	return &Store{
		sessions: make(map[string]*entities.Session),
		greeting: greeting,
		now:      time.Now,
	}
}

// Create starts a new session and returns it.
func (s *Store) Create() *entities.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &entities.Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}
	if s.greeting != "" {
		sess.History = append(sess.History, entities.ChatMessage{
			Role:    entities.RoleAssistant,
			Content: s.greeting,
		})
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session with the given ID.
func (s *Store) Get(id string) (*entities.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
