package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storyforge/storyforge/internal/canvas"
	"github.com/storyforge/storyforge/internal/log"
)

// ErrNotFound indicates the session id is unknown (or already deleted).
var ErrNotFound = errors.New("session not found")

// Store is an in-memory session registry. It is safe for concurrent use;
// independent sessions run in parallel while turns within one session are
// serialized through Acquire.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	locks    map[uuid.UUID]*sync.Mutex
	logger   log.Logger
}

// NewStore creates an empty session store.
func NewStore(logger log.Logger) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		locks:    make(map[uuid.UUID]*sync.Mutex),
		logger:   logger,
	}
}

// Create registers a new session with an empty canvas.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Canvas:    canvas.NewDocument(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.locks[sess.ID] = &sync.Mutex{}
	s.mu.Unlock()

	s.logger.Debug("session created", "session_id", sess.ID)
	return sess
}

// Get returns the session with the given id.
//
// The returned session's mutable state must only be read or written under
// Acquire; Get alone is only safe for identity checks.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Acquire locks the session for one turn and returns it together with a
// release function. No two turns for the same session run concurrently;
// turns of different sessions proceed independently.
func (s *Store) Acquire(id uuid.UUID) (*Session, func(), error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	lock := s.locks[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	lock.Lock()
	return sess, lock.Unlock, nil
}

// Delete removes a session. Deleting an unknown id is an error.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.sessions, id)
	delete(s.locks, id)

	s.logger.Debug("session deleted", "session_id", id)
	return nil
}

// List returns all live sessions, unordered.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
