package api

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/calma-app/calma/internal/app/chat"
	"github.com/calma-app/calma/internal/app/onboarding"
	"github.com/calma-app/calma/internal/app/wellness"
	"github.com/calma-app/calma/internal/infra/observability"
	"github.com/calma-app/calma/internal/infra/reminder"
)

var (
	errSessionNotFound = errors.New("session not found")
	errTooManySessions = errors.New("too many active sessions")
)

// sessionEntry bundles a wellness session with its per-client state that
// lives outside the engine: the onboarding quiz and the chat transcript.
type sessionEntry struct {
	*wellness.Session
	quiz *onboarding.Quiz
	chat *chat.Conversation

	mu       sync.Mutex
	lastSeen time.Time
}

func (e *sessionEntry) touch(now time.Time) {
	e.mu.Lock()
	e.lastSeen = now
	e.mu.Unlock()
}

func (e *sessionEntry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSeen
}

// SessionStore keeps every live session in memory, keyed by ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	cfg         wellness.SessionConfig
	deps        wellness.Deps
	maxSessions int
	now         func() time.Time
}

// NewSessionStore creates a store that builds sessions from cfg and deps.
// maxSessions <= 0 means unlimited.
func NewSessionStore(cfg wellness.SessionConfig, deps wellness.Deps, maxSessions int) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*sessionEntry),
		cfg:         cfg,
		deps:        deps,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// create starts a new session.
func (s *SessionStore) create() (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return nil, errTooManySessions
	}
	e := &sessionEntry{
		Session:  wellness.NewSession(s.cfg, s.deps),
		quiz:     onboarding.NewQuiz(),
		chat:     chat.NewConversation(),
		lastSeen: s.now(),
	}
	s.sessions[e.ID()] = e
	observability.ActiveSessions.Inc()
	return e, nil
}

// get returns the session with id and marks it as recently used.
func (s *SessionStore) get(id string) (*sessionEntry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errSessionNotFound
	}
	e.touch(s.now())
	return e, nil
}

// Delete closes and removes the session with id.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		e.Close()
		observability.ActiveSessions.Dec()
	}
	return ok
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Targets lists live sessions for the reminder job.
func (s *SessionStore) Targets() []reminder.Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]reminder.Target, 0, len(s.sessions))
	for _, e := range s.sessions {
		out = append(out, e.Session)
	}
	return out
}

// Sweep removes sessions idle for longer than ttl and returns how many
// were removed.
func (s *SessionStore) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.RLock()
	var stale []string
	for id, e := range s.sessions {
		if e.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range stale {
		if s.Delete(id) {
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[api] swept %d idle sessions", removed)
	}
	return removed
}

// CloseAll cancels pending work on every session.
func (s *SessionStore) CloseAll() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.sessions {
		e.Close()
	}
}
