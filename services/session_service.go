package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"health-tracker-backend/models"
)

// sessionEntry pairs a session with its turn lock. The lock is held for the
// whole of a turn so concurrent requests for the same user serialize instead
// of racing to fill the same draft field.
type sessionEntry struct {
	mu      sync.Mutex
	session *models.Session
}

// SessionService owns all live conversation sessions. It is injected into
// the engine rather than accessed as shared global state, and it is the only
// component that creates or evicts sessions.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry

	ttl        time.Duration
	sweepEvery time.Duration
	logger     zerolog.Logger
	stop       chan struct{}
	stopped    sync.Once
	now        func() time.Time
}

// NewSessionService builds the store. Call StartSweeper to begin background
// eviction and Stop on shutdown.
func NewSessionService(ttl, sweepEvery time.Duration, logger zerolog.Logger) *SessionService {
	return &SessionService{
		sessions:   make(map[string]*sessionEntry),
		ttl:        ttl,
		sweepEvery: sweepEvery,
		logger:     logger.With().Str("component", "session_store").Logger(),
		stop:       make(chan struct{}),
		now:        time.Now,
	}
}

// Acquire returns the user's session with its turn lock held, creating the
// session on first contact. The caller must Release when the turn is done.
func (s *SessionService) Acquire(userID string) *models.Session {
	s.mu.Lock()
	entry, ok := s.sessions[userID]
	if !ok {
		entry = &sessionEntry{session: &models.Session{
			SessionID:    uuid.NewString(),
			UserID:       userID,
			State:        models.StateIdle,
			CreatedAt:    s.now(),
			LastActivity: s.now(),
		}}
		s.sessions[userID] = entry
		s.logger.Debug().Str("session_id", entry.session.SessionID).Msg("session created")
	}
	s.mu.Unlock()

	entry.mu.Lock()
	return entry.session
}

// Release stamps activity and frees the turn lock.
func (s *SessionService) Release(userID string) {
	s.mu.Lock()
	entry, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return
	}
	entry.session.LastActivity = s.now()
	entry.mu.Unlock()
}

// End removes a user's session outright, e.g. after explicit cancellation.
func (s *SessionService) End(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSweeper launches the background eviction loop.
func (s *SessionService) StartSweeper() {
	go func() {
		ticker := time.NewTicker(s.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Sweep evicts sessions idle past the TTL. A session whose turn lock is held
// is mid-turn and left alone; the next sweep will catch it.
func (s *SessionService) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for userID, entry := range s.sessions {
		if !entry.mu.TryLock() {
			continue
		}
		if entry.session.LastActivity.Before(cutoff) {
			delete(s.sessions, userID)
			evicted++
			s.logger.Info().
				Str("session_id", entry.session.SessionID).
				Str("state", string(entry.session.State)).
				Msg("session evicted after inactivity")
		}
		entry.mu.Unlock()
	}
	if evicted > 0 {
		s.logger.Debug().Int("evicted", evicted).Int("remaining", len(s.sessions)).Msg("sweep done")
	}
}

// Stop halts the sweeper.
func (s *SessionService) Stop() {
	s.stopped.Do(func() { close(s.stop) })
}
