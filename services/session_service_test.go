package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-tracker-backend/models"
)

func newTestSessionService() *SessionService {
	return NewSessionService(30*time.Minute, time.Minute, zerolog.Nop())
}

func TestAcquireCreatesSession(t *testing.T) {
	svc := newTestSessionService()

	s := svc.Acquire("u1")
	require.NotNil(t, s)
	assert.Equal(t, models.StateIdle, s.State)
	assert.NotEmpty(t, s.SessionID)
	svc.Release("u1")

	assert.Equal(t, 1, svc.Count())
}

func TestAcquireReturnsSameSession(t *testing.T) {
	svc := newTestSessionService()

	first := svc.Acquire("u1")
	id := first.SessionID
	svc.Release("u1")

	second := svc.Acquire("u1")
	assert.Equal(t, id, second.SessionID)
	svc.Release("u1")

	assert.Equal(t, 1, svc.Count())
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	svc := newTestSessionService()

	svc.Acquire("u1")
	svc.Release("u1")
	require.Equal(t, 1, svc.Count())

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	svc.Sweep()
	assert.Equal(t, 0, svc.Count())
}

func TestSweepKeepsActiveSessions(t *testing.T) {
	svc := newTestSessionService()

	svc.Acquire("u1")
	svc.Release("u1")

	svc.now = func() time.Time { return time.Now().Add(time.Minute) }
	svc.Sweep()
	assert.Equal(t, 1, svc.Count())
}

func TestSweepSkipsSessionMidTurn(t *testing.T) {
	svc := newTestSessionService()

	// Turn lock held: the sweeper must leave the session alone even though
	// its activity stamp is past the TTL.
	svc.Acquire("u1")
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	svc.Sweep()
	assert.Equal(t, 1, svc.Count())

	svc.Release("u1")
	svc.Sweep()
	assert.Equal(t, 1, svc.Count(), "release stamps fresh activity")
}

func TestEndRemovesSession(t *testing.T) {
	svc := newTestSessionService()

	svc.Acquire("u1")
	svc.Release("u1")
	svc.End("u1")
	assert.Equal(t, 0, svc.Count())
}
