package service

import (
	"lms_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessions run without redis here; the cache is an optional layer on top
// of the database rows.
func newSessionService(t *testing.T, ttl time.Duration) *SessionService {
	t.Helper()
	db := newTestDB(t)
	return NewSessionService(repository.NewSessionRepository(db), nil, ttl)
}

func TestSessionLifecycle(t *testing.T) {
	svc := newSessionService(t, time.Hour)

	sess, err := svc.Create(map[string]interface{}{"userId": 7})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	got, err := svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	updated, err := svc.Update(sess.ID, map[string]interface{}{"userId": 7, "theme": "dark"})
	require.NoError(t, err)
	assert.Contains(t, string(updated.Data), "dark")

	require.NoError(t, svc.Destroy(sess.ID))
	_, err = svc.Get(sess.ID)
	assert.Error(t, err)
}

func TestExpiredSessionIsGone(t *testing.T) {
	svc := newSessionService(t, -time.Minute)

	sess, err := svc.Create(map[string]interface{}{"userId": 1})
	require.NoError(t, err)

	_, err = svc.Get(sess.ID)
	assert.Error(t, err, "an expired session must not resolve")
}

func TestSweepRemovesExpiredRows(t *testing.T) {
	svc := newSessionService(t, -time.Minute)

	_, err := svc.Create(map[string]interface{}{"a": 1})
	require.NoError(t, err)
	_, err = svc.Create(map[string]interface{}{"b": 2})
	require.NoError(t, err)

	n, err := svc.Repo.DeleteExpired(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
