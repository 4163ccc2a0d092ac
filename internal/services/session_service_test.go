package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hues-Apply/profile-sync/internal/models"
	"github.com/Hues-Apply/profile-sync/internal/profile"
)

func newRemoteProfileStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"profile":{"first_name":"Ada","last_name":"Lovelace"}}}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUserKeyIsStableAndOpaque(t *testing.T) {
	assert.Equal(t, UserKey("token-a"), UserKey("token-a"))
	assert.NotEqual(t, UserKey("token-a"), UserKey("token-b"))
	assert.Len(t, UserKey("token-a"), 64)
	assert.NotContains(t, UserKey("token-a"), "token-a")
}

func TestGetOrCreateReusesSessionPerToken(t *testing.T) {
	remote := newRemoteProfileStub(t)
	svc := NewSessionService(nil, remote.URL, time.Hour)

	a := svc.GetOrCreate(context.Background(), "token-a")
	again := svc.GetOrCreate(context.Background(), "token-a")
	b := svc.GetOrCreate(context.Background(), "token-b")

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, svc.ActiveSessions())

	// The initial load already ran.
	snap := a.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "Ada Lovelace", snap.Personal.Name)
}

func TestSnapshotClonesRepeatingSections(t *testing.T) {
	remote := newRemoteProfileStub(t)
	svc := NewSessionService(nil, remote.URL, time.Hour)
	sess := svc.GetOrCreate(context.Background(), "token-a")

	snap := sess.Snapshot()
	require.Len(t, snap.Education, 1)
	snap.Education[0].Degree = "mutated copy"

	fresh := sess.Snapshot()
	assert.Empty(t, fresh.Education[0].Degree)
}

func TestReaperRemovesIdleSessions(t *testing.T) {
	remote := newRemoteProfileStub(t)
	svc := NewSessionService(nil, remote.URL, time.Minute)

	sess := svc.GetOrCreate(context.Background(), "token-a")
	require.Equal(t, 1, svc.ActiveSessions())

	sess.mu.Lock()
	sess.lastSeen = time.Now().Add(-time.Hour)
	sess.mu.Unlock()

	svc.reapIdleSessions()
	assert.Equal(t, 0, svc.ActiveSessions())

	// A fresh session is minted on next sight of the token.
	recreated := svc.GetOrCreate(context.Background(), "token-a")
	assert.NotSame(t, sess, recreated)
}

func TestSessionBookkeepingRowsFollowLifecycle(t *testing.T) {
	remote := newRemoteProfileStub(t)
	db := newTestDB(t)
	svc := NewSessionService(db, remote.URL, time.Minute)

	sess := svc.GetOrCreate(context.Background(), "token-a")

	var rows []models.SyncSession
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, sess.ID, rows[0].ID)
	assert.Equal(t, sess.UserKey, rows[0].UserKey)

	sess.mu.Lock()
	sess.lastSeen = time.Now().Add(-time.Hour)
	sess.mu.Unlock()
	svc.reapIdleSessions()

	require.NoError(t, db.Find(&rows).Error)
	assert.Empty(t, rows, "reaped sessions drop their durable row")
}

func TestSessionEditsSurviveBetweenRequests(t *testing.T) {
	remote := newRemoteProfileStub(t)
	svc := NewSessionService(nil, remote.URL, time.Hour)

	sess := svc.GetOrCreate(context.Background(), "token-a")
	sess.With(func(store *profile.Store, _ *profile.Reconciler) error {
		store.Personal.Name = "Grace Hopper"
		return nil
	})

	again := svc.GetOrCreate(context.Background(), "token-a")
	assert.Equal(t, "Grace Hopper", again.Snapshot().Personal.Name)
}
