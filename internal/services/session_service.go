package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hues-Apply/profile-sync/internal/api"
	"github.com/Hues-Apply/profile-sync/internal/auth"
	"github.com/Hues-Apply/profile-sync/internal/models"
	"github.com/Hues-Apply/profile-sync/internal/profile"
)

// ProfileSession is one user's live profile state: a Store plus the
// Reconciler that syncs it. HTTP handlers run concurrently, so every
// touch of the store goes through With, which serializes access.
type ProfileSession struct {
	ID      string
	UserKey string

	mu         sync.Mutex
	store      *profile.Store
	reconciler *profile.Reconciler
	lastSeen   time.Time
}

// With runs f with exclusive access to the session's store and reconciler,
// and bumps the idle timer.
func (p *ProfileSession) With(f func(store *profile.Store, rec *profile.Reconciler) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSeen = time.Now()
	return f(p.store, p.reconciler)
}

// Snapshot returns a copy of the store safe to serialize after the lock is
// released. Slices are cloned so a concurrent edit can't race the encoder.
func (p *ProfileSession) Snapshot() profile.Store {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSeen = time.Now()

	snap := *p.store
	snap.Education = append([]profile.Education(nil), p.store.Education...)
	snap.Experience = append([]profile.Experience(nil), p.store.Experience...)
	snap.Projects = append([]profile.Project(nil), p.store.Projects...)
	return snap
}

// SessionService owns the in-memory session map and its lifecycle. Session
// identity is a digest of the bearer token, never the token itself.
type SessionService struct {
	DB         *gorm.DB
	APIBaseURL string
	TTL        time.Duration

	mu       sync.Mutex
	sessions map[string]*ProfileSession
}

func NewSessionService(db *gorm.DB, apiBaseURL string, ttl time.Duration) *SessionService {
	return &SessionService{
		DB:         db,
		APIBaseURL: apiBaseURL,
		TTL:        ttl,
		sessions:   make(map[string]*ProfileSession),
	}
}

// UserKey digests a bearer token into the stable key sessions, drafts and
// audit rows are stored under.
func UserKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GetOrCreate returns the live session for this token, creating one (and
// triggering its initial profile load) if none exists. A failed initial
// load does NOT fail session creation: the error lands in the store and
// the client can retry via reload.
func (s *SessionService) GetOrCreate(ctx context.Context, token string) *ProfileSession {
	key := UserKey(token)

	s.mu.Lock()
	if sess, ok := s.sessions[key]; ok {
		s.mu.Unlock()
		return sess
	}

	store := profile.NewStore()
	client := api.NewClient(s.APIBaseURL, auth.NewStaticToken(token))
	sess := &ProfileSession{
		ID:         uuid.NewString(),
		UserKey:    key,
		store:      store,
		reconciler: profile.NewReconciler(client, store),
		lastSeen:   time.Now(),
	}
	s.sessions[key] = sess
	s.mu.Unlock()

	// Load exactly once on construction.
	if err := sess.With(func(_ *profile.Store, rec *profile.Reconciler) error {
		return rec.Load(ctx)
	}); err != nil {
		log.Printf("⚠️ Initial profile load failed for session %s: %v", sess.ID, err)
	}

	if s.DB != nil {
		record := models.SyncSession{ID: sess.ID, UserKey: key, LastSeen: time.Now()}
		if err := s.DB.Create(&record).Error; err != nil {
			log.Printf("⚠️ Failed to record session %s: %v", sess.ID, err)
		}
	}

	log.Printf("✅ Profile session %s created", sess.ID)
	return sess
}

// LogEvent writes an audit row. Best effort: sync must not fail because
// the audit table is unavailable.
func (s *SessionService) LogEvent(userKey, section, eventType, details string) {
	if s.DB == nil {
		return
	}
	event := models.SyncEvent{
		UserKey:   userKey,
		Section:   section,
		EventType: eventType,
		Details:   details,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		log.Printf("⚠️ Failed to log sync event: %v", err)
	}
}

// StartReaper starts the background sweep that drops sessions idle longer
// than the TTL.
func (s *SessionService) StartReaper() {
	ticker := time.NewTicker(1 * time.Minute)

	go func() {
		for range ticker.C {
			s.reapIdleSessions()
		}
	}()
}

func (s *SessionService) reapIdleSessions() {
	cutoff := time.Now().Add(-s.TTL)

	s.mu.Lock()
	var expired []*ProfileSession
	for key, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, key)
			expired = append(expired, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		if s.DB != nil {
			s.DB.Delete(&models.SyncSession{}, "id = ?", sess.ID)
		}
		log.Printf("🔖 Expired idle profile session %s", sess.ID)
	}
	if len(expired) > 0 {
		log.Printf("✅ Session reaper removed %d idle sessions", len(expired))
	}
}

// ActiveSessions reports how many sessions are live (for the health
// endpoint).
func (s *SessionService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// String implements fmt.Stringer for debug logging.
func (p *ProfileSession) String() string {
	return fmt.Sprintf("session %s (user %.8s…)", p.ID, p.UserKey)
}
