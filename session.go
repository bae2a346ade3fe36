package apiauth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thejerf/abtime"
)

// SessionRecord associates an opaque token with a user id and the moment
// the session was created.
type SessionRecord struct {
	UserID    string
	CreatedAt time.Time
}

// MemorySessionStore keeps sessions in a mutex-guarded map. Tokens are
// canonical UUIDv4 strings, random and unguessable. Suitable for small
// deployments that accept losing sessions on restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]SessionRecord
	clock    abtime.AbstractTime
}

var _ SessionStore = (*MemorySessionStore)(nil)

type MemoryStoreOption func(*MemorySessionStore)

// WithClock injects a clock, used by tests to step across expiry
// boundaries without sleeping.
func WithClock(clock abtime.AbstractTime) MemoryStoreOption {
	return func(s *MemorySessionStore) {
		s.clock = clock
	}
}

func NewMemorySessionStore(opts ...MemoryStoreOption) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: map[string]SessionRecord{},
		clock:    abtime.NewRealTime(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create generates a fresh token for userID and stores the association.
// Concurrent creations never collide, every call mints its own token.
func (s *MemorySessionStore) Create(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrNoEmptyString
	}

	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = SessionRecord{UserID: userID, CreatedAt: s.clock.Now()}
	s.mu.Unlock()

	return token, nil
}

// Resolve returns the user id bound to token, or ErrSessionNotFound.
func (s *MemorySessionStore) Resolve(_ context.Context, token string) (string, error) {
	rec, ok := s.record(token)
	if !ok {
		return "", ErrSessionNotFound
	}
	return rec.UserID, nil
}

// Destroy removes the token association. Destroying an unknown token is
// not an error.
func (s *MemorySessionStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) record(token string) (SessionRecord, bool) {
	if token == "" {
		return SessionRecord{}, false
	}
	s.mu.Lock()
	rec, ok := s.sessions[token]
	s.mu.Unlock()
	return rec, ok
}

// ExpiringSessionStore layers lazy expiration over a MemorySessionStore.
// A non-positive duration means sessions never expire. Expiry is checked
// only at resolution time, there is no background sweep: expired entries
// linger in the map until destroyed or overwritten. That memory growth is
// a documented limitation of this store, not a bug.
type ExpiringSessionStore struct {
	*MemorySessionStore

	// Duration in seconds a session stays resolvable after creation.
	duration int
}

var _ SessionStore = (*ExpiringSessionStore)(nil)

// NewExpiringSessionStore returns a store whose sessions expire duration
// seconds after creation.
func NewExpiringSessionStore(duration int, opts ...MemoryStoreOption) *ExpiringSessionStore {
	return &ExpiringSessionStore{
		MemorySessionStore: NewMemorySessionStore(opts...),
		duration:           duration,
	}
}

// Resolve behaves like the base store until the session crosses its
// expiry boundary, after which the token resolves as if it never existed.
func (s *ExpiringSessionStore) Resolve(_ context.Context, token string) (string, error) {
	rec, ok := s.record(token)
	if !ok {
		return "", ErrSessionNotFound
	}

	if expired(rec.CreatedAt, s.duration, s.clock.Now()) {
		return "", ErrSessionExpired
	}

	return rec.UserID, nil
}

func expired(createdAt time.Time, duration int, now time.Time) bool {
	if duration <= 0 {
		return false
	}
	return now.After(createdAt.Add(time.Duration(duration) * time.Second))
}
