package apiauth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/thejerf/abtime"
	"github.com/uptrace/bun"
)

// DBSessionStore persists each session as a durable user_sessions record
// keyed by token. Unlike the in-memory stores, records from earlier
// logins stay valid until explicitly destroyed, so one user may hold many
// live sessions. Expiration still applies lazily at resolve time.
type DBSessionStore struct {
	db       *bun.DB
	duration int
	clock    abtime.AbstractTime
	logger   Logger
}

var _ SessionStore = (*DBSessionStore)(nil)

type DBStoreOption func(*DBSessionStore)

// WithDBClock injects the clock used for created_at stamps and expiry
// checks.
func WithDBClock(clock abtime.AbstractTime) DBStoreOption {
	return func(s *DBSessionStore) {
		s.clock = clock
	}
}

func WithDBLogger(l Logger) DBStoreOption {
	return func(s *DBSessionStore) {
		s.logger = l
	}
}

// NewDBSessionStore returns a store over db whose sessions expire
// duration seconds after creation, never when duration is non-positive.
func NewDBSessionStore(db *bun.DB, duration int, opts ...DBStoreOption) *DBSessionStore {
	s := &DBSessionStore{
		db:       db,
		duration: duration,
		clock:    abtime.NewRealTime(),
		logger:   defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create mints a fresh token and persists the session record. The write
// is fallible and not retried here, callers own retry policy.
func (s *DBSessionStore) Create(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrNoEmptyString
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", ErrIdentityNotFound
	}

	record := &UserSession{
		ID:        uuid.New(),
		Token:     uuid.NewString(),
		UserID:    uid,
		CreatedAt: s.clock.Now(),
	}

	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return "", WrapStorageError(err, "failed to persist session")
	}

	return record.Token, nil
}

// Resolve looks the token up in storage and applies the expiry gate.
func (s *DBSessionStore) Resolve(ctx context.Context, token string) (string, error) {
	record, err := s.find(ctx, token)
	if err != nil {
		return "", err
	}

	if expired(record.CreatedAt, s.duration, s.clock.Now()) {
		return "", ErrSessionExpired
	}

	return record.UserID.String(), nil
}

// Destroy locates the record, verifies it still resolves to a live
// session, removes it, and persists the removal. Unknown and expired
// tokens report failure rather than silently succeeding, so callers can
// treat the result as a boolean outcome.
func (s *DBSessionStore) Destroy(ctx context.Context, token string) error {
	if _, err := s.Resolve(ctx, token); err != nil {
		return err
	}

	res, err := s.db.NewDelete().
		Model((*UserSession)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	if err != nil {
		return WrapStorageError(err, "failed to remove session record")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (s *DBSessionStore) find(ctx context.Context, token string) (*UserSession, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	record := &UserSession{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.token = ?", token).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, WrapStorageError(err, "failed to query session record")
	}
	return record, nil
}
