package apiauth

import (
	"context"

	"github.com/uptrace/bun"
)

// SessionDBAuth is the persisted variant: session records live in the
// database, so they survive restarts and old logins stay valid until
// destroyed, one token at a time. This is a deliberate departure from
// the in-memory variants' last-login-wins column, see DESIGN.md.
type SessionDBAuth struct {
	*SessionAuth
	dbStore *DBSessionStore
}

var (
	_ Strategy         = (*SessionDBAuth)(nil)
	_ SessionDestroyer = (*SessionDBAuth)(nil)
)

// NewSessionDBAuth builds the database-backed variant over db, applying
// cfg's session duration to persisted records.
func NewSessionDBAuth(db *bun.DB, finder IdentityFinder, cfg Config, opts ...DBStoreOption) *SessionDBAuth {
	store := NewDBSessionStore(db, cfg.GetSessionDuration(), opts...)
	return &SessionDBAuth{
		SessionAuth: NewSessionAuth(store, finder, cfg),
		dbStore:     store,
	}
}

// DestroySession revokes the session referenced by the request cookie.
// It fails, without being fatal, when the cookie is missing, the token is
// unknown or expired, or the removal could not be persisted.
func (s *SessionDBAuth) DestroySession(ctx context.Context, r Request) error {
	token := s.SessionCookie(r)
	if token == "" {
		return ErrSessionNotFound
	}

	return s.dbStore.Destroy(ctx, token)
}
