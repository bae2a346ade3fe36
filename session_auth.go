package apiauth

import (
	"context"
)

// SessionAuth authenticates requests that carry an opaque session token
// in a configured cookie. The token is resolved through a SessionStore
// and the resulting user id through an IdentityFinder.
type SessionAuth struct {
	excluded   []string
	cookieName string
	store      SessionStore
	finder     IdentityFinder
	logger     Logger
}

var _ Strategy = (*SessionAuth)(nil)

// NewSessionAuth returns a session strategy over the given store. Cookie
// name and exclusion rules come from cfg.
func NewSessionAuth(store SessionStore, finder IdentityFinder, cfg Config) *SessionAuth {
	return &SessionAuth{
		excluded:   cfg.GetExcludedPaths(),
		cookieName: cfg.GetSessionCookieName(),
		store:      store,
		finder:     finder,
		logger:     defLogger{},
	}
}

func (s *SessionAuth) WithLogger(l Logger) *SessionAuth {
	s.logger = l
	return s
}

func (s *SessionAuth) RequiresAuth(path string) bool {
	return RequiresAuth(path, s.excluded)
}

// SessionCookie returns the raw session token carried by the request,
// empty when absent.
func (s *SessionAuth) SessionCookie(r Request) string {
	return r.Cookie(s.cookieName)
}

// CurrentIdentity resolves the request's session cookie to an identity.
// A missing cookie is unauthenticated; a token that does not resolve, or
// resolves to no identity, is forbidden. Storage faults propagate.
func (s *SessionAuth) CurrentIdentity(ctx context.Context, r Request) (Identity, error) {
	token := s.SessionCookie(r)
	if token == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := s.store.Resolve(ctx, token)
	if err != nil {
		if IsStorageError(err) {
			return nil, err
		}
		return nil, ErrForbidden
	}

	identity, err := s.finder.FindIdentityByID(ctx, userID)
	if err != nil {
		if IsStorageError(err) {
			return nil, err
		}
		return nil, ErrForbidden
	}

	return identity, nil
}

// CreateSession mints a session token for the user id.
func (s *SessionAuth) CreateSession(ctx context.Context, userID string) (string, error) {
	return s.store.Create(ctx, userID)
}

// Store exposes the underlying session store to composing layers.
func (s *SessionAuth) Store() SessionStore {
	return s.store
}
