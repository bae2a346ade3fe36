package apiauth

// SessionExpAuth is SessionAuth over an expiring store: identical cookie
// handling and identity resolution, except tokens stop resolving once
// they cross the configured session duration.
type SessionExpAuth struct {
	*SessionAuth
}

var _ Strategy = (*SessionExpAuth)(nil)

// NewSessionExpAuth builds the expiring variant. The session duration in
// seconds comes from cfg; non-positive means sessions never expire and
// the strategy degrades to plain SessionAuth behavior.
func NewSessionExpAuth(finder IdentityFinder, cfg Config, opts ...MemoryStoreOption) *SessionExpAuth {
	store := NewExpiringSessionStore(cfg.GetSessionDuration(), opts...)
	return &SessionExpAuth{
		SessionAuth: NewSessionAuth(store, finder, cfg),
	}
}
