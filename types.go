package apiauth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Email() string
}

// Request is the slice of an HTTP request this core needs. The routing
// layer adapts its own request type to this interface, see RouterRequest.
type Request interface {
	Path() string
	Header(name string) string
	Cookie(name string) string
	FormValue(name string) string
}

// Strategy is the polymorphic contract every auth scheme implements.
type Strategy interface {
	// RequiresAuth reports whether the given request path must carry a
	// credential proof. An empty exclusion list means every path does.
	RequiresAuth(path string) bool
	// CurrentIdentity resolves the request to an identity, or fails closed
	// with ErrUnauthenticated/ErrForbidden.
	CurrentIdentity(ctx context.Context, r Request) (Identity, error)
}

// SessionDestroyer is implemented by strategies that can revoke the
// session referenced by a request.
type SessionDestroyer interface {
	DestroySession(ctx context.Context, r Request) error
}

// SessionStore maps opaque session tokens to user ids.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// IdentityVerifier resolves an identity from an email/password pair.
type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, email, password string) (Identity, error)
}

// IdentityFinder resolves an identity from its id.
type IdentityFinder interface {
	FindIdentityByID(ctx context.Context, id string) (Identity, error)
}

// Config holds auth options
type Config interface {
	GetAuthType() string
	GetSessionCookieName() string
	GetSessionDuration() int
	GetExcludedPaths() []string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
