package apiauth

import (
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// ContextKeyIdentity is the Locals key under which Protect stores the
// resolved identity.
const ContextKeyIdentity = "auth_identity"

// RouterRequest adapts a router.Context to the Request interface the
// strategies consume.
type RouterRequest struct {
	ctx router.Context
}

var _ Request = RouterRequest{}

func NewRouterRequest(c router.Context) RouterRequest {
	return RouterRequest{ctx: c}
}

func (r RouterRequest) Path() string {
	return r.ctx.Path()
}

func (r RouterRequest) Header(name string) string {
	return r.ctx.GetString(name, "")
}

func (r RouterRequest) Cookie(name string) string {
	return r.ctx.Cookies(name)
}

func (r RouterRequest) FormValue(name string) string {
	return r.ctx.FormValue(name)
}

// RouteAuthenticator bridges a Strategy to the routing layer: a Protect
// middleware for per-request resolution plus cookie helpers for login
// and logout responses.
type RouteAuthenticator struct {
	strategy       Strategy
	cfg            Config
	cookieDuration time.Duration
	Logger         Logger
	ErrorHandler   func(c router.Context, err error) error
}

func NewRouteAuthenticator(strategy Strategy, cfg Config) *RouteAuthenticator {
	cookieDuration := 24 * time.Hour
	if cfg.GetSessionDuration() > 0 {
		cookieDuration = time.Duration(cfg.GetSessionDuration()) * time.Second
	}

	a := &RouteAuthenticator{
		strategy:       strategy,
		cfg:            cfg,
		cookieDuration: cookieDuration,
		Logger:         defLogger{},
	}
	a.ErrorHandler = a.defaultErrHandler

	return a
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// Protect applies the strategy to every request: excluded paths pass
// through untouched, everything else must resolve to an identity, which
// is stored in Locals under ContextKeyIdentity.
func (a *RouteAuthenticator) Protect() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if !a.strategy.RequiresAuth(c.Path()) {
				return c.Next()
			}

			identity, err := a.strategy.CurrentIdentity(c.Context(), NewRouterRequest(c))
			if err != nil {
				return a.ErrorHandler(c, err)
			}

			c.Locals(ContextKeyIdentity, identity)
			c.SetContext(WithIdentity(c.Context(), identity))
			return c.Next()
		}
	}
}

// IdentityFromContext recovers the identity stored by Protect, nil when
// the request was not authenticated.
func IdentityFromContext(c router.Context) Identity {
	if identity, ok := c.Locals(ContextKeyIdentity).(Identity); ok {
		return identity
	}
	return nil
}

// SetSessionCookie writes the session token to the configured cookie.
func (a *RouteAuthenticator) SetSessionCookie(c router.Context, token string) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.GetSessionCookieName(),
		Value:    token,
		Expires:  time.Now().Add(a.cookieDuration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// ClearSessionCookie expires the session cookie on the response.
func (a *RouteAuthenticator) ClearSessionCookie(c router.Context) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.GetSessionCookieName(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "authentication failed").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Error(
		"auth middleware rejected request: %s %s",
		richErr.Message,
		print.MaybePrettyJSON(richErr.Metadata),
	)

	status := router.StatusUnauthorized
	if richErr.Code == errors.CodeForbidden {
		status = router.StatusForbidden
	}

	return c.Status(status).SendString(richErr.Message)
}
