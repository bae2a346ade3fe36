package apiauth

import (
	"os"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Auth type names accepted by NewStrategyFromConfig.
const (
	AuthTypeNull       = "auth"
	AuthTypeBasic      = "basic_auth"
	AuthTypeSession    = "session_auth"
	AuthTypeSessionExp = "session_exp_auth"
	AuthTypeSessionDB  = "session_db_auth"
)

// DefaultSessionCookieName names the cookie carrying the session token
// when no configuration is provided.
const DefaultSessionCookieName = "_session_id"

// EnvConfig reads auth options from the environment:
// AUTH_TYPE, SESSION_NAME, SESSION_DURATION (seconds, unparseable values
// fall back to 0 meaning never expire), API_EXCLUDED_PATHS (comma
// separated exclusion rules).
type EnvConfig struct {
	authType      string
	cookieName    string
	duration      int
	excludedPaths []string
}

var _ Config = (*EnvConfig)(nil)

func NewEnvConfig() *EnvConfig {
	duration, err := strconv.Atoi(os.Getenv("SESSION_DURATION"))
	if err != nil {
		duration = 0
	}

	cookieName := os.Getenv("SESSION_NAME")
	if cookieName == "" {
		cookieName = DefaultSessionCookieName
	}

	var excluded []string
	for _, rule := range strings.Split(os.Getenv("API_EXCLUDED_PATHS"), ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			excluded = append(excluded, rule)
		}
	}

	return &EnvConfig{
		authType:      os.Getenv("AUTH_TYPE"),
		cookieName:    cookieName,
		duration:      duration,
		excludedPaths: excluded,
	}
}

func (c *EnvConfig) GetAuthType() string          { return c.authType }
func (c *EnvConfig) GetSessionCookieName() string { return c.cookieName }
func (c *EnvConfig) GetSessionDuration() int      { return c.duration }
func (c *EnvConfig) GetExcludedPaths() []string   { return c.excludedPaths }

// StaticConfig is a literal Config, handy for embedding and tests.
type StaticConfig struct {
	AuthType      string
	CookieName    string
	Duration      int
	ExcludedPaths []string
}

var _ Config = StaticConfig{}

func (c StaticConfig) GetAuthType() string { return c.AuthType }

func (c StaticConfig) GetSessionCookieName() string {
	if c.CookieName == "" {
		return DefaultSessionCookieName
	}
	return c.CookieName
}

func (c StaticConfig) GetSessionDuration() int    { return c.Duration }
func (c StaticConfig) GetExcludedPaths() []string { return c.ExcludedPaths }

// NewStrategyFromConfig wires the strategy named by cfg.GetAuthType to
// the given user store. db may be nil unless the persisted variant is
// requested. Unknown auth types fall back to the fail-closed NullAuth.
func NewStrategyFromConfig(cfg Config, users UserFinder, db *bun.DB) (Strategy, error) {
	provider := NewUserProvider(users)

	switch cfg.GetAuthType() {
	case AuthTypeBasic:
		return NewBasicAuth(provider, cfg.GetExcludedPaths()), nil
	case AuthTypeSession:
		return NewSessionAuth(NewMemorySessionStore(), provider, cfg), nil
	case AuthTypeSessionExp:
		return NewSessionExpAuth(provider, cfg), nil
	case AuthTypeSessionDB:
		if db == nil {
			return nil, goerrors.New("session_db_auth requires a database", goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest)
		}
		return NewSessionDBAuth(db, provider, cfg), nil
	case AuthTypeNull, "":
		return NewNullAuth(), nil
	default:
		return NewNullAuth(), nil
	}
}
