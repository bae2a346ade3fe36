package apiauth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// RegisterUserPayload carries the inputs for a new registration.
type RegisterUserPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

// Accounts owns the account lifecycle operations: registration, login
// validation, logout, and the password reset flow. Session bookkeeping
// goes through the injected SessionStore, user records through the
// repository manager.
type Accounts struct {
	repo     RepositoryManager
	sessions SessionStore
	provider *UserProvider
	logger   Logger
}

func NewAccounts(repo RepositoryManager, sessions SessionStore) *Accounts {
	logger := NewRedactingLogger(defLogger{})
	return &Accounts{
		repo:     repo,
		sessions: sessions,
		provider: NewUserProvider(repo.Users()).WithLogger(logger),
		logger:   logger,
	}
}

func (a *Accounts) WithLogger(l Logger) *Accounts {
	a.logger = l
	a.provider.WithLogger(l)
	return a
}

// RegisterUser creates a new identity for the email. A duplicate email
// fails with ErrEmailTaken; the definitive check lives in the storage
// layer's unique constraint, the lookup here only gives a friendlier
// fast path.
func (a *Accounts) RegisterUser(ctx context.Context, email, password string) (*User, error) {
	payload := RegisterUserPayload{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithCode(goerrors.CodeBadRequest)
	}

	existing, err := a.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
	}

	return a.repo.Users().Register(ctx, user)
}

// ValidLogin reports whether the email/password pair matches a stored
// identity. Unknown emails are false, never an error.
func (a *Accounts) ValidLogin(ctx context.Context, email, password string) bool {
	candidates, err := a.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		a.logger.Error("valid login lookup failed: %v", err)
		return false
	}

	for _, user := range candidates {
		if user == nil {
			continue
		}
		if err := ComparePasswordAndHash(password, user.PasswordHash); err == nil {
			return true
		}
	}
	return false
}

// Login verifies the credentials, mints a session token, and records it
// as the user's current session. The previous token stays in the store
// until destroyed; the session_id column always tracks the latest login.
func (a *Accounts) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := a.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := a.sessions.Create(ctx, identity.ID())
	if err != nil {
		return "", err
	}

	uid, err := uuid.Parse(identity.ID())
	if err != nil {
		return "", ErrIdentityNotFound
	}

	if err := a.repo.Users().SetSessionToken(ctx, uid, &token); err != nil {
		return "", err
	}

	return token, nil
}

// Logout clears the user's session association unconditionally. A user
// with no active session logs out as a no-op, not an error.
func (a *Accounts) Logout(ctx context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ErrIdentityNotFound
	}

	user, err := a.repo.Users().GetByID(ctx, uid)
	if err != nil {
		return err
	}

	if user.SessionID != nil {
		if err := a.sessions.Destroy(ctx, *user.SessionID); err != nil && IsStorageError(err) {
			return err
		}
	}

	return a.repo.Users().SetSessionToken(ctx, uid, nil)
}
