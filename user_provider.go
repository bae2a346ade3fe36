package apiauth

import (
	"context"

	"github.com/google/uuid"
)

// UserFinder is the slice of the Users repository the provider needs.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) ([]*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// UserProvider resolves identities from the user store. It is the
// IdentityVerifier behind BasicAuth and the IdentityFinder behind the
// session strategies.
type UserProvider struct {
	store  UserFinder
	logger Logger
}

var (
	_ IdentityVerifier = (*UserProvider)(nil)
	_ IdentityFinder   = (*UserProvider)(nil)
)

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserFinder) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: NewRedactingLogger(defLogger{}),
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity finds every user matching the email exactly and tries
// each until one verifies against the password. No match, lookup miss,
// and verification failure are indistinguishable to the caller, which
// keeps account enumeration off the table. Storage faults are the one
// exception and propagate as errors.
func (u *UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	candidates, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	for _, user := range candidates {
		if user == nil {
			continue
		}
		if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
			continue
		}
		return identityFromUser(user), nil
	}

	u.logger.Debug("identity verification failed email=%s;", email)

	return nil, ErrMismatchedHashAndPassword
}

// FindIdentityByID resolves a user id, typically one recovered from a
// session token, into an identity.
func (u *UserProvider) FindIdentityByID(ctx context.Context, id string) (Identity, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrIdentityNotFound
	}

	user, err := u.store.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id    string
	email string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Email() string {
	return a.email
}

var _ Identity = authIdentity{}

func identityFromUser(user *User) Identity {
	return authIdentity{
		id:    user.ID.String(),
		email: user.Email,
	}
}
