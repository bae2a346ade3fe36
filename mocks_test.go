package apiauth_test

import (
	"context"

	auth "github.com/armsberg/go-apiauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestIdentity implements auth.Identity
type TestIdentity struct {
	id    string
	email string
}

func (t TestIdentity) ID() string    { return t.id }
func (t TestIdentity) Email() string { return t.email }

// fakeRequest implements auth.Request over plain maps.
type fakeRequest struct {
	path    string
	headers map[string]string
	cookies map[string]string
	form    map[string]string
}

func (f fakeRequest) Path() string { return f.path }

func (f fakeRequest) Header(name string) string {
	return f.headers[name]
}

func (f fakeRequest) Cookie(name string) string {
	return f.cookies[name]
}

func (f fakeRequest) FormValue(name string) string {
	return f.form[name]
}

// MockVerifier implements auth.IdentityVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyIdentity(ctx context.Context, email, password string) (auth.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

// MockFinder implements auth.IdentityFinder
type MockFinder struct {
	mock.Mock
}

func (m *MockFinder) FindIdentityByID(ctx context.Context, id string) (auth.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

// MockSessionStore implements auth.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Resolve(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockUserFinder implements auth.UserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) GetByEmail(ctx context.Context, email string) ([]*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auth.User), args.Error(1)
}

func (m *MockUserFinder) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}
