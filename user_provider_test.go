package apiauth_test

import (
	"context"
	"testing"

	auth "github.com/armsberg/go-apiauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestUserProviderVerifyIdentity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	store := &MockUserFinder{}
	store.On("GetByEmail", ctx, "a@b.com").Return([]*auth.User{
		{ID: userID, Email: "a@b.com", PasswordHash: hashFor(t, "secret")},
	}, nil)

	provider := auth.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(ctx, "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, userID.String(), identity.ID())
	assert.Equal(t, "a@b.com", identity.Email())
}

func TestUserProviderVerifyIdentityTriesAllCandidates(t *testing.T) {
	ctx := context.Background()
	wanted := uuid.New()

	store := &MockUserFinder{}
	store.On("GetByEmail", ctx, "a@b.com").Return([]*auth.User{
		{ID: uuid.New(), Email: "a@b.com", PasswordHash: hashFor(t, "other")},
		nil,
		{ID: wanted, Email: "a@b.com", PasswordHash: hashFor(t, "secret")},
	}, nil)

	provider := auth.NewUserProvider(store)

	identity, err := provider.VerifyIdentity(ctx, "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, wanted.String(), identity.ID())
}

func TestUserProviderVerifyIdentityFailuresIndistinguishable(t *testing.T) {
	ctx := context.Background()

	store := &MockUserFinder{}
	store.On("GetByEmail", ctx, "nobody@b.com").Return([]*auth.User{}, nil)
	store.On("GetByEmail", ctx, "a@b.com").Return([]*auth.User{
		{ID: uuid.New(), Email: "a@b.com", PasswordHash: hashFor(t, "secret")},
	}, nil)

	provider := auth.NewUserProvider(store)

	// unknown email and wrong password come back as the same error
	_, err := provider.VerifyIdentity(ctx, "nobody@b.com", "secret")
	assert.Equal(t, auth.ErrMismatchedHashAndPassword, err)

	_, err = provider.VerifyIdentity(ctx, "a@b.com", "wrong")
	assert.Equal(t, auth.ErrMismatchedHashAndPassword, err)
}

func TestUserProviderVerifyIdentityStorageFault(t *testing.T) {
	ctx := context.Background()
	boom := auth.WrapStorageError(assert.AnError, "users lookup failed")

	store := &MockUserFinder{}
	store.On("GetByEmail", ctx, mock.Anything).Return(nil, boom)

	provider := auth.NewUserProvider(store)

	_, err := provider.VerifyIdentity(ctx, "a@b.com", "secret")
	require.Error(t, err)
	assert.True(t, auth.IsStorageError(err))
}

func TestUserProviderFindIdentityByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	store := &MockUserFinder{}
	store.On("GetByID", ctx, userID).Return(&auth.User{
		ID:    userID,
		Email: "a@b.com",
	}, nil)

	provider := auth.NewUserProvider(store)

	identity, err := provider.FindIdentityByID(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", identity.Email())

	_, err = provider.FindIdentityByID(ctx, "not-a-uuid")
	assert.Equal(t, auth.ErrIdentityNotFound, err)
}

func TestUserProviderFindIdentityByIDLookupMiss(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	store := &MockUserFinder{}
	store.On("GetByID", ctx, userID).Return(nil, auth.ErrIdentityNotFound)

	provider := auth.NewUserProvider(store)

	_, err := provider.FindIdentityByID(ctx, userID.String())
	assert.Equal(t, auth.ErrIdentityNotFound, err)
}
