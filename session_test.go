package apiauth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	auth "github.com/armsberg/go-apiauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemorySessionStore()

	token, err := store.Create(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// tokens render as canonical UUIDs
	_, err = uuid.Parse(token)
	require.NoError(t, err)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	require.NoError(t, store.Destroy(ctx, token))

	_, err = store.Resolve(ctx, token)
	assert.Equal(t, auth.ErrSessionNotFound, err)
}

func TestMemorySessionStoreRejectsEmptyUser(t *testing.T) {
	store := auth.NewMemorySessionStore()

	token, err := store.Create(context.Background(), "")
	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestMemorySessionStoreUnknownToken(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemorySessionStore()

	_, err := store.Resolve(ctx, "no-such-token")
	assert.Equal(t, auth.ErrSessionNotFound, err)

	_, err = store.Resolve(ctx, "")
	assert.Equal(t, auth.ErrSessionNotFound, err)

	// destroying an unknown token is a no-op
	assert.NoError(t, store.Destroy(ctx, "no-such-token"))
}

func TestMemorySessionStoreMultipleSessionsPerUser(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemorySessionStore()

	first, err := store.Create(ctx, "u1")
	require.NoError(t, err)
	second, err := store.Create(ctx, "u1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// both tokens stay live in the store itself
	u, err := store.Resolve(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "u1", u)

	u, err = store.Resolve(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "u1", u)
}

func TestMemorySessionStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemorySessionStore()

	var wg sync.WaitGroup
	tokens := make([]string, 50)

	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := store.Create(ctx, "u1")
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, token := range tokens {
		assert.False(t, seen[token], "token collision")
		seen[token] = true

		userID, err := store.Resolve(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, "u1", userID)
	}
}

func TestExpiringSessionStore(t *testing.T) {
	ctx := context.Background()
	clock := abtime.NewManual()

	store := auth.NewExpiringSessionStore(1, auth.WithClock(clock))

	token, err := store.Create(ctx, "u1")
	require.NoError(t, err)

	// inside the window the session resolves
	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	// step past the boundary, resolution fails as if the token never existed
	clock.Advance(2 * time.Second)

	_, err = store.Resolve(ctx, token)
	assert.Equal(t, auth.ErrSessionExpired, err)
}

func TestExpiringSessionStoreZeroDurationNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := abtime.NewManual()

	store := auth.NewExpiringSessionStore(0, auth.WithClock(clock))

	token, err := store.Create(ctx, "u1")
	require.NoError(t, err)

	clock.Advance(1000 * time.Hour)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestExpiringSessionStoreNegativeDurationNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := abtime.NewManual()

	store := auth.NewExpiringSessionStore(-5, auth.WithClock(clock))

	token, err := store.Create(ctx, "u1")
	require.NoError(t, err)

	clock.Advance(1000 * time.Hour)

	_, err = store.Resolve(ctx, token)
	assert.NoError(t, err)
}
