package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

func TestCreateRejectsSecondRegistration(t *testing.T) {
	repo := NewIdentityRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, identity.NewProfile(alice, "alice", "", nil, time.Now())))

	err := repo.Create(ctx, identity.NewProfile(alice, "alice2", "", nil, time.Now()))
	assert.ErrorIs(t, err, shared.ErrAlreadyRegistered)

	// The original profile survives and the counter moved once.
	p, err := repo.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestGetAndUpdateUnknownUser(t *testing.T) {
	repo := NewIdentityRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, bob)
	assert.ErrorIs(t, err, shared.ErrUserNotFound)

	err = repo.Update(ctx, identity.NewProfile(bob, "bob", "", nil, time.Now()))
	assert.ErrorIs(t, err, shared.ErrUserNotFound)

	ok, err := repo.Exists(ctx, bob)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateStoresDetachedCopy(t *testing.T) {
	repo := NewIdentityRepository()
	ctx := context.Background()

	p := identity.NewProfile(alice, "alice", "", nil, time.Now())
	require.NoError(t, repo.Create(ctx, p))

	p.Reputation = 30
	require.NoError(t, repo.Update(ctx, p))

	// Mutating the caller's copy after Update must not leak into the store.
	p.Reputation = 9999

	got, err := repo.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Reputation)
}
