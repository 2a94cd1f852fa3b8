package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/quest-registry/internal/domain/reward"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

func TestDepositCreatesPoolOnFirstUse(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	_, err := repo.GetPool(ctx, carol)
	assert.ErrorIs(t, err, shared.ErrPoolNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, repo.Deposit(ctx, carol, decimal.NewFromInt(100)))
	require.NoError(t, repo.Deposit(ctx, carol, decimal.NewFromInt(50)))

	pool, err := repo.GetPool(ctx, carol)
	require.NoError(t, err)
	assert.True(t, pool.TotalDeposited.Equal(decimal.NewFromInt(150)))
	assert.True(t, pool.Available.Equal(decimal.NewFromInt(150)))
}

func TestReserveDebitsEscrow(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	require.NoError(t, repo.Deposit(ctx, carol, decimal.NewFromInt(100)))

	id, err := repo.Reserve(ctx, &reward.Reward{
		Type:      reward.TypeQuestCompletion,
		Amount:    decimal.NewFromInt(60),
		Sponsor:   carol,
		Recipient: alice,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	pool, err := repo.GetPool(ctx, carol)
	require.NoError(t, err)
	// available = deposited - reserved, regardless of claim status
	assert.True(t, pool.TotalDeposited.Equal(decimal.NewFromInt(100)))
	assert.True(t, pool.Available.Equal(decimal.NewFromInt(40)))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, reward.StatusAvailable, got.Status)
}

func TestReserveRejectsOverdraftAtomically(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	require.NoError(t, repo.Deposit(ctx, carol, decimal.NewFromInt(30)))

	_, err := repo.Reserve(ctx, &reward.Reward{
		Type:      reward.TypeMentorship,
		Amount:    decimal.NewFromInt(31),
		Sponsor:   carol,
		Recipient: alice,
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)

	// A rejected reserve leaves the pool and tables untouched.
	pool, err := repo.GetPool(ctx, carol)
	require.NoError(t, err)
	assert.True(t, pool.Available.Equal(decimal.NewFromInt(30)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	ids, err := repo.UserRewardIDs(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReserveWithoutPool(t *testing.T) {
	repo := NewRewardRepository()

	_, err := repo.Reserve(context.Background(), &reward.Reward{
		Type:      reward.TypeQuestCompletion,
		Amount:    decimal.Zero,
		Sponsor:   carol,
		Recipient: alice,
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
}

func TestClaimFlipsStatusOnce(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	require.NoError(t, repo.Deposit(ctx, carol, decimal.NewFromInt(10)))
	id, err := repo.Reserve(ctx, &reward.Reward{
		Type:      reward.TypeStreakMilestone,
		Amount:    decimal.NewFromInt(10),
		Sponsor:   carol,
		Recipient: alice,
	})
	require.NoError(t, err)

	claimed, err := repo.Claim(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, reward.StatusClaimed, claimed.Status)

	_, err = repo.Claim(ctx, id, alice)
	assert.ErrorIs(t, err, shared.ErrRewardAlreadyClaimed)

	// Claiming never credits the pool back.
	pool, err := repo.GetPool(ctx, carol)
	require.NoError(t, err)
	assert.True(t, pool.Available.Equal(decimal.Zero))
}

func TestClaimHidesForeignRewards(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	require.NoError(t, repo.Deposit(ctx, carol, decimal.NewFromInt(10)))
	id, err := repo.Reserve(ctx, &reward.Reward{
		Type:      reward.TypeQuestCompletion,
		Amount:    decimal.NewFromInt(10),
		Sponsor:   carol,
		Recipient: alice,
	})
	require.NoError(t, err)

	// Wrong recipient and unknown id fail identically.
	_, err = repo.Claim(ctx, id, bob)
	assert.ErrorIs(t, err, shared.ErrRewardNotFound)
	_, err = repo.Claim(ctx, 999, alice)
	assert.ErrorIs(t, err, shared.ErrRewardNotFound)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, reward.StatusAvailable, got.Status)
}
