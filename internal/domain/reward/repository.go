package reward

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Repository defines the storage contract for pools and rewards. Reserve and
// Claim are single atomic store operations so the escrow invariant can never
// be observed half-applied.
type Repository interface {
	// Deposit credits the sponsor's pool, creating it on first use.
	Deposit(ctx context.Context, sponsor shared.Address, amount decimal.Decimal) error

	// GetPool returns a detached copy of the sponsor's pool.
	// Returns shared.ErrPoolNotFound if the sponsor has no pool yet.
	GetPool(ctx context.Context, sponsor shared.Address) (*SponsorPool, error)

	// Reserve debits the sponsor's available balance and stores the reward
	// with status available, returning the assigned id. The debit and the
	// insert happen under one lock.
	// Returns shared.ErrInsufficientBalance when the pool is missing or the
	// available balance does not cover the amount; balances stay unchanged.
	Reserve(ctx context.Context, r *Reward) (uint64, error)

	// Get returns a detached copy of the reward.
	// Returns shared.ErrRewardNotFound for unknown ids.
	Get(ctx context.Context, id uint64) (*Reward, error)

	// Claim flips the reward to claimed.
	// Returns shared.ErrRewardNotFound when the id is unknown or the caller
	// is not the recorded recipient; shared.ErrRewardAlreadyClaimed when the
	// status is not available.
	Claim(ctx context.Context, id uint64, recipient shared.Address) (*Reward, error)

	// UserRewardIDs returns the ids of rewards granted to the user, in
	// creation order. Unknown users yield an empty list.
	UserRewardIDs(ctx context.Context, user shared.Address) ([]uint64, error)

	// Count returns the number of rewards created.
	Count(ctx context.Context) (uint64, error)
}
