package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/questforge/quest-registry/internal/domain/reward"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// RewardRepository is the reward accounting component's state container:
// sponsor pools and the escrowed reward table.
type RewardRepository struct {
	mu           sync.RWMutex
	pools        map[shared.Address]*reward.SponsorPool
	rewards      map[uint64]*reward.Reward
	byRecipient  map[shared.Address][]uint64
	totalRewards uint64
}

// NewRewardRepository creates an empty container.
func NewRewardRepository() *RewardRepository {
	return &RewardRepository{
		pools:       make(map[shared.Address]*reward.SponsorPool),
		rewards:     make(map[uint64]*reward.Reward),
		byRecipient: make(map[shared.Address][]uint64),
	}
}

// Deposit credits the sponsor's pool, creating it on first use.
func (r *RewardRepository) Deposit(_ context.Context, sponsor shared.Address, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool, ok := r.pools[sponsor]
	if !ok {
		pool = reward.NewSponsorPool(sponsor)
		r.pools[sponsor] = pool
	}
	pool.Deposit(amount)
	return nil
}

// GetPool returns a detached copy of the sponsor's pool.
func (r *RewardRepository) GetPool(_ context.Context, sponsor shared.Address) (*reward.SponsorPool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pool, ok := r.pools[sponsor]
	if !ok {
		return nil, shared.ErrPoolNotFound
	}
	return pool.Clone(), nil
}

// Reserve debits the sponsor's pool and stores the reward under one lock, so
// the escrow invariant is never observable half-applied. On failure balances
// stay byte-for-byte unchanged.
func (r *RewardRepository) Reserve(_ context.Context, rw *reward.Reward) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool, ok := r.pools[rw.Sponsor]
	if !ok || !pool.CanReserve(rw.Amount) {
		return 0, shared.ErrInsufficientBalance
	}
	pool.Reserve(rw.Amount)

	r.totalRewards++
	stored := rw.Clone()
	stored.ID = r.totalRewards
	stored.Status = reward.StatusAvailable
	r.rewards[stored.ID] = stored
	r.byRecipient[stored.Recipient] = append(r.byRecipient[stored.Recipient], stored.ID)
	return stored.ID, nil
}

// Get returns a detached copy of the reward.
func (r *RewardRepository) Get(_ context.Context, id uint64) (*reward.Reward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rw, ok := r.rewards[id]
	if !ok {
		return nil, shared.ErrRewardNotFound
	}
	return rw.Clone(), nil
}

// Claim flips the reward to claimed. An unknown id and a caller that is not
// the recorded recipient are indistinguishable to the caller.
func (r *RewardRepository) Claim(_ context.Context, id uint64, recipient shared.Address) (*reward.Reward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rw, ok := r.rewards[id]
	if !ok || rw.Recipient != recipient {
		return nil, shared.ErrRewardNotFound
	}
	if rw.Status != reward.StatusAvailable {
		return nil, shared.ErrRewardAlreadyClaimed
	}
	rw.Status = reward.StatusClaimed
	return rw.Clone(), nil
}

// UserRewardIDs returns the user's reward ids in creation order.
func (r *RewardRepository) UserRewardIDs(_ context.Context, user shared.Address) ([]uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]uint64(nil), r.byRecipient[user]...), nil
}

// Count returns the number of rewards created.
func (r *RewardRepository) Count(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalRewards, nil
}
