package query

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/reward"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// RewardQuery reads rewards and sponsor pools.
type RewardQuery struct {
	rewards reward.Repository
}

// NewRewardQuery creates the query.
func NewRewardQuery(rewards reward.Repository) *RewardQuery {
	return &RewardQuery{rewards: rewards}
}

// RewardOf returns a snapshot of the reward.
// Returns shared.ErrRewardNotFound for unknown ids.
func (q *RewardQuery) RewardOf(ctx context.Context, id uint64) (*reward.Reward, error) {
	return q.rewards.Get(ctx, id)
}

// UserRewardsOf returns the ids of rewards granted to the user.
func (q *RewardQuery) UserRewardsOf(ctx context.Context, user shared.Address) ([]uint64, error) {
	return q.rewards.UserRewardIDs(ctx, user)
}

// SponsorPoolOf returns a snapshot of the sponsor's pool.
func (q *RewardQuery) SponsorPoolOf(ctx context.Context, sponsor shared.Address) (*reward.SponsorPool, error) {
	return q.rewards.GetPool(ctx, sponsor)
}
