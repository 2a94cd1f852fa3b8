package query

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/engagement"
	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/quest"
	"github.com/questforge/quest-registry/internal/domain/reward"
)

// PlatformStats are the authoritative entity counters. They are read straight
// from the monotonic counters that double as next-id generators.
type PlatformStats struct {
	UserCount          uint64
	QuestCount         uint64
	MentorshipCount    uint64
	CollaborationCount uint64
	RewardCount        uint64
}

// PlatformStatsQuery reads counters across all components. It is read-only:
// the cross-component read is permitted precisely because it never mutates
// authoritative state.
type PlatformStatsQuery struct {
	users    identity.Repository
	quests   quest.Repository
	sessions engagement.Repository
	rewards  reward.Repository
}

// NewPlatformStatsQuery creates the query.
func NewPlatformStatsQuery(users identity.Repository, quests quest.Repository, sessions engagement.Repository, rewards reward.Repository) *PlatformStatsQuery {
	return &PlatformStatsQuery{users: users, quests: quests, sessions: sessions, rewards: rewards}
}

// Stats returns the current counters.
func (q *PlatformStatsQuery) Stats(ctx context.Context) (PlatformStats, error) {
	var (
		out PlatformStats
		err error
	)
	if out.UserCount, err = q.users.Count(ctx); err != nil {
		return out, err
	}
	if out.QuestCount, err = q.quests.Count(ctx); err != nil {
		return out, err
	}
	if out.MentorshipCount, err = q.sessions.MentorshipCount(ctx); err != nil {
		return out, err
	}
	if out.CollaborationCount, err = q.sessions.CollaborationCount(ctx); err != nil {
		return out, err
	}
	if out.RewardCount, err = q.rewards.Count(ctx); err != nil {
		return out, err
	}
	return out, nil
}
