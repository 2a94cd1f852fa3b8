package query

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/analytics"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// AnalyticsQuery reads the derived statistics tables.
type AnalyticsQuery struct {
	stats analytics.Repository
}

// NewAnalyticsQuery creates the query.
func NewAnalyticsQuery(stats analytics.Repository) *AnalyticsQuery {
	return &AnalyticsQuery{stats: stats}
}

// LearningProgressOf returns a snapshot of the user's learning progress.
// Returns shared.ErrAnalyticsNotFound before the first recorded activity.
func (q *AnalyticsQuery) LearningProgressOf(ctx context.Context, user shared.Address) (*analytics.LearningProgress, error) {
	return q.stats.ProgressOf(ctx, user)
}

// EngagementOf returns a snapshot of the user's engagement counters.
// Returns shared.ErrAnalyticsNotFound before the first recorded activity.
func (q *AnalyticsQuery) EngagementOf(ctx context.Context, user shared.Address) (*analytics.UserEngagement, error) {
	return q.stats.EngagementOf(ctx, user)
}

// QuestStatsOf returns a snapshot of the quest's popularity analytics.
func (q *AnalyticsQuery) QuestStatsOf(ctx context.Context, questID uint64) (*analytics.QuestAnalytics, error) {
	return q.stats.QuestStats(ctx, questID)
}

// PlatformAnalytics returns the platform-wide singleton. Never fails.
func (q *AnalyticsQuery) PlatformAnalytics(ctx context.Context) (analytics.PlatformAnalytics, error) {
	return q.stats.Platform(ctx)
}
