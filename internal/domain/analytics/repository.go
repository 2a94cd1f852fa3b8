package analytics

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Repository defines the storage contract for derived statistics. Writes are
// best-effort epilogues of authoritative transitions; reads of per-key records
// fail with shared.ErrAnalyticsNotFound before the first write, while the
// platform singleton read never fails.
type Repository interface {
	// RecordProgress accumulates learning activity for a user, creating the
	// record on first use.
	RecordProgress(ctx context.Context, user shared.Address, questType shared.QuestType, skills []string, hours float64) error

	// RecordEngagement routes one activity to the user's counters, creating
	// the record on first use. Unrecognized kinds are ignored without error.
	RecordEngagement(ctx context.Context, user shared.Address, kind shared.ActivityKind) error

	// RecordQuestCompletion updates the per-quest popularity score.
	RecordQuestCompletion(ctx context.Context, questID uint64) error

	// ProgressOf returns a detached copy of the user's learning progress.
	ProgressOf(ctx context.Context, user shared.Address) (*LearningProgress, error)

	// EngagementOf returns a detached copy of the user's engagement record.
	EngagementOf(ctx context.Context, user shared.Address) (*UserEngagement, error)

	// QuestStats returns a detached copy of the quest's analytics.
	QuestStats(ctx context.Context, questID uint64) (*QuestAnalytics, error)

	// Platform returns the platform-wide singleton.
	Platform(ctx context.Context) (PlatformAnalytics, error)
}
