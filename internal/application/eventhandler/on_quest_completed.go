// Package eventhandler contains the analytics epilogues. They consume the
// same event stream the off-chain mirror sees and feed the derived statistics
// tables. Handlers are advisory: a handler error is logged, never propagated
// back into the authoritative transition that raised the event.
package eventhandler

import (
	"context"

	"go.uber.org/zap"

	"github.com/questforge/quest-registry/internal/domain/analytics"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// OnQuestCompleted folds committed completions into the per-user learning
// progress, the per-user engagement counters and the per-quest popularity
// score. Learning hours are estimated from difficulty: one hour per
// difficulty point.
type OnQuestCompleted struct {
	stats  analytics.Repository
	logger *zap.Logger
}

// NewOnQuestCompleted creates the handler.
func NewOnQuestCompleted(stats analytics.Repository, logger *zap.Logger) *OnQuestCompleted {
	return &OnQuestCompleted{stats: stats, logger: logger}
}

// Handle implements shared.EventHandler.
func (h *OnQuestCompleted) Handle(event shared.Event) error {
	e, ok := event.(shared.QuestCompletedEvent)
	if !ok {
		return nil
	}
	ctx := context.Background()

	hours := float64(e.Difficulty.Int())
	if err := h.stats.RecordProgress(ctx, e.User, e.QuestType, e.Skills, hours); err != nil {
		h.logger.Warn("record learning progress failed",
			zap.String("user", e.User.String()),
			zap.Uint64("quest_id", e.QuestID),
			zap.Error(err))
	}
	if err := h.stats.RecordEngagement(ctx, e.User, shared.ActivityQuestCompletion); err != nil {
		h.logger.Warn("record engagement failed",
			zap.String("user", e.User.String()),
			zap.Error(err))
	}
	if err := h.stats.RecordQuestCompletion(ctx, e.QuestID); err != nil {
		h.logger.Warn("record quest stats failed",
			zap.Uint64("quest_id", e.QuestID),
			zap.Error(err))
	}
	return nil
}
