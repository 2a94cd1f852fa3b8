package eventhandler

import (
	"context"

	"go.uber.org/zap"

	"github.com/questforge/quest-registry/internal/domain/analytics"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// OnMentorshipScheduled counts mentorship engagement for both parties and
// credits the mentee's learning hours from the scheduled duration.
type OnMentorshipScheduled struct {
	stats  analytics.Repository
	logger *zap.Logger
}

// NewOnMentorshipScheduled creates the handler.
func NewOnMentorshipScheduled(stats analytics.Repository, logger *zap.Logger) *OnMentorshipScheduled {
	return &OnMentorshipScheduled{stats: stats, logger: logger}
}

// Handle implements shared.EventHandler.
func (h *OnMentorshipScheduled) Handle(event shared.Event) error {
	e, ok := event.(shared.MentorshipScheduledEvent)
	if !ok {
		return nil
	}
	ctx := context.Background()

	for _, party := range []shared.Address{e.Mentor, e.Mentee} {
		if err := h.stats.RecordEngagement(ctx, party, shared.ActivityMentorship); err != nil {
			h.logger.Warn("record mentorship engagement failed",
				zap.String("user", party.String()),
				zap.Uint64("session_id", e.SessionID),
				zap.Error(err))
		}
	}

	hours := float64(e.DurationMinutes) / 60.0
	if err := h.stats.RecordProgress(ctx, e.Mentee, shared.QuestTypeMentorship, nil, hours); err != nil {
		h.logger.Warn("record mentee progress failed",
			zap.String("user", e.Mentee.String()),
			zap.Error(err))
	}
	return nil
}
