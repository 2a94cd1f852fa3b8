package eventhandler

import (
	"context"

	"go.uber.org/zap"

	"github.com/questforge/quest-registry/internal/domain/analytics"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// OnCollaborationStarted counts collaboration engagement for every
// participant of a new session.
type OnCollaborationStarted struct {
	stats  analytics.Repository
	logger *zap.Logger
}

// NewOnCollaborationStarted creates the handler.
func NewOnCollaborationStarted(stats analytics.Repository, logger *zap.Logger) *OnCollaborationStarted {
	return &OnCollaborationStarted{stats: stats, logger: logger}
}

// Handle implements shared.EventHandler.
func (h *OnCollaborationStarted) Handle(event shared.Event) error {
	e, ok := event.(shared.CollaborationStartedEvent)
	if !ok {
		return nil
	}
	ctx := context.Background()

	for _, p := range e.Participants {
		if err := h.stats.RecordEngagement(ctx, p, shared.ActivityCollaboration); err != nil {
			h.logger.Warn("record collaboration engagement failed",
				zap.String("user", p.String()),
				zap.Uint64("session_id", e.SessionID),
				zap.Error(err))
		}
	}
	return nil
}

// Register wires all analytics epilogues into the bus.
func Register(bus shared.EventSubscriber, stats analytics.Repository, logger *zap.Logger) error {
	if err := bus.Subscribe(shared.EventQuestCompleted, NewOnQuestCompleted(stats, logger).Handle); err != nil {
		return err
	}
	if err := bus.Subscribe(shared.EventMentorshipScheduled, NewOnMentorshipScheduled(stats, logger).Handle); err != nil {
		return err
	}
	return bus.Subscribe(shared.EventCollaborationStarted, NewOnCollaborationStarted(stats, logger).Handle)
}
