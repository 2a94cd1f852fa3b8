package command

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/engagement"
	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// StartCollaborationCommand opens a collaboration session. Only the initiator
// is validated against the identity registry; other participants and the
// optional quest reference are recorded as given.
type StartCollaborationCommand struct {
	Initiator    shared.Address
	Participants []shared.Address
	QuestID      *uint64
	Topic        string
}

// StartCollaborationHandler handles StartCollaborationCommand.
type StartCollaborationHandler struct {
	users    identity.Repository
	sessions engagement.Repository
	bus      shared.EventPublisher
	clock    shared.Clock
}

// NewStartCollaborationHandler creates the handler.
func NewStartCollaborationHandler(users identity.Repository, sessions engagement.Repository, bus shared.EventPublisher, clock shared.Clock) *StartCollaborationHandler {
	return &StartCollaborationHandler{users: users, sessions: sessions, bus: bus, clock: clock}
}

// Handle executes the transition and returns the assigned session id.
func (h *StartCollaborationHandler) Handle(ctx context.Context, cmd StartCollaborationCommand) (uint64, error) {
	initiator, err := h.users.Get(ctx, cmd.Initiator)
	if err != nil {
		return 0, err
	}

	participants := engagement.NormalizeParticipants(cmd.Initiator, cmd.Participants)
	now := h.clock()

	id, err := h.sessions.CreateCollaboration(ctx, &engagement.CollaborationSession{
		Initiator:    cmd.Initiator,
		Participants: participants,
		QuestID:      cmd.QuestID,
		Topic:        cmd.Topic,
		StartedAt:    now,
		Status:       engagement.CollaborationActive,
	})
	if err != nil {
		return 0, err
	}

	// Profile counters move only for participants that are registered; the
	// ledger lists in the engagement container cover everyone.
	initiator.AddCollaboration()
	if err := h.users.Update(ctx, initiator); err != nil {
		return 0, err
	}
	for _, p := range participants {
		if p == cmd.Initiator {
			continue
		}
		profile, err := h.users.Get(ctx, p)
		if err != nil {
			continue
		}
		profile.AddCollaboration()
		if err := h.users.Update(ctx, profile); err != nil {
			return 0, err
		}
	}

	publish(h.bus, shared.NewCollaborationStartedEvent(
		id, cmd.Initiator, participants, cmd.QuestID, cmd.Topic, now))
	return id, nil
}
