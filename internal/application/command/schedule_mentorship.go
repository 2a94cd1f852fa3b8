package command

import (
	"context"
	"time"

	"github.com/questforge/quest-registry/internal/domain/engagement"
	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// ScheduleMentorshipCommand schedules a session between a mentor and a
// mentee. The scheduled time is taken as given: it is not required to be in
// the future, and mentor and mentee may be the same address.
type ScheduleMentorshipCommand struct {
	Mentor          shared.Address
	Mentee          shared.Address
	Topic           string
	ScheduledAt     time.Time
	DurationMinutes int
}

// Validate validates the command. Duration feeds the mentee's learning-hour
// totals, so a negative value is rejected; zero is accepted.
func (c ScheduleMentorshipCommand) Validate() error {
	if !c.Mentor.IsValid() || !c.Mentee.IsValid() {
		return shared.ErrInvalidAddress
	}
	if c.DurationMinutes < 0 {
		return shared.NewDomainError("engagement", "Schedule", shared.ErrNegativeValue, "session duration cannot be negative")
	}
	return nil
}

// ScheduleMentorshipHandler handles ScheduleMentorshipCommand.
type ScheduleMentorshipHandler struct {
	users    identity.Repository
	sessions engagement.Repository
	bus      shared.EventPublisher
	clock    shared.Clock
}

// NewScheduleMentorshipHandler creates the handler.
func NewScheduleMentorshipHandler(users identity.Repository, sessions engagement.Repository, bus shared.EventPublisher, clock shared.Clock) *ScheduleMentorshipHandler {
	return &ScheduleMentorshipHandler{users: users, sessions: sessions, bus: bus, clock: clock}
}

// Handle executes the transition and returns the assigned session id.
func (h *ScheduleMentorshipHandler) Handle(ctx context.Context, cmd ScheduleMentorshipCommand) (uint64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	mentor, err := h.users.Get(ctx, cmd.Mentor)
	if err != nil {
		return 0, err
	}
	mentee, err := h.users.Get(ctx, cmd.Mentee)
	if err != nil {
		return 0, err
	}
	if !mentor.IsMentor {
		return 0, shared.ErrInsufficientPermissions
	}

	id, err := h.sessions.CreateMentorship(ctx, &engagement.MentorshipSession{
		Mentor:          cmd.Mentor,
		Mentee:          cmd.Mentee,
		Topic:           cmd.Topic,
		ScheduledAt:     cmd.ScheduledAt,
		DurationMinutes: cmd.DurationMinutes,
		Status:          engagement.MentorshipScheduled,
	})
	if err != nil {
		return 0, err
	}

	// Both parties' profile counters move; a self-mentorship counts twice
	// on the single profile, mirroring the two ledger list appends.
	if cmd.Mentor == cmd.Mentee {
		mentor.AddMentorship()
		mentor.AddMentorship()
		if err := h.users.Update(ctx, mentor); err != nil {
			return 0, err
		}
	} else {
		mentor.AddMentorship()
		mentee.AddMentorship()
		if err := h.users.Update(ctx, mentor); err != nil {
			return 0, err
		}
		if err := h.users.Update(ctx, mentee); err != nil {
			return 0, err
		}
	}

	publish(h.bus, shared.NewMentorshipScheduledEvent(
		id, cmd.Mentor, cmd.Mentee, cmd.Topic, cmd.DurationMinutes, h.clock()))
	return id, nil
}
