package engagement

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Repository defines the storage contract for session records. Session ids
// are assigned by per-kind monotonic counters that double as totals. The
// per-user session-id lists are owned here, not by the identity registry,
// because collaboration participants are not validated against it.
type Repository interface {
	// CreateMentorship stores a new session, appends its id to both
	// parties' session lists and returns the assigned id.
	CreateMentorship(ctx context.Context, s *MentorshipSession) (uint64, error)

	// GetMentorship returns a detached copy of the session.
	// Returns shared.ErrSessionNotFound for unknown ids.
	GetMentorship(ctx context.Context, id uint64) (*MentorshipSession, error)

	// CreateCollaboration stores a new session, appends its id to every
	// participant's session list and returns the assigned id.
	CreateCollaboration(ctx context.Context, s *CollaborationSession) (uint64, error)

	// GetCollaboration returns a detached copy of the session.
	// Returns shared.ErrSessionNotFound for unknown ids.
	GetCollaboration(ctx context.Context, id uint64) (*CollaborationSession, error)

	// UserMentorshipIDs returns the ids of mentorship sessions the user
	// participates in, in schedule order.
	UserMentorshipIDs(ctx context.Context, user shared.Address) ([]uint64, error)

	// UserCollaborationIDs returns the ids of collaborations the user
	// joined, in start order.
	UserCollaborationIDs(ctx context.Context, user shared.Address) ([]uint64, error)

	// MentorshipCount returns the number of mentorship sessions scheduled.
	MentorshipCount(ctx context.Context) (uint64, error)

	// CollaborationCount returns the number of collaborations started.
	CollaborationCount(ctx context.Context) (uint64, error)
}
