package query

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/engagement"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// SessionQuery reads mentorship and collaboration sessions.
type SessionQuery struct {
	sessions engagement.Repository
}

// NewSessionQuery creates the query.
func NewSessionQuery(sessions engagement.Repository) *SessionQuery {
	return &SessionQuery{sessions: sessions}
}

// MentorshipSessionOf returns a snapshot of the session.
// Returns shared.ErrSessionNotFound for unknown ids.
func (q *SessionQuery) MentorshipSessionOf(ctx context.Context, id uint64) (*engagement.MentorshipSession, error) {
	return q.sessions.GetMentorship(ctx, id)
}

// CollaborationSessionOf returns a snapshot of the session.
// Returns shared.ErrSessionNotFound for unknown ids.
func (q *SessionQuery) CollaborationSessionOf(ctx context.Context, id uint64) (*engagement.CollaborationSession, error) {
	return q.sessions.GetCollaboration(ctx, id)
}

// MentorshipSessionsOf returns the user's mentorship session ids.
func (q *SessionQuery) MentorshipSessionsOf(ctx context.Context, user shared.Address) ([]uint64, error) {
	return q.sessions.UserMentorshipIDs(ctx, user)
}

// CollaborationsOf returns the user's collaboration session ids.
func (q *SessionQuery) CollaborationsOf(ctx context.Context, user shared.Address) ([]uint64, error) {
	return q.sessions.UserCollaborationIDs(ctx, user)
}
