package memory

import (
	"context"
	"sync"

	"github.com/questforge/quest-registry/internal/domain/engagement"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// EngagementRepository is the engagement coordinator's state container. The
// per-user session-id lists live here, keyed by address regardless of
// registration status, because collaboration participants are not validated
// against the identity registry.
type EngagementRepository struct {
	mu                   sync.RWMutex
	mentorships          map[uint64]*engagement.MentorshipSession
	collaborations       map[uint64]*engagement.CollaborationSession
	mentorshipsByUser    map[shared.Address][]uint64
	collaborationsByUser map[shared.Address][]uint64
	totalMentorships     uint64
	totalCollaborations  uint64
}

// NewEngagementRepository creates an empty container.
func NewEngagementRepository() *EngagementRepository {
	return &EngagementRepository{
		mentorships:          make(map[uint64]*engagement.MentorshipSession),
		collaborations:       make(map[uint64]*engagement.CollaborationSession),
		mentorshipsByUser:    make(map[shared.Address][]uint64),
		collaborationsByUser: make(map[shared.Address][]uint64),
	}
}

// CreateMentorship assigns the next sequential id, stores the session and
// appends the id to both parties' session lists. Mentor and mentee may be the
// same address, in which case the list receives the id twice.
func (r *EngagementRepository) CreateMentorship(_ context.Context, s *engagement.MentorshipSession) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totalMentorships++
	stored := s.Clone()
	stored.ID = r.totalMentorships
	r.mentorships[stored.ID] = stored
	r.mentorshipsByUser[stored.Mentor] = append(r.mentorshipsByUser[stored.Mentor], stored.ID)
	r.mentorshipsByUser[stored.Mentee] = append(r.mentorshipsByUser[stored.Mentee], stored.ID)
	return stored.ID, nil
}

// GetMentorship returns a detached copy of the session.
func (r *EngagementRepository) GetMentorship(_ context.Context, id uint64) (*engagement.MentorshipSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.mentorships[id]
	if !ok {
		return nil, shared.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// CreateCollaboration assigns the next sequential id, stores the session and
// appends the id to every participant's session list. The participant set is
// expected to be normalized (deduplicated, initiator included).
func (r *EngagementRepository) CreateCollaboration(_ context.Context, s *engagement.CollaborationSession) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totalCollaborations++
	stored := s.Clone()
	stored.ID = r.totalCollaborations
	r.collaborations[stored.ID] = stored
	for _, p := range stored.Participants {
		r.collaborationsByUser[p] = append(r.collaborationsByUser[p], stored.ID)
	}
	return stored.ID, nil
}

// GetCollaboration returns a detached copy of the session.
func (r *EngagementRepository) GetCollaboration(_ context.Context, id uint64) (*engagement.CollaborationSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.collaborations[id]
	if !ok {
		return nil, shared.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// UserMentorshipIDs returns the user's mentorship session ids in schedule order.
func (r *EngagementRepository) UserMentorshipIDs(_ context.Context, user shared.Address) ([]uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]uint64(nil), r.mentorshipsByUser[user]...), nil
}

// UserCollaborationIDs returns the user's collaboration ids in start order.
func (r *EngagementRepository) UserCollaborationIDs(_ context.Context, user shared.Address) ([]uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]uint64(nil), r.collaborationsByUser[user]...), nil
}

// MentorshipCount returns the number of mentorship sessions scheduled.
func (r *EngagementRepository) MentorshipCount(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalMentorships, nil
}

// CollaborationCount returns the number of collaborations started.
func (r *EngagementRepository) CollaborationCount(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalCollaborations, nil
}
