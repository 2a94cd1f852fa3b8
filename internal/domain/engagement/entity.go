// Package engagement owns mentorship and collaboration session records. It
// depends on the identity registry for participant and permission checks.
package engagement

import (
	"time"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// MentorshipStatus is the lifecycle state of a mentorship session. No core
// transition retires a session: the completed/cancelled values exist for the
// off-chain mirror's benefit only.
type MentorshipStatus string

const (
	MentorshipScheduled MentorshipStatus = "scheduled"
	MentorshipCompleted MentorshipStatus = "completed"
	MentorshipCancelled MentorshipStatus = "cancelled"
)

// CollaborationStatus is the lifecycle state of a collaboration session.
type CollaborationStatus string

const (
	CollaborationActive    CollaborationStatus = "active"
	CollaborationCompleted CollaborationStatus = "completed"
	CollaborationCancelled CollaborationStatus = "cancelled"
)

// MentorshipSession pairs a mentor with a mentee at a scheduled time. The
// mentor must carry the mentor flag at schedule time; mentor and mentee are
// allowed to be the same address.
type MentorshipSession struct {
	ID              uint64
	Mentor          shared.Address
	Mentee          shared.Address
	Topic           string
	ScheduledAt     time.Time
	DurationMinutes int
	Status          MentorshipStatus

	// Feedback is optional session feedback; empty when none was left.
	Feedback string
}

// Clone returns a detached copy for snapshot reads.
func (s *MentorshipSession) Clone() *MentorshipSession {
	cp := *s
	return &cp
}

// CollaborationSession groups participants working together, optionally on a
// linked quest. The initiator is always a member and the participant set is
// deduplicated.
type CollaborationSession struct {
	ID           uint64
	Initiator    shared.Address
	Participants []shared.Address

	// QuestID optionally links the session to a quest. The reference is not
	// validated against the quest registry.
	QuestID *uint64

	Topic     string
	StartedAt time.Time
	EndedAt   *time.Time
	Status    CollaborationStatus
}

// Clone returns a detached deep copy.
func (s *CollaborationSession) Clone() *CollaborationSession {
	cp := *s
	cp.Participants = append([]shared.Address(nil), s.Participants...)
	if s.QuestID != nil {
		id := *s.QuestID
		cp.QuestID = &id
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		cp.EndedAt = &t
	}
	return &cp
}

// NormalizeParticipants deduplicates the participant set and guarantees the
// initiator is a member, preserving first-seen order.
func NormalizeParticipants(initiator shared.Address, participants []shared.Address) []shared.Address {
	seen := make(map[shared.Address]struct{}, len(participants)+1)
	out := make([]shared.Address, 0, len(participants)+1)

	add := func(a shared.Address) {
		if _, ok := seen[a]; ok {
			return
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}

	add(initiator)
	for _, p := range participants {
		add(p)
	}
	return out
}
