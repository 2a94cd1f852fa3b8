// Package identity owns user profile records. All other components reference
// users by account address and never duplicate profile fields.
package identity

import (
	"time"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Profile is the authoritative record for one registered account address.
// A profile is created exactly once per address and never deleted.
type Profile struct {
	// Address is the account address. Unique, immutable once created.
	Address shared.Address

	// Username is the display name chosen at registration.
	Username string

	// Bio is free-form profile text.
	Bio string

	// Skills are ordered skill tags. Duplicates are allowed.
	Skills []string

	// JoinedAt is the registration timestamp (host clock).
	JoinedAt time.Time

	// QuestsCompleted is the cumulative count of successful completions.
	QuestsCompleted int

	// CurrentStreak counts consecutive completions in the current run.
	CurrentStreak int

	// LongestStreak is the historical maximum of CurrentStreak.
	LongestStreak int

	// MentorshipCount is the number of mentorship sessions this user
	// participates in, as mentor or mentee. The id lists themselves are
	// owned by the engagement component.
	MentorshipCount int

	// CollaborationCount is the number of collaborations this user joined
	// while registered.
	CollaborationCount int

	// Reputation is monotonically non-decreasing outside admin override.
	Reputation int

	// IsMentor marks the account as an approved mentor (admin-gated).
	IsMentor bool

	// IsSponsor marks the account as an approved sponsor (admin-gated).
	IsSponsor bool
}

// NewProfile creates a profile with all counters zeroed.
func NewProfile(addr shared.Address, username, bio string, skills []string, joinedAt time.Time) *Profile {
	return &Profile{
		Address:  addr,
		Username: username,
		Bio:      bio,
		Skills:   append([]string(nil), skills...),
		JoinedAt: joinedAt,
	}
}

// ApplyCompletion folds one successful quest completion into the profile
// counters. LongestStreak is raised to the new CurrentStreak when exceeded,
// so LongestStreak >= CurrentStreak holds after every completion.
func (p *Profile) ApplyCompletion(difficulty shared.Difficulty) {
	p.QuestsCompleted++
	p.CurrentStreak++
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.Reputation += difficulty.ReputationPoints()
}

// AddMentorship counts one more mentorship session for this user.
func (p *Profile) AddMentorship() {
	p.MentorshipCount++
}

// AddCollaboration counts one more collaboration session for this user.
func (p *Profile) AddCollaboration() {
	p.CollaborationCount++
}

// Clone returns a detached deep copy. Read accessors hand out clones so
// callers can never alias registry state.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	return &cp
}
