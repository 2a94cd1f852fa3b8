// Package quest owns quest definitions and the append-only completion ledger,
// per quest and per user. It depends on the identity registry to validate
// actors but never writes identity state directly.
package quest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Status describes the lifecycle state of a quest. There is no background
// expiry job: the deadline and the completion cap are enforced lazily on the
// completion path.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// Quest is a quest definition. Its numeric id is assigned sequentially at
// creation time and never reused.
type Quest struct {
	ID           uint64
	Title        string
	Description  string
	Type         shared.QuestType
	Difficulty   shared.Difficulty
	RewardAmount decimal.Decimal
	Sponsor      shared.Address
	CreatedAt    time.Time

	// ExpiresAt is the optional completion deadline.
	ExpiresAt *time.Time

	// Status never changes after creation in this core; the completed and
	// expired values exist for external consumers of the quest record. The
	// cap and the deadline are enforced lazily on the completion path.
	Status Status

	// CompletionCount is the running number of committed completions.
	CompletionCount int

	// MaxCompletions is the optional completion cap.
	MaxCompletions *int

	Requirements []string
	Tags         []string
}

// IsExpired reports whether the deadline, if any, has passed.
func (q *Quest) IsExpired(now time.Time) bool {
	return q.ExpiresAt != nil && now.After(*q.ExpiresAt)
}

// CapReached reports whether the completion cap, if any, has been hit.
func (q *Quest) CapReached() bool {
	return q.MaxCompletions != nil && q.CompletionCount >= *q.MaxCompletions
}

// Clone returns a detached deep copy for snapshot reads.
func (q *Quest) Clone() *Quest {
	cp := *q
	if q.ExpiresAt != nil {
		t := *q.ExpiresAt
		cp.ExpiresAt = &t
	}
	if q.MaxCompletions != nil {
		n := *q.MaxCompletions
		cp.MaxCompletions = &n
	}
	cp.Requirements = append([]string(nil), q.Requirements...)
	cp.Tags = append([]string(nil), q.Tags...)
	return &cp
}

// Completion is one entry in the append-only completion ledger. Records are
// never mutated after creation; for a given (quest, user) pair at most one
// record exists.
type Completion struct {
	QuestID uint64

	// Seq is the 0-based index of this record within the quest's ledger.
	Seq int

	User        shared.Address
	CompletedAt time.Time
	Proof       string

	// MentorFeedback is optional review text; empty when none was given.
	MentorFeedback string

	// Partners lists collaboration partner addresses supplied by the caller.
	Partners []shared.Address
}

// Clone returns a detached copy.
func (c *Completion) Clone() *Completion {
	cp := *c
	cp.Partners = append([]shared.Address(nil), c.Partners...)
	return &cp
}
