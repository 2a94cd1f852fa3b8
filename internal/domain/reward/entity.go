// Package reward owns sponsor pool balances and reward grants. Funds are
// reserved against the sponsor's pool when a reward is created, not when it
// is claimed; claiming only flips status. Actual fund custody lives outside
// this core.
package reward

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Type classifies what a reward was granted for.
type Type string

const (
	TypeQuestCompletion Type = "quest_completion"
	TypeStreakMilestone Type = "streak_milestone"
	TypeMentorship      Type = "mentorship"
)

// IsValid checks if the reward type is one of the enumerated kinds.
func (t Type) IsValid() bool {
	switch t {
	case TypeQuestCompletion, TypeStreakMilestone, TypeMentorship:
		return true
	default:
		return false
	}
}

// Status is the claim state of a reward.
type Status string

const (
	StatusAvailable Status = "available"
	StatusClaimed   Status = "claimed"
)

// Reward is one escrowed grant. The amount was debited from the sponsor's
// available balance at creation time; claim never moves funds again.
type Reward struct {
	ID        uint64
	Type      Type
	Amount    decimal.Decimal
	Sponsor   shared.Address
	Recipient shared.Address

	// QuestID optionally links the reward to a quest. The reference is not
	// validated against the quest registry.
	QuestID *uint64

	CreatedAt   time.Time
	Status      Status
	Description string
}

// Clone returns a detached copy for snapshot reads.
func (r *Reward) Clone() *Reward {
	cp := *r
	if r.QuestID != nil {
		id := *r.QuestID
		cp.QuestID = &id
	}
	return &cp
}

// SponsorPool tracks one sponsor's running deposits and the balance still
// reservable for new rewards. The structural invariant is
//
//	Available = TotalDeposited − Σ(amounts of rewards created from this pool)
//
// independent of claim status, and Available never goes negative.
type SponsorPool struct {
	Sponsor shared.Address

	// TotalDeposited is increase-only.
	TotalDeposited decimal.Decimal

	// Available is TotalDeposited minus reserved-for-rewards.
	Available decimal.Decimal
}

// NewSponsorPool creates an empty pool for a sponsor's first deposit.
func NewSponsorPool(sponsor shared.Address) *SponsorPool {
	return &SponsorPool{
		Sponsor:        sponsor,
		TotalDeposited: decimal.Zero,
		Available:      decimal.Zero,
	}
}

// Deposit credits both running totals.
func (p *SponsorPool) Deposit(amount decimal.Decimal) {
	p.TotalDeposited = p.TotalDeposited.Add(amount)
	p.Available = p.Available.Add(amount)
}

// CanReserve reports whether the pool can cover the amount.
func (p *SponsorPool) CanReserve(amount decimal.Decimal) bool {
	return p.Available.GreaterThanOrEqual(amount)
}

// Reserve debits the available balance. Callers must check CanReserve first;
// the store enforces it again under its own lock.
func (p *SponsorPool) Reserve(amount decimal.Decimal) {
	p.Available = p.Available.Sub(amount)
}

// Clone returns a detached copy.
func (p *SponsorPool) Clone() *SponsorPool {
	cp := *p
	return &cp
}
