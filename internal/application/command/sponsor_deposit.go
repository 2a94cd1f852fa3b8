package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/questforge/quest-registry/internal/domain/reward"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// SponsorDepositCommand credits a sponsor's pool. The pool is created on
// first deposit; a zero amount is accepted and is effectively a no-op.
type SponsorDepositCommand struct {
	Sponsor shared.Address
	Amount  decimal.Decimal
}

// Validate validates the command.
func (c SponsorDepositCommand) Validate() error {
	if !c.Sponsor.IsValid() {
		return shared.ErrInvalidAddress
	}
	if c.Amount.IsNegative() {
		return shared.NewDomainError("reward", "Deposit", shared.ErrNegativeValue, "deposit amount cannot be negative")
	}
	return nil
}

// SponsorDepositHandler handles SponsorDepositCommand.
type SponsorDepositHandler struct {
	rewards reward.Repository
}

// NewSponsorDepositHandler creates the handler.
func NewSponsorDepositHandler(rewards reward.Repository) *SponsorDepositHandler {
	return &SponsorDepositHandler{rewards: rewards}
}

// Handle executes the transition.
func (h *SponsorDepositHandler) Handle(ctx context.Context, cmd SponsorDepositCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.rewards.Deposit(ctx, cmd.Sponsor, cmd.Amount)
}
