package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/questforge/quest-registry/internal/domain/reward"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// CreateRewardCommand reserves a reward from the sponsor's pool. The amount
// is debited now, at grant time; claiming later only flips status. The quest
// reference is recorded as given and not validated against the quest registry.
type CreateRewardCommand struct {
	Sponsor     shared.Address
	Recipient   shared.Address
	Type        reward.Type
	Amount      decimal.Decimal
	QuestID     *uint64
	Description string
}

// Validate validates the command.
func (c CreateRewardCommand) Validate() error {
	if !c.Sponsor.IsValid() || !c.Recipient.IsValid() {
		return shared.ErrInvalidAddress
	}
	if !c.Type.IsValid() {
		return shared.NewDomainError("reward", "Create", shared.ErrInvalidInput, "invalid reward type")
	}
	if c.Amount.IsNegative() {
		return shared.NewDomainError("reward", "Create", shared.ErrNegativeValue, "reward amount cannot be negative")
	}
	return nil
}

// CreateRewardHandler handles CreateRewardCommand.
type CreateRewardHandler struct {
	rewards reward.Repository
	bus     shared.EventPublisher
	clock   shared.Clock
}

// NewCreateRewardHandler creates the handler.
func NewCreateRewardHandler(rewards reward.Repository, bus shared.EventPublisher, clock shared.Clock) *CreateRewardHandler {
	return &CreateRewardHandler{rewards: rewards, bus: bus, clock: clock}
}

// Handle executes the transition and returns the assigned reward id.
func (h *CreateRewardHandler) Handle(ctx context.Context, cmd CreateRewardCommand) (uint64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock()
	id, err := h.rewards.Reserve(ctx, &reward.Reward{
		Type:        cmd.Type,
		Amount:      cmd.Amount,
		Sponsor:     cmd.Sponsor,
		Recipient:   cmd.Recipient,
		QuestID:     cmd.QuestID,
		CreatedAt:   now,
		Description: cmd.Description,
	})
	if err != nil {
		return 0, err
	}

	publish(h.bus, shared.NewRewardCreatedEvent(
		id, cmd.Sponsor, cmd.Recipient, cmd.Amount.String(), cmd.QuestID, now))
	return id, nil
}
