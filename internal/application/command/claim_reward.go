package command

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/reward"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// ClaimRewardCommand claims an available reward. Claim is a status transition
// only; the escrowed funds were already debited at grant time and custody is
// handled outside this core.
type ClaimRewardCommand struct {
	Recipient shared.Address
	RewardID  uint64
}

// ClaimRewardHandler handles ClaimRewardCommand.
type ClaimRewardHandler struct {
	rewards reward.Repository
	bus     shared.EventPublisher
	clock   shared.Clock
}

// NewClaimRewardHandler creates the handler.
func NewClaimRewardHandler(rewards reward.Repository, bus shared.EventPublisher, clock shared.Clock) *ClaimRewardHandler {
	return &ClaimRewardHandler{rewards: rewards, bus: bus, clock: clock}
}

// Handle executes the transition. An unknown id and a caller that is not the
// recorded recipient fail identically with ErrRewardNotFound, so a claimant
// cannot probe for other users' reward ids.
func (h *ClaimRewardHandler) Handle(ctx context.Context, cmd ClaimRewardCommand) error {
	if _, err := h.rewards.Claim(ctx, cmd.RewardID, cmd.Recipient); err != nil {
		return err
	}

	publish(h.bus, shared.NewRewardClaimedEvent(cmd.RewardID, cmd.Recipient, h.clock()))
	return nil
}
