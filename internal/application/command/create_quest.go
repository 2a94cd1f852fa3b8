package command

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/questforge/quest-registry/internal/domain/quest"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// CreateQuestCommand defines a new quest. Any valid address may create one;
// there is no registration or sponsor-flag requirement on this path.
type CreateQuestCommand struct {
	Creator      shared.Address
	Title        string
	Description  string
	Type         shared.QuestType
	Difficulty   int
	RewardAmount decimal.Decimal

	// ExpiresAt is the optional completion deadline.
	ExpiresAt *time.Time

	// MaxCompletions is the optional completion cap.
	MaxCompletions *int

	Requirements []string
	Tags         []string
}

// Validate validates the command.
func (c CreateQuestCommand) Validate() error {
	if !c.Creator.IsValid() {
		return shared.ErrInvalidAddress
	}
	if !c.Type.IsValid() {
		return shared.ErrInvalidQuestType
	}
	if _, err := shared.NewDifficulty(c.Difficulty); err != nil {
		return err
	}
	if c.RewardAmount.IsNegative() {
		return shared.NewDomainError("quest", "Create", shared.ErrNegativeValue, "reward amount cannot be negative")
	}
	if c.MaxCompletions != nil && *c.MaxCompletions <= 0 {
		return shared.NewDomainError("quest", "Create", shared.ErrInvalidInput, "completion cap must be positive")
	}
	return nil
}

// CreateQuestHandler handles CreateQuestCommand.
type CreateQuestHandler struct {
	quests quest.Repository
	bus    shared.EventPublisher
	clock  shared.Clock
}

// NewCreateQuestHandler creates the handler.
func NewCreateQuestHandler(quests quest.Repository, bus shared.EventPublisher, clock shared.Clock) *CreateQuestHandler {
	return &CreateQuestHandler{quests: quests, bus: bus, clock: clock}
}

// Handle executes the transition and returns the assigned quest id.
func (h *CreateQuestHandler) Handle(ctx context.Context, cmd CreateQuestCommand) (uint64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock()
	q := &quest.Quest{
		Title:          cmd.Title,
		Description:    cmd.Description,
		Type:           cmd.Type,
		Difficulty:     shared.Difficulty(cmd.Difficulty),
		RewardAmount:   cmd.RewardAmount,
		Sponsor:        cmd.Creator,
		CreatedAt:      now,
		ExpiresAt:      cmd.ExpiresAt,
		Status:         quest.StatusActive,
		MaxCompletions: cmd.MaxCompletions,
		Requirements:   cmd.Requirements,
		Tags:           cmd.Tags,
	}

	id, err := h.quests.Create(ctx, q)
	if err != nil {
		return 0, err
	}

	publish(h.bus, shared.NewQuestCreatedEvent(id, cmd.Creator, cmd.Type, cmd.RewardAmount.String(), now))
	return id, nil
}
