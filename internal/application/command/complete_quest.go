package command

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/quest"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// CompleteQuestCommand records a completion of a quest by a registered user.
type CompleteQuestCommand struct {
	Actor    shared.Address
	QuestID  uint64
	Proof    string
	Partners []shared.Address
}

// CompleteQuestResult reports the counters after a committed completion.
type CompleteQuestResult struct {
	QuestID         uint64
	CompletionCount int
	QuestsCompleted int
	CurrentStreak   int
	LongestStreak   int
	Reputation      int
}

// CompleteQuestHandler handles CompleteQuestCommand. The transition touches
// the quest table, the quest's ledger, the user's completed-id list, and the
// user's profile counters as one atomic unit.
type CompleteQuestHandler struct {
	users  identity.Repository
	quests quest.Repository
	bus    shared.EventPublisher
	clock  shared.Clock
}

// NewCompleteQuestHandler creates the handler.
func NewCompleteQuestHandler(users identity.Repository, quests quest.Repository, bus shared.EventPublisher, clock shared.Clock) *CompleteQuestHandler {
	return &CompleteQuestHandler{users: users, quests: quests, bus: bus, clock: clock}
}

// Handle executes the transition. Preconditions are checked strictly in
// contract order; each is a distinct failure mode, and nothing mutates until
// all of them pass.
func (h *CompleteQuestHandler) Handle(ctx context.Context, cmd CompleteQuestCommand) (*CompleteQuestResult, error) {
	// (a) actor must have a profile
	profile, err := h.users.Get(ctx, cmd.Actor)
	if err != nil {
		return nil, err
	}

	// (b) quest must exist
	q, err := h.quests.Get(ctx, cmd.QuestID)
	if err != nil {
		return nil, err
	}

	// (c) quest must still be active
	if q.Status != quest.StatusActive {
		return nil, shared.ErrQuestNotActive
	}

	// (d) deadline, when set, must not have passed
	now := h.clock()
	if q.IsExpired(now) {
		return nil, shared.ErrQuestExpired
	}

	// (e) completion cap, when set, must not be reached
	if q.CapReached() {
		return nil, shared.ErrQuestCapReached
	}

	// (f) the actor must not already appear in the quest's ledger
	done, err := h.quests.HasCompleted(ctx, cmd.QuestID, cmd.Actor)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, shared.ErrQuestAlreadyCompleted
	}

	// All preconditions passed: mutate.
	rec := &quest.Completion{
		QuestID:     cmd.QuestID,
		User:        cmd.Actor,
		CompletedAt: now,
		Proof:       cmd.Proof,
		Partners:    cmd.Partners,
	}
	if err := h.quests.AppendCompletion(ctx, rec); err != nil {
		return nil, err
	}

	profile.ApplyCompletion(q.Difficulty)
	if err := h.users.Update(ctx, profile); err != nil {
		return nil, err
	}

	publish(h.bus, shared.NewQuestCompletedEvent(
		cmd.QuestID, cmd.Actor, q.Type, q.Difficulty, q.Tags, cmd.Partners, now))

	return &CompleteQuestResult{
		QuestID:         cmd.QuestID,
		CompletionCount: q.CompletionCount + 1,
		QuestsCompleted: profile.QuestsCompleted,
		CurrentStreak:   profile.CurrentStreak,
		LongestStreak:   profile.LongestStreak,
		Reputation:      profile.Reputation,
	}, nil
}
