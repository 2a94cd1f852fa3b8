package query

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/quest"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// QuestQuery reads quest definitions and the completion ledger.
type QuestQuery struct {
	quests quest.Repository
}

// NewQuestQuery creates the query.
func NewQuestQuery(quests quest.Repository) *QuestQuery {
	return &QuestQuery{quests: quests}
}

// QuestOf returns a snapshot of the quest.
// Returns shared.ErrQuestNotFound for unknown ids.
func (q *QuestQuery) QuestOf(ctx context.Context, id uint64) (*quest.Quest, error) {
	return q.quests.Get(ctx, id)
}

// CompletionsOf returns snapshots of the quest's ledger in append order.
// Returns shared.ErrQuestNotFound for unknown ids.
func (q *QuestQuery) CompletionsOf(ctx context.Context, questID uint64) ([]*quest.Completion, error) {
	return q.quests.Completions(ctx, questID)
}

// UserCompletionsOf returns the ids of quests the user completed, in
// completion order. An address with no completions yields an empty list.
func (q *QuestQuery) UserCompletionsOf(ctx context.Context, user shared.Address) ([]uint64, error) {
	return q.quests.UserQuestIDs(ctx, user)
}
