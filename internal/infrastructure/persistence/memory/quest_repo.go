package memory

import (
	"context"
	"sync"

	"github.com/questforge/quest-registry/internal/domain/quest"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// QuestRepository is the quest registry's state container: quest definitions,
// the per-quest completion ledgers, and the per-user completed-quest-id lists.
type QuestRepository struct {
	mu          sync.RWMutex
	quests      map[uint64]*quest.Quest
	ledgers     map[uint64][]*quest.Completion
	byUser      map[shared.Address][]uint64
	totalQuests uint64
}

// NewQuestRepository creates an empty container.
func NewQuestRepository() *QuestRepository {
	return &QuestRepository{
		quests:  make(map[uint64]*quest.Quest),
		ledgers: make(map[uint64][]*quest.Completion),
		byUser:  make(map[shared.Address][]uint64),
	}
}

// Create assigns the next sequential id (1-based, never reused) and stores
// the quest.
func (r *QuestRepository) Create(_ context.Context, q *quest.Quest) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totalQuests++
	stored := q.Clone()
	stored.ID = r.totalQuests
	r.quests[stored.ID] = stored
	return stored.ID, nil
}

// Get returns a detached copy of the quest.
func (r *QuestRepository) Get(_ context.Context, id uint64) (*quest.Quest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quests[id]
	if !ok {
		return nil, shared.ErrQuestNotFound
	}
	return q.Clone(), nil
}

// AppendCompletion appends the record to the quest's ledger and adjusts the
// quest counters. Duplicate membership is re-checked under the lock; the
// command layer has already validated ordering-sensitive preconditions.
func (r *QuestRepository) AppendCompletion(_ context.Context, c *quest.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quests[c.QuestID]
	if !ok {
		return shared.ErrQuestNotFound
	}
	for _, rec := range r.ledgers[c.QuestID] {
		if rec.User == c.User {
			return shared.ErrQuestAlreadyCompleted
		}
	}

	stored := c.Clone()
	stored.Seq = len(r.ledgers[c.QuestID])
	r.ledgers[c.QuestID] = append(r.ledgers[c.QuestID], stored)
	r.byUser[c.User] = append(r.byUser[c.User], c.QuestID)

	// Status stays active even at the cap; the cap is enforced lazily on
	// the next completion attempt, which reports the cap error kind.
	q.CompletionCount++
	return nil
}

// Completions returns detached copies of the quest's ledger in append order.
func (r *QuestRepository) Completions(_ context.Context, questID uint64) ([]*quest.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.quests[questID]; !ok {
		return nil, shared.ErrQuestNotFound
	}
	ledger := r.ledgers[questID]
	out := make([]*quest.Completion, len(ledger))
	for i, rec := range ledger {
		out[i] = rec.Clone()
	}
	return out, nil
}

// UserQuestIDs returns the user's completed-quest ids in completion order.
func (r *QuestRepository) UserQuestIDs(_ context.Context, user shared.Address) ([]uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]uint64(nil), r.byUser[user]...), nil
}

// HasCompleted reports whether the user appears in the quest's ledger.
func (r *QuestRepository) HasCompleted(_ context.Context, questID uint64, user shared.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.byUser[user] {
		if id == questID {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of quests created.
func (r *QuestRepository) Count(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalQuests, nil
}
