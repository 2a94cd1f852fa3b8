package quest

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Repository defines the storage contract for quests and their completion
// ledger. Ids are assigned by the store's monotonic counter, which doubles as
// the quest total; freed ids do not exist because nothing is ever deleted.
type Repository interface {
	// Create stores a new quest and returns its assigned sequential id.
	Create(ctx context.Context, q *Quest) (uint64, error)

	// Get returns a detached copy of the quest.
	// Returns shared.ErrQuestNotFound for unknown ids.
	Get(ctx context.Context, id uint64) (*Quest, error)

	// AppendCompletion appends a record to the quest's ledger, increments
	// the quest's completion counter and flips status to completed when the
	// cap is reached. The record's Seq is assigned by the store.
	// Returns shared.ErrQuestAlreadyCompleted if the user already appears in
	// the quest's ledger, shared.ErrQuestNotFound for unknown ids.
	AppendCompletion(ctx context.Context, c *Completion) error

	// Completions returns detached copies of the quest's ledger in append
	// order. Returns shared.ErrQuestNotFound for unknown ids.
	Completions(ctx context.Context, questID uint64) ([]*Completion, error)

	// UserQuestIDs returns the ids of quests the user has completed, in
	// completion order. Unknown users yield an empty list.
	UserQuestIDs(ctx context.Context, user shared.Address) ([]uint64, error)

	// HasCompleted reports whether the user appears in the quest's ledger.
	// The scan is linear over the user's small per-quest list; correctness
	// depends only on exact-match membership, not order.
	HasCompleted(ctx context.Context, questID uint64, user shared.Address) (bool, error)

	// Count returns the number of quests created.
	Count(ctx context.Context) (uint64, error)
}
