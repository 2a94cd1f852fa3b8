package identity

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/shared"
)

// Repository defines the storage contract for profiles. Implementations live
// in infrastructure/persistence. Get returns a detached copy; mutations go
// through Update, which replaces the stored record wholesale. Transitions
// validate fully before calling Update, so a failed transition never reaches
// the mutation step.
type Repository interface {
	// Create stores a new profile.
	// Returns shared.ErrAlreadyRegistered if the address already has one.
	Create(ctx context.Context, p *Profile) error

	// Get returns a detached copy of the profile.
	// Returns shared.ErrUserNotFound if the address is unregistered.
	Get(ctx context.Context, addr shared.Address) (*Profile, error)

	// Exists reports whether the address is registered.
	Exists(ctx context.Context, addr shared.Address) (bool, error)

	// Update replaces the stored profile.
	// Returns shared.ErrUserNotFound if the address is unregistered.
	Update(ctx context.Context, p *Profile) error

	// Count returns the number of registered users.
	Count(ctx context.Context) (uint64, error)
}
