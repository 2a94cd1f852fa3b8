// Package memory implements the per-component state containers. Each
// container holds its component's maps and monotonic counters behind one
// mutex; counters double as next-id generators and are never decremented.
//
// The execution host serializes transitions, so the locks here exist to keep
// individual store operations atomic under concurrent reads, not to order
// transitions. Transitions validate fully before the first mutating call, so
// a failed transition leaves every container untouched.
package memory

import (
	"context"
	"sync"

	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// IdentityRepository is the identity registry's state container.
type IdentityRepository struct {
	mu         sync.RWMutex
	profiles   map[shared.Address]*identity.Profile
	totalUsers uint64
}

// NewIdentityRepository creates an empty container.
func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{
		profiles: make(map[shared.Address]*identity.Profile),
	}
}

// Create stores a new profile and increments the global user counter.
func (r *IdentityRepository) Create(_ context.Context, p *identity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.Address]; ok {
		return shared.ErrAlreadyRegistered
	}
	r.profiles[p.Address] = p.Clone()
	r.totalUsers++
	return nil
}

// Get returns a detached copy of the profile.
func (r *IdentityRepository) Get(_ context.Context, addr shared.Address) (*identity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[addr]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return p.Clone(), nil
}

// Exists reports whether the address is registered.
func (r *IdentityRepository) Exists(_ context.Context, addr shared.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.profiles[addr]
	return ok, nil
}

// Update replaces the stored profile.
func (r *IdentityRepository) Update(_ context.Context, p *identity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.Address]; !ok {
		return shared.ErrUserNotFound
	}
	r.profiles[p.Address] = p.Clone()
	return nil
}

// Count returns the number of registered users.
func (r *IdentityRepository) Count(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalUsers, nil
}
