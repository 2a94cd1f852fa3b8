// Package query contains the read accessors (CQRS - Queries). Every accessor
// returns a detached snapshot, never a live reference into registry state.
package query

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// ProfileQuery reads user profiles.
type ProfileQuery struct {
	users identity.Repository
}

// NewProfileQuery creates the query.
func NewProfileQuery(users identity.Repository) *ProfileQuery {
	return &ProfileQuery{users: users}
}

// ProfileOf returns a snapshot of the user's profile.
// Returns shared.ErrUserNotFound if the address is unregistered.
func (q *ProfileQuery) ProfileOf(ctx context.Context, user shared.Address) (*identity.Profile, error) {
	return q.users.Get(ctx, user)
}
