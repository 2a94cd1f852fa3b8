package command

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// RoleFlag selects which admin-gated profile flag to flip.
type RoleFlag string

const (
	RoleMentor  RoleFlag = "mentor"
	RoleSponsor RoleFlag = "sponsor"
)

// SetRoleFlagCommand flips a role flag on a user's profile. This is the only
// mutation path where the caller is not the owner of the mutated state: the
// caller must be the platform admin captured at initialization.
type SetRoleFlagCommand struct {
	Caller shared.Address
	User   shared.Address
	Flag   RoleFlag
	Value  bool
}

// Validate validates the command.
func (c SetRoleFlagCommand) Validate() error {
	if c.Flag != RoleMentor && c.Flag != RoleSponsor {
		return shared.NewDomainError("identity", "SetRoleFlag", shared.ErrInvalidInput, "unknown role flag")
	}
	return nil
}

// SetRoleFlagHandler handles SetRoleFlagCommand.
type SetRoleFlagHandler struct {
	users identity.Repository
	admin shared.Address
}

// NewSetRoleFlagHandler creates the handler bound to the platform admin.
func NewSetRoleFlagHandler(users identity.Repository, admin shared.Address) *SetRoleFlagHandler {
	return &SetRoleFlagHandler{users: users, admin: admin}
}

// Handle executes the transition. A pure flag flip: no counters are touched
// and no event is emitted.
func (h *SetRoleFlagHandler) Handle(ctx context.Context, cmd SetRoleFlagCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Caller != h.admin {
		return shared.ErrNotAdmin
	}

	profile, err := h.users.Get(ctx, cmd.User)
	if err != nil {
		return err
	}

	switch cmd.Flag {
	case RoleMentor:
		profile.IsMentor = cmd.Value
	case RoleSponsor:
		profile.IsSponsor = cmd.Value
	}
	return h.users.Update(ctx, profile)
}
