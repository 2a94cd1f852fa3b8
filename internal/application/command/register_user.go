// Package command contains the guarded write transitions (CQRS commands).
// Every handler validates its preconditions fully before the first mutating
// store call, so a failed transition leaves all owned tables unchanged. The
// execution host serializes transitions; handlers never spawn concurrency.
package command

import (
	"context"

	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

// RegisterUserCommand creates a profile for an account address. Registration
// is deliberately not idempotent: a second call for the same address is a
// hard failure so history can never be silently overwritten.
type RegisterUserCommand struct {
	Actor    shared.Address
	Username string
	Bio      string
	Skills   []string
}

// Validate validates the command.
func (c RegisterUserCommand) Validate() error {
	if !c.Actor.IsValid() {
		return shared.ErrInvalidAddress
	}
	if c.Username == "" {
		return shared.NewDomainError("identity", "Register", shared.ErrEmptyValue, "username is required")
	}
	return nil
}

// RegisterUserHandler handles RegisterUserCommand.
type RegisterUserHandler struct {
	users identity.Repository
	bus   shared.EventPublisher
	clock shared.Clock
}

// NewRegisterUserHandler creates the handler.
func NewRegisterUserHandler(users identity.Repository, bus shared.EventPublisher, clock shared.Clock) *RegisterUserHandler {
	return &RegisterUserHandler{users: users, bus: bus, clock: clock}
}

// Handle executes the transition.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*identity.Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	profile := identity.NewProfile(cmd.Actor, cmd.Username, cmd.Bio, cmd.Skills, now)
	if err := h.users.Create(ctx, profile); err != nil {
		return nil, err
	}

	publish(h.bus, shared.NewUserRegisteredEvent(cmd.Actor, cmd.Username, now))
	return profile.Clone(), nil
}

// publish fans an event out to subscribers. Fan-out is advisory: the
// transition has already committed by the time it runs.
func publish(bus shared.EventPublisher, e shared.Event) {
	_ = bus.Publish(e)
}
