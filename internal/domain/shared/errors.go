// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external
// dependencies beyond the crypto primitives used by value objects.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation    = errors.New("validation error")
	ErrInvalidID     = errors.New("invalid ID")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyValue    = errors.New("value cannot be empty")
	ErrNegativeValue = errors.New("value cannot be negative")

	// State errors
	ErrInvalidState     = errors.New("invalid state")
	ErrAlreadyProcessed = errors.New("already processed")
	ErrExpired          = errors.New("expired")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "identity", "quest", "reward"
	Op      string // Operation that failed, e.g., "Register", "Complete"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Identity registry errors
var (
	ErrAlreadyRegistered = NewDomainError("identity", "Register", ErrAlreadyExists, "address already registered")
	ErrUserNotFound      = NewDomainError("identity", "Find", ErrNotFound, "user not found")
	ErrInvalidAddress    = NewDomainError("identity", "Validate", ErrInvalidID, "invalid account address")
)

// Quest registry errors.
//
// ErrQuestNotFound is returned both for an unknown quest id and for a quest
// whose status is no longer active; ErrQuestAlreadyCompleted covers both a
// duplicate completion by the same user and a completion cap that has been
// reached. The overloads are kept for compatibility with the source contract;
// the distinct messages keep logs unambiguous.
var (
	ErrQuestNotFound         = NewDomainError("quest", "Find", ErrNotFound, "quest not found")
	ErrQuestExpired          = NewDomainError("quest", "Complete", ErrExpired, "quest deadline has passed")
	ErrQuestAlreadyCompleted = NewDomainError("quest", "Complete", ErrAlreadyExists, "quest already completed by user")
	ErrInvalidQuestType      = NewDomainError("quest", "Validate", ErrInvalidInput, "invalid quest type")
	ErrInvalidDifficulty     = NewDomainError("quest", "Validate", ErrInvalidInput, "difficulty must be between 1 and 5")

	// Overload aliases: chaining through the canonical kinds keeps
	// errors.Is(err, ErrQuestNotFound) and errors.Is(err, ErrQuestAlreadyCompleted)
	// true for the reused conditions.
	ErrQuestNotActive  = NewDomainError("quest", "Complete", ErrQuestNotFound, "quest is not active")
	ErrQuestCapReached = NewDomainError("quest", "Complete", ErrQuestAlreadyCompleted, "quest completion cap reached")
)

// Engagement coordinator errors
var (
	ErrSessionNotFound         = NewDomainError("engagement", "Find", ErrNotFound, "session not found")
	ErrInsufficientPermissions = NewDomainError("engagement", "Schedule", ErrForbidden, "caller lacks required role")
)

// Reward accounting errors
var (
	ErrInsufficientBalance  = NewDomainError("reward", "Reserve", ErrInvalidState, "sponsor pool balance is insufficient")
	ErrRewardNotFound       = NewDomainError("reward", "Find", ErrNotFound, "reward not found")
	ErrPoolNotFound         = NewDomainError("reward", "Find", ErrNotFound, "sponsor pool not found")
	ErrRewardAlreadyClaimed = NewDomainError("reward", "Claim", ErrAlreadyProcessed, "reward already claimed")
)

// Analytics aggregator errors
var (
	ErrAnalyticsNotFound = NewDomainError("analytics", "Find", ErrNotFound, "no analytics recorded for key")
)

// Platform errors
var (
	ErrNotAdmin           = NewDomainError("platform", "Authorize", ErrUnauthorized, "caller is not the platform admin")
	ErrAlreadyInitialized = NewDomainError("platform", "Initialize", ErrAlreadyExists, "platform already initialized")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue)
}
