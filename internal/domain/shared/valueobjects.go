// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
)

// ═══════════════════════════════════════════════════════════════════════════
// Address Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Address represents an account address: a 0x-prefixed 20-byte hex string.
// Addresses are stored in EIP-55 mixed-case checksum form so that map lookups
// stay stable regardless of the casing callers supply.
type Address string

var addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValid checks if the address has the expected hex shape.
func (a Address) IsValid() bool {
	return addressRegex.MatchString(string(a))
}

// String returns the string representation.
func (a Address) String() string {
	return string(a)
}

// IsZero reports whether the address is empty.
func (a Address) IsZero() bool {
	return a == ""
}

// NewAddress parses and checksum-normalizes an account address.
func NewAddress(s string) (Address, error) {
	a := Address(strings.TrimSpace(s))
	if !a.IsValid() {
		return "", ErrInvalidAddress
	}
	return Address("0x" + checksumHex(strings.ToLower(string(a[2:])))), nil
}

// MustAddress is a NewAddress variant for literals in wiring and tests.
// It panics on invalid input.
func MustAddress(s string) Address {
	a, err := NewAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// checksumHex applies EIP-55 casing: each hex letter is uppercased when the
// corresponding nibble of keccak256(lowercase address) is >= 8.
func checksumHex(lower string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - ('a' - 'A')
		}
	}
	return string(out)
}

// ═══════════════════════════════════════════════════════════════════════════
// Quest Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// QuestType classifies a quest.
type QuestType string

const (
	QuestTypeTutorial      QuestType = "tutorial"
	QuestTypeCoding        QuestType = "coding"
	QuestTypeCollaboration QuestType = "collaboration"
	QuestTypeMentorship    QuestType = "mentorship"
	QuestTypeHackathon     QuestType = "hackathon"
)

// QuestTypes lists all valid quest types in their canonical order. The order
// doubles as the per-type counter index used by the analytics aggregator.
var QuestTypes = []QuestType{
	QuestTypeTutorial,
	QuestTypeCoding,
	QuestTypeCollaboration,
	QuestTypeMentorship,
	QuestTypeHackathon,
}

// IsValid checks if the quest type is one of the enumerated kinds.
func (t QuestType) IsValid() bool {
	switch t {
	case QuestTypeTutorial, QuestTypeCoding, QuestTypeCollaboration,
		QuestTypeMentorship, QuestTypeHackathon:
		return true
	default:
		return false
	}
}

// Index returns the counter index for this quest type, or -1 if unknown.
func (t QuestType) Index() int {
	for i, qt := range QuestTypes {
		if qt == t {
			return i
		}
	}
	return -1
}

// String returns the string representation.
func (t QuestType) String() string {
	return string(t)
}

// Difficulty rates a quest from 1 (trivial) to 5 (expert).
type Difficulty int

const (
	MinDifficulty Difficulty = 1
	MaxDifficulty Difficulty = 5
)

// IsValid checks if the difficulty is within the valid range.
func (d Difficulty) IsValid() bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}

// Int returns the underlying int value.
func (d Difficulty) Int() int {
	return int(d)
}

// ReputationPoints returns the reputation awarded for completing a quest of
// this difficulty.
func (d Difficulty) ReputationPoints() int {
	return int(d) * 10
}

// NewDifficulty creates a Difficulty with validation.
func NewDifficulty(v int) (Difficulty, error) {
	d := Difficulty(v)
	if !d.IsValid() {
		return 0, ErrInvalidDifficulty
	}
	return d, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Engagement Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// ActivityKind routes an engagement record to one of the per-user counters.
// Unrecognized kinds are silently ignored by the aggregator.
type ActivityKind string

const (
	ActivityLogin           ActivityKind = "login"
	ActivityQuestCompletion ActivityKind = "quest_completion"
	ActivityMentorship      ActivityKind = "mentorship"
	ActivityCollaboration   ActivityKind = "collaboration"
)

// ═══════════════════════════════════════════════════════════════════════════
// Clock
// ═══════════════════════════════════════════════════════════════════════════

// Clock supplies the current time to transitions. The execution host is the
// source of truth for time; nothing inside a transition reads a wall clock
// directly, which keeps temporal preconditions deterministic under test.
type Clock func() time.Time

// SystemClock returns the process wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a Clock pinned to the given instant.
func FixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}
