package command

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/quest"
	"github.com/questforge/quest-registry/internal/domain/shared"
	"github.com/questforge/quest-registry/internal/infrastructure/persistence/memory"
)

var (
	alice = shared.MustAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	bob   = shared.MustAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
	carol = shared.MustAddress("0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB")

	testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
)

// captureBus records every published event for assertions.
type captureBus struct {
	events []shared.Event
}

func (b *captureBus) Publish(e shared.Event) error {
	b.events = append(b.events, e)
	return nil
}

type completeQuestFixture struct {
	users  *memory.IdentityRepository
	quests *memory.QuestRepository
	bus    *captureBus

	register *RegisterUserHandler
	create   *CreateQuestHandler
	complete *CompleteQuestHandler
}

func newCompleteQuestFixture(t *testing.T) *completeQuestFixture {
	t.Helper()

	f := &completeQuestFixture{
		users:  memory.NewIdentityRepository(),
		quests: memory.NewQuestRepository(),
		bus:    &captureBus{},
	}
	clock := shared.FixedClock(testNow)
	f.register = NewRegisterUserHandler(f.users, f.bus, clock)
	f.create = NewCreateQuestHandler(f.quests, f.bus, clock)
	f.complete = NewCompleteQuestHandler(f.users, f.quests, f.bus, clock)
	return f
}

func (f *completeQuestFixture) registerUser(t *testing.T, addr shared.Address, name string) {
	t.Helper()
	_, err := f.register.Handle(context.Background(), RegisterUserCommand{Actor: addr, Username: name})
	require.NoError(t, err)
}

func (f *completeQuestFixture) createQuest(t *testing.T, mutate func(*CreateQuestCommand)) uint64 {
	t.Helper()
	cmd := CreateQuestCommand{
		Creator:      carol,
		Title:        "build a cache",
		Type:         shared.QuestTypeCoding,
		Difficulty:   3,
		RewardAmount: decimal.NewFromInt(25),
		Tags:         []string{"go", "caching"},
	}
	if mutate != nil {
		mutate(&cmd)
	}
	id, err := f.create.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return id
}

func TestCompleteQuestHappyPath(t *testing.T) {
	f := newCompleteQuestFixture(t)
	f.registerUser(t, alice, "alice")
	id := f.createQuest(t, nil)

	res, err := f.complete.Handle(context.Background(), CompleteQuestCommand{
		Actor:   alice,
		QuestID: id,
		Proof:   "ipfs://deadbeef",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.CompletionCount)
	assert.Equal(t, 1, res.QuestsCompleted)
	assert.Equal(t, 1, res.CurrentStreak)
	assert.Equal(t, 1, res.LongestStreak)
	assert.Equal(t, 30, res.Reputation)

	// The committed transition raised exactly one completion event, with
	// the quest's tags carried as skills.
	var completed []shared.QuestCompletedEvent
	for _, e := range f.bus.events {
		if qc, ok := e.(shared.QuestCompletedEvent); ok {
			completed = append(completed, qc)
		}
	}
	require.Len(t, completed, 1)
	assert.Equal(t, id, completed[0].QuestID)
	assert.Equal(t, alice, completed[0].User)
	assert.Equal(t, []string{"go", "caching"}, completed[0].Skills)
	assert.Equal(t, testNow, completed[0].OccurredAt())
}

func TestCompleteQuestPreconditionOrder(t *testing.T) {
	// Each case layers one more satisfied precondition on top of the
	// previous; the handler must report the first unsatisfied one.
	ctx := context.Background()

	t.Run("unregistered actor", func(t *testing.T) {
		f := newCompleteQuestFixture(t)
		id := f.createQuest(t, nil)

		_, err := f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: id})
		assert.ErrorIs(t, err, shared.ErrUserNotFound)
	})

	t.Run("unknown quest", func(t *testing.T) {
		f := newCompleteQuestFixture(t)
		f.registerUser(t, alice, "alice")

		_, err := f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: 77})
		assert.ErrorIs(t, err, shared.ErrQuestNotFound)
	})

	t.Run("inactive quest reports not active", func(t *testing.T) {
		f := newCompleteQuestFixture(t)
		f.registerUser(t, alice, "alice")

		id, err := f.quests.Create(ctx, &quest.Quest{
			Sponsor:    carol,
			Title:      "withdrawn",
			Type:       shared.QuestTypeCoding,
			Difficulty: 3,
			Status:     quest.StatusExpired,
		})
		require.NoError(t, err)

		_, err = f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: id})
		assert.ErrorIs(t, err, shared.ErrQuestNotActive)
		assert.ErrorIs(t, err, shared.ErrQuestNotFound)
	})

	t.Run("cap reached reports already completed kind", func(t *testing.T) {
		f := newCompleteQuestFixture(t)
		f.registerUser(t, alice, "alice")
		f.registerUser(t, bob, "bob")

		cap := 1
		id := f.createQuest(t, func(c *CreateQuestCommand) {
			c.MaxCompletions = &cap
		})
		_, err := f.complete.Handle(ctx, CompleteQuestCommand{Actor: bob, QuestID: id})
		require.NoError(t, err)

		// The quest stays active at the cap; the attempt fails on the
		// cap precondition, which carries the already-completed kind.
		_, err = f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: id})
		assert.ErrorIs(t, err, shared.ErrQuestCapReached)
		assert.ErrorIs(t, err, shared.ErrQuestAlreadyCompleted)
		assert.NotErrorIs(t, err, shared.ErrQuestNotFound)
	})

	t.Run("expired quest", func(t *testing.T) {
		f := newCompleteQuestFixture(t)
		f.registerUser(t, alice, "alice")

		past := testNow.Add(-time.Minute)
		id := f.createQuest(t, func(c *CreateQuestCommand) {
			c.ExpiresAt = &past
		})

		_, err := f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: id})
		assert.ErrorIs(t, err, shared.ErrQuestExpired)
	})

	t.Run("repeat completion", func(t *testing.T) {
		f := newCompleteQuestFixture(t)
		f.registerUser(t, alice, "alice")
		id := f.createQuest(t, nil)

		_, err := f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: id})
		require.NoError(t, err)
		_, err = f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: id})
		assert.ErrorIs(t, err, shared.ErrQuestAlreadyCompleted)
	})
}

func TestCompleteQuestDeadlineIsInclusive(t *testing.T) {
	f := newCompleteQuestFixture(t)
	f.registerUser(t, alice, "alice")

	// A deadline equal to the current instant has not passed yet.
	at := testNow
	id := f.createQuest(t, func(c *CreateQuestCommand) {
		c.ExpiresAt = &at
	})

	_, err := f.complete.Handle(context.Background(), CompleteQuestCommand{Actor: alice, QuestID: id})
	assert.NoError(t, err)
}

func TestRejectedCompletionLeavesStateUntouched(t *testing.T) {
	f := newCompleteQuestFixture(t)
	f.registerUser(t, alice, "alice")

	past := testNow.Add(-time.Minute)
	id := f.createQuest(t, func(c *CreateQuestCommand) {
		c.ExpiresAt = &past
	})

	ctx := context.Background()
	published := len(f.bus.events)

	_, err := f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: id})
	require.ErrorIs(t, err, shared.ErrQuestExpired)

	// No ledger entry, no profile movement, no event.
	ledger, err := f.quests.Completions(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, ledger)

	profile, err := f.users.Get(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, profile.QuestsCompleted)
	assert.Zero(t, profile.Reputation)

	assert.Len(t, f.bus.events, published)
}

func TestStreakGrowsAcrossQuests(t *testing.T) {
	f := newCompleteQuestFixture(t)
	f.registerUser(t, alice, "alice")
	ctx := context.Background()

	var last *CompleteQuestResult
	for i := 0; i < 3; i++ {
		id := f.createQuest(t, func(c *CreateQuestCommand) { c.Difficulty = 1 })
		res, err := f.complete.Handle(ctx, CompleteQuestCommand{Actor: alice, QuestID: id})
		require.NoError(t, err)
		last = res
	}

	assert.Equal(t, 3, last.QuestsCompleted)
	assert.Equal(t, 3, last.CurrentStreak)
	assert.Equal(t, 3, last.LongestStreak)
	assert.Equal(t, 30, last.Reputation)
}

func TestCreateQuestValidation(t *testing.T) {
	f := newCompleteQuestFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateQuestCommand)
		want   error
	}{
		{"bad type", func(c *CreateQuestCommand) { c.Type = "speedrun" }, shared.ErrInvalidQuestType},
		{"difficulty too low", func(c *CreateQuestCommand) { c.Difficulty = 0 }, shared.ErrInvalidDifficulty},
		{"difficulty too high", func(c *CreateQuestCommand) { c.Difficulty = 6 }, shared.ErrInvalidDifficulty},
		{"negative reward", func(c *CreateQuestCommand) { c.RewardAmount = decimal.NewFromInt(-1) }, shared.ErrNegativeValue},
		{"zero cap", func(c *CreateQuestCommand) { z := 0; c.MaxCompletions = &z }, shared.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := CreateQuestCommand{
				Creator:      carol,
				Title:        "q",
				Type:         shared.QuestTypeTutorial,
				Difficulty:   1,
				RewardAmount: decimal.Zero,
			}
			tc.mutate(&cmd)
			_, err := f.create.Handle(ctx, cmd)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Quest creation does not require registration.
	id, err := f.create.Handle(ctx, CreateQuestCommand{
		Creator:      carol,
		Title:        "open to anyone",
		Type:         shared.QuestTypeTutorial,
		Difficulty:   1,
		RewardAmount: decimal.Zero,
	})
	require.NoError(t, err)
	q, err := f.quests.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, quest.StatusActive, q.Status)
}

func TestRegisterUserTwice(t *testing.T) {
	f := newCompleteQuestFixture(t)
	ctx := context.Background()

	p, err := f.register.Handle(ctx, RegisterUserCommand{Actor: alice, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, testNow, p.JoinedAt)

	_, err = f.register.Handle(ctx, RegisterUserCommand{Actor: alice, Username: "alice"})
	assert.ErrorIs(t, err, shared.ErrAlreadyRegistered)

	_, err = f.register.Handle(ctx, RegisterUserCommand{Actor: bob, Username: ""})
	assert.ErrorIs(t, err, shared.ErrEmptyValue)
}

func TestSetRoleFlagRequiresAdmin(t *testing.T) {
	users := memory.NewIdentityRepository()
	h := NewSetRoleFlagHandler(users, carol)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, identity.NewProfile(alice, "alice", "", nil, testNow)))

	err := h.Handle(ctx, SetRoleFlagCommand{Caller: bob, User: alice, Flag: RoleMentor, Value: true})
	assert.ErrorIs(t, err, shared.ErrNotAdmin)

	require.NoError(t, h.Handle(ctx, SetRoleFlagCommand{Caller: carol, User: alice, Flag: RoleMentor, Value: true}))
	require.NoError(t, h.Handle(ctx, SetRoleFlagCommand{Caller: carol, User: alice, Flag: RoleSponsor, Value: true}))

	p, err := users.Get(ctx, alice)
	require.NoError(t, err)
	assert.True(t, p.IsMentor)
	assert.True(t, p.IsSponsor)

	// Revocation is the same transition with Value false.
	require.NoError(t, h.Handle(ctx, SetRoleFlagCommand{Caller: carol, User: alice, Flag: RoleMentor, Value: false}))
	p, err = users.Get(ctx, alice)
	require.NoError(t, err)
	assert.False(t, p.IsMentor)

	err = h.Handle(ctx, SetRoleFlagCommand{Caller: carol, User: bob, Flag: RoleMentor, Value: true})
	assert.ErrorIs(t, err, shared.ErrUserNotFound)

	err = h.Handle(ctx, SetRoleFlagCommand{Caller: carol, User: alice, Flag: "auditor", Value: true})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
