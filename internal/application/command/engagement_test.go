package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/quest-registry/internal/domain/identity"
	"github.com/questforge/quest-registry/internal/domain/shared"
	"github.com/questforge/quest-registry/internal/infrastructure/persistence/memory"
)

type engagementFixture struct {
	users    *memory.IdentityRepository
	sessions *memory.EngagementRepository
	bus      *captureBus

	mentorship    *ScheduleMentorshipHandler
	collaboration *StartCollaborationHandler
}

func newEngagementFixture(t *testing.T) *engagementFixture {
	t.Helper()

	f := &engagementFixture{
		users:    memory.NewIdentityRepository(),
		sessions: memory.NewEngagementRepository(),
		bus:      &captureBus{},
	}
	clock := shared.FixedClock(testNow)
	f.mentorship = NewScheduleMentorshipHandler(f.users, f.sessions, f.bus, clock)
	f.collaboration = NewStartCollaborationHandler(f.users, f.sessions, f.bus, clock)
	return f
}

func (f *engagementFixture) addProfile(t *testing.T, addr shared.Address, mentor bool) {
	t.Helper()
	p := identity.NewProfile(addr, addr.String()[:8], "", nil, testNow)
	p.IsMentor = mentor
	require.NoError(t, f.users.Create(context.Background(), p))
}

func TestScheduleMentorshipHappyPath(t *testing.T) {
	f := newEngagementFixture(t)
	f.addProfile(t, alice, true)
	f.addProfile(t, bob, false)
	ctx := context.Background()

	id, err := f.mentorship.Handle(ctx, ScheduleMentorshipCommand{
		Mentor:          alice,
		Mentee:          bob,
		Topic:           "interfaces",
		ScheduledAt:     testNow.Add(24 * time.Hour),
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	mentor, err := f.users.Get(ctx, alice)
	require.NoError(t, err)
	mentee, err := f.users.Get(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, mentor.MentorshipCount)
	assert.Equal(t, 1, mentee.MentorshipCount)

	require.Len(t, f.bus.events, 1)
	e, ok := f.bus.events[0].(shared.MentorshipScheduledEvent)
	require.True(t, ok)
	assert.Equal(t, 90, e.DurationMinutes)
}

func TestScheduleMentorshipRejectsNegativeDuration(t *testing.T) {
	f := newEngagementFixture(t)
	f.addProfile(t, alice, true)
	f.addProfile(t, bob, false)
	ctx := context.Background()

	// A negative duration would drive the mentee's learning hours below
	// zero through the scheduled event, so it must fail validation before
	// anything mutates.
	_, err := f.mentorship.Handle(ctx, ScheduleMentorshipCommand{
		Mentor:          alice,
		Mentee:          bob,
		Topic:           "interfaces",
		ScheduledAt:     testNow,
		DurationMinutes: -120,
	})
	assert.ErrorIs(t, err, shared.ErrNegativeValue)

	mentor, err := f.users.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 0, mentor.MentorshipCount)
	assert.Empty(t, f.bus.events)
}

func TestScheduleMentorshipPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("mentor unregistered", func(t *testing.T) {
		f := newEngagementFixture(t)
		f.addProfile(t, bob, false)

		_, err := f.mentorship.Handle(ctx, ScheduleMentorshipCommand{Mentor: alice, Mentee: bob})
		assert.ErrorIs(t, err, shared.ErrUserNotFound)
	})

	t.Run("mentee unregistered", func(t *testing.T) {
		f := newEngagementFixture(t)
		f.addProfile(t, alice, true)

		_, err := f.mentorship.Handle(ctx, ScheduleMentorshipCommand{Mentor: alice, Mentee: bob})
		assert.ErrorIs(t, err, shared.ErrUserNotFound)
	})

	t.Run("missing mentor flag", func(t *testing.T) {
		f := newEngagementFixture(t)
		f.addProfile(t, alice, false)
		f.addProfile(t, bob, false)

		_, err := f.mentorship.Handle(ctx, ScheduleMentorshipCommand{Mentor: alice, Mentee: bob})
		assert.ErrorIs(t, err, shared.ErrInsufficientPermissions)

		// A rejected schedule leaves counters and session lists untouched.
		p, err := f.users.Get(ctx, alice)
		require.NoError(t, err)
		assert.Zero(t, p.MentorshipCount)
		count, err := f.sessions.MentorshipCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestSelfMentorshipCountsTwice(t *testing.T) {
	f := newEngagementFixture(t)
	f.addProfile(t, alice, true)
	ctx := context.Background()

	id, err := f.mentorship.Handle(ctx, ScheduleMentorshipCommand{
		Mentor: alice,
		Mentee: alice,
		Topic:  "rubber ducking",
	})
	require.NoError(t, err)

	p, err := f.users.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, p.MentorshipCount)

	ids, err := f.sessions.UserMentorshipIDs(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{id, id}, ids)
}

func TestStartCollaborationNormalizesParticipants(t *testing.T) {
	f := newEngagementFixture(t)
	f.addProfile(t, alice, false)
	f.addProfile(t, bob, false)
	ctx := context.Background()

	// Duplicates collapse and the initiator leads the participant list;
	// carol is unregistered and still joins the session.
	id, err := f.collaboration.Handle(ctx, StartCollaborationCommand{
		Initiator:    alice,
		Participants: []shared.Address{bob, alice, carol, bob},
		Topic:        "team quest",
	})
	require.NoError(t, err)

	s, err := f.sessions.GetCollaboration(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []shared.Address{alice, bob, carol}, s.Participants)

	// Profile counters move only for registered participants.
	pa, err := f.users.Get(ctx, alice)
	require.NoError(t, err)
	pb, err := f.users.Get(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, pa.CollaborationCount)
	assert.Equal(t, 1, pb.CollaborationCount)

	// The session list covers everyone, registered or not.
	ids, err := f.sessions.UserCollaborationIDs(ctx, carol)
	require.NoError(t, err)
	assert.Equal(t, []uint64{id}, ids)
}

func TestStartCollaborationRequiresRegisteredInitiator(t *testing.T) {
	f := newEngagementFixture(t)

	_, err := f.collaboration.Handle(context.Background(), StartCollaborationCommand{
		Initiator:    alice,
		Participants: []shared.Address{bob},
	})
	assert.ErrorIs(t, err, shared.ErrUserNotFound)
	assert.Empty(t, f.bus.events)
}
