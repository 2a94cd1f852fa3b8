package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/quest-registry/internal/domain/engagement"
	"github.com/questforge/quest-registry/internal/domain/shared"
)

func TestCreateMentorshipAppendsBothParties(t *testing.T) {
	repo := NewEngagementRepository()
	ctx := context.Background()

	id, err := repo.CreateMentorship(ctx, &engagement.MentorshipSession{
		Mentor:      alice,
		Mentee:      bob,
		Topic:       "goroutines",
		ScheduledAt: time.Now(),
		Status:      engagement.MentorshipScheduled,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	for _, party := range []shared.Address{alice, bob} {
		ids, err := repo.UserMentorshipIDs(ctx, party)
		require.NoError(t, err)
		assert.Equal(t, []uint64{id}, ids)
	}
}

func TestSelfMentorshipListsIDTwice(t *testing.T) {
	repo := NewEngagementRepository()
	ctx := context.Background()

	id, err := repo.CreateMentorship(ctx, &engagement.MentorshipSession{
		Mentor: alice,
		Mentee: alice,
		Status: engagement.MentorshipScheduled,
	})
	require.NoError(t, err)

	ids, err := repo.UserMentorshipIDs(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{id, id}, ids)
}

func TestCreateCollaborationAppendsEveryParticipant(t *testing.T) {
	repo := NewEngagementRepository()
	ctx := context.Background()

	id, err := repo.CreateCollaboration(ctx, &engagement.CollaborationSession{
		Initiator:    alice,
		Participants: []shared.Address{alice, bob, carol},
		Topic:        "hackathon prep",
		StartedAt:    time.Now(),
		Status:       engagement.CollaborationActive,
	})
	require.NoError(t, err)

	for _, p := range []shared.Address{alice, bob, carol} {
		ids, err := repo.UserCollaborationIDs(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []uint64{id}, ids)
	}

	count, err := repo.CollaborationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSessionLookupsAreIndependentSequences(t *testing.T) {
	repo := NewEngagementRepository()
	ctx := context.Background()

	mid, err := repo.CreateMentorship(ctx, &engagement.MentorshipSession{Mentor: alice, Mentee: bob})
	require.NoError(t, err)
	cid, err := repo.CreateCollaboration(ctx, &engagement.CollaborationSession{
		Initiator:    alice,
		Participants: []shared.Address{alice},
	})
	require.NoError(t, err)

	// Mentorships and collaborations number independently from 1.
	assert.Equal(t, uint64(1), mid)
	assert.Equal(t, uint64(1), cid)

	_, err = repo.GetMentorship(ctx, 99)
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
	_, err = repo.GetCollaboration(ctx, 99)
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)

	s, err := repo.GetMentorship(ctx, mid)
	require.NoError(t, err)
	assert.Equal(t, bob, s.Mentee)

	c, err := repo.GetCollaboration(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, alice, c.Initiator)
}
