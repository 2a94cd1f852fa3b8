package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

func failN(n int) func(context.Context) error {
	count := 0
	return func(context.Context) error {
		count++
		if count <= n {
			return errBackend
		}
		return nil
	}
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New("test", WithFailureThreshold(3))
	ctx := context.Background()

	fn := func(context.Context) error { return errBackend }
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fn), errBackend)
	}

	require.Equal(t, StateOpen, cb.State())

	// While open the function is never invoked.
	invoked := false
	err := cb.Execute(ctx, func(context.Context) error {
		invoked = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, invoked)
}

func TestSuccessResetsConsecutiveFailures(t *testing.T) {
	cb := New("test", WithFailureThreshold(3))
	ctx := context.Background()

	fail := func(context.Context) error { return errBackend }
	ok := func(context.Context) error { return nil }

	require.Error(t, cb.Execute(ctx, fail))
	require.Error(t, cb.Execute(ctx, fail))
	require.NoError(t, cb.Execute(ctx, ok))
	require.Error(t, cb.Execute(ctx, fail))
	require.Error(t, cb.Execute(ctx, fail))

	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenClosesOnSuccess(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithSuccessThreshold(1),
		WithTimeout(10*time.Millisecond),
	)
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, func(context.Context) error { return errBackend }))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	// First probe after the timeout is allowed through and closes the circuit.
	require.NoError(t, cb.Execute(ctx, func(context.Context) error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenReopensOnFailure(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithTimeout(10*time.Millisecond),
	)
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, func(context.Context) error { return errBackend }))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Execute(ctx, func(context.Context) error { return errBackend }))
	assert.Equal(t, StateOpen, cb.State())
}

func TestStateChangeCallback(t *testing.T) {
	var transitions []string
	cb := New("mirror",
		WithFailureThreshold(1),
		WithOnStateChange(func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		}),
	)

	require.Error(t, cb.Execute(context.Background(), func(context.Context) error { return errBackend }))
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestIsFailurePredicateFiltersErrors(t *testing.T) {
	benign := errors.New("duplicate entry")
	cb := New("test",
		WithFailureThreshold(1),
		WithIsFailure(func(err error) bool { return !errors.Is(err, benign) }),
	)
	ctx := context.Background()

	// Errors the predicate waves through do not trip the breaker.
	require.Error(t, cb.Execute(ctx, func(context.Context) error { return benign }))
	assert.Equal(t, StateClosed, cb.State())

	require.Error(t, cb.Execute(ctx, func(context.Context) error { return errBackend }))
	assert.Equal(t, StateOpen, cb.State())
}

func TestResetRestoresClosedState(t *testing.T) {
	cb := New("test", WithFailureThreshold(1))
	require.Error(t, cb.Execute(context.Background(), func(context.Context) error { return errBackend }))
	require.Equal(t, StateOpen, cb.State())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
	assert.NoError(t, cb.Execute(context.Background(), failN(0)))
}
