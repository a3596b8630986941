package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestAttempts(t *testing.T) *attemptEngine {
	t.Helper()

	return &attemptEngine{
		store:       newTestStore(t),
		maxAttempts: testMaxAttempts,
		cooldown:    testCooldown,
	}
}

func TestRecordWrongAnswerCooldownTrigger(t *testing.T) {
	ctx := context.Background()
	eng := newTestAttempts(t)
	now := time.Unix(1_700_000_000, 0).UTC()

	// Three wrong answers within a minute: the third one triggers cooldown.
	count, until, err := eng.recordWrongAnswer(ctx, 1, now)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Nil(t, until)

	count, until, err = eng.recordWrongAnswer(ctx, 1, now.Add(20*time.Second))
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Nil(t, until)

	third := now.Add(40 * time.Second)
	count, until, err = eng.recordWrongAnswer(ctx, 1, third)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NotNil(t, until)
	require.Equal(t, third.Add(testCooldown).Unix(), until.Unix())
}

func TestRecordWrongAnswerBelowLimitNoCooldown(t *testing.T) {
	ctx := context.Background()
	eng := newTestAttempts(t)
	now := time.Unix(1_700_000_000, 0).UTC()

	for i := range testMaxAttempts - 1 {
		count, until, err := eng.recordWrongAnswer(ctx, 1, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.Equal(t, i+1, count)
		require.Nil(t, until)
	}
}

func TestRecordWrongAnswerStaleWindowRestartsCount(t *testing.T) {
	ctx := context.Background()
	eng := newTestAttempts(t)
	now := time.Unix(1_700_000_000, 0).UTC()

	_, _, err := eng.recordWrongAnswer(ctx, 1, now)
	require.NoError(t, err)
	_, _, err = eng.recordWrongAnswer(ctx, 1, now.Add(time.Minute))
	require.NoError(t, err)

	// More than the attempt window since the window opened: count restarts
	// at 1 regardless of prior failures, so no cooldown fires either.
	late := now.Add(attemptWindow + time.Second)
	count, until, err := eng.recordWrongAnswer(ctx, 1, late)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Nil(t, until)
}

func TestCheckCooldown(t *testing.T) {
	ctx := context.Background()
	eng := newTestAttempts(t)
	now := time.Unix(1_700_000_000, 0).UTC()

	t.Run("unknown user not in cooldown", func(t *testing.T) {
		in, remaining, err := eng.checkCooldown(ctx, 99, now)
		require.NoError(t, err)
		require.False(t, in)
		require.Zero(t, remaining)
	})

	t.Run("reports remaining while active", func(t *testing.T) {
		for i := range testMaxAttempts {
			_, _, err := eng.recordWrongAnswer(ctx, 1, now.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
		}

		check := now.Add(10 * time.Second)
		in, remaining, err := eng.checkCooldown(ctx, 1, check)
		require.NoError(t, err)
		require.True(t, in)
		require.Greater(t, remaining, time.Duration(0))
		require.LessOrEqual(t, remaining, testCooldown)
	})

	t.Run("lazy expiry resets attempts", func(t *testing.T) {
		in, remaining, err := eng.checkCooldown(ctx, 1, now.Add(time.Hour))
		require.NoError(t, err)
		require.False(t, in)
		require.Zero(t, remaining)

		user, err := eng.store.Users().GetUser(ctx, 1)
		require.NoError(t, err)
		require.Zero(t, user.AttemptsCount)
		require.Nil(t, user.AttemptsWindowStart)
		require.Nil(t, user.CooldownUntil)
	})
}
