package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterMinInterval(t *testing.T) {
	rl := NewRateLimiter(300 * time.Millisecond)
	now := time.Unix(1_700_000_000, 0).UTC()

	require.True(t, rl.Allow(1, now))
	require.False(t, rl.Allow(1, now.Add(100*time.Millisecond)))
	require.False(t, rl.Allow(1, now.Add(299*time.Millisecond)))
	require.True(t, rl.Allow(1, now.Add(300*time.Millisecond)))
}

func TestRateLimiterPerUser(t *testing.T) {
	rl := NewRateLimiter(300 * time.Millisecond)
	now := time.Unix(1_700_000_000, 0).UTC()

	require.True(t, rl.Allow(1, now))
	require.True(t, rl.Allow(2, now))
	require.False(t, rl.Allow(1, now.Add(50*time.Millisecond)))
	require.False(t, rl.Allow(2, now.Add(50*time.Millisecond)))
}

func TestRateLimiterNoBurst(t *testing.T) {
	rl := NewRateLimiter(300 * time.Millisecond)
	now := time.Unix(1_700_000_000, 0).UTC()

	// Idle time does not accumulate extra allowance.
	require.True(t, rl.Allow(1, now))
	later := now.Add(10 * time.Second)
	require.True(t, rl.Allow(1, later))
	require.False(t, rl.Allow(1, later.Add(time.Millisecond)))
}
