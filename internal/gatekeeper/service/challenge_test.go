package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueChallengeShape(t *testing.T) {
	gen := NewChallengeGenerator()

	for range 50 {
		ch := gen.Issue(1)
		require.Len(t, ch.Options, challengeOptionCount)
		require.Contains(t, ch.Options, ch.Correct)
		require.NotEmpty(t, ch.Prompt)

		// Exactly one option is correct and there are no duplicates.
		seen := make(map[string]bool, len(ch.Options))
		for _, opt := range ch.Options {
			require.False(t, seen[opt], "duplicate option %q", opt)
			seen[opt] = true
		}
	}
}

func TestAnswerMatchesLatestSession(t *testing.T) {
	gen := NewChallengeGenerator()

	first := gen.Issue(1)
	second := gen.Issue(1)

	// Only the latest challenge counts. When the tokens differ the old one
	// must be rejected.
	if first.Correct != second.Correct {
		correct, exists := gen.Answer(1, first.Correct)
		require.True(t, exists)
		require.False(t, correct)
	}

	correct, exists := gen.Answer(1, second.Correct)
	require.True(t, exists)
	require.True(t, correct)
}

func TestAnswerWithoutSession(t *testing.T) {
	gen := NewChallengeGenerator()

	_, exists := gen.Answer(42, "🌙")
	require.False(t, exists)

	gen.Issue(42)
	gen.Clear(42)
	_, exists = gen.Answer(42, "🌙")
	require.False(t, exists)
}

func TestSessionsAreIndependent(t *testing.T) {
	gen := NewChallengeGenerator()

	a := gen.Issue(1)
	b := gen.Issue(2)

	gen.Clear(1)

	_, exists := gen.Answer(1, a.Correct)
	require.False(t, exists)

	correct, exists := gen.Answer(2, b.Correct)
	require.True(t, exists)
	require.True(t, correct)
}
