package service

import (
	"math/rand/v2"
	"sync"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
)

const challengeOptionCount = 4

// challengePrompts are the verification prompts. Each pairs a prompt with the
// single correct token; the rest of the options are sampled from the decoys.
var challengePrompts = []struct {
	Prompt string
	Token  string
}{
	{"Tap the moon 🌙", "🌙"},
	{"Tap the sparkle ✨", "✨"},
	{"Tap the cat paw 🐾", "🐾"},
	{"Tap the star 🌟", "🌟"},
	{"Tap the dream cloud 💭", "💭"},
}

var challengeDecoys = []string{
	"🌸", "🦋", "🍃", "☁️", "🫧", "🪷", "🌿", "🧸", "💫", "🌷", "🪻", "🐚",
}

// ChallengeGenerator issues verification challenges and holds the correct
// token per user until answered or replaced. Sessions live in memory only: a
// process restart silently invalidates all in-flight challenges, which is an
// accepted tradeoff since reissuing is cheap.
type ChallengeGenerator struct {
	mu       sync.RWMutex
	sessions map[int64]string
}

func NewChallengeGenerator() *ChallengeGenerator {
	return &ChallengeGenerator{
		sessions: make(map[int64]string),
	}
}

// Issue creates a fresh challenge for the user, replacing any active session.
// Only the latest challenge per user is ever valid.
func (g *ChallengeGenerator) Issue(userID int64) domain.Challenge {
	pick := challengePrompts[rand.IntN(len(challengePrompts))]

	// Sample decoys that are not the correct token.
	pool := make([]string, 0, len(challengeDecoys))
	for _, d := range challengeDecoys {
		if d != pick.Token {
			pool = append(pool, d)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	options := append([]string{pick.Token}, pool[:challengeOptionCount-1]...)
	rand.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	g.mu.Lock()
	g.sessions[userID] = pick.Token
	g.mu.Unlock()

	return domain.Challenge{
		Prompt:  pick.Prompt,
		Options: options,
		Correct: pick.Token,
	}
}

// Answer checks the selected token against the active session. The second
// return reports whether a session existed at all; a missing session means
// the challenge expired (e.g. process restart) and must not count as an
// attempt. The session is left in place either way; the caller decides when
// to Clear it.
func (g *ChallengeGenerator) Answer(userID int64, selected string) (correct, exists bool) {
	g.mu.RLock()
	token, ok := g.sessions[userID]
	g.mu.RUnlock()

	if !ok {
		return false, false
	}
	return selected == token, true
}

// Clear removes the user's session on success, cancellation or cooldown.
func (g *ChallengeGenerator) Clear(userID int64) {
	g.mu.Lock()
	delete(g.sessions, userID)
	g.mu.Unlock()
}
