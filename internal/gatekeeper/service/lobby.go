package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store"
)

// LobbyService is the per-user verification state machine: it consumes
// agreement, answer and cancel events and drives the lifecycle
// unverified → agreed → challenged → verified/cooldown.
type LobbyService struct {
	store      store.Store
	challenges *ChallengeGenerator
	attempts   *attemptEngine
	locks      *userLocks

	verifyTTL  time.Duration
	inviteLink string
}

type LobbyConfig struct {
	MaxAttempts int
	Cooldown    time.Duration
	VerifyTTL   time.Duration
	InviteLink  string
}

func NewLobbyService(st store.Store, challenges *ChallengeGenerator, cfg LobbyConfig) *LobbyService {
	return &LobbyService{
		store:      st,
		challenges: challenges,
		attempts: &attemptEngine{
			store:       st,
			maxAttempts: cfg.MaxAttempts,
			cooldown:    cfg.Cooldown,
		},
		locks:      &userLocks{},
		verifyTTL:  cfg.VerifyTTL,
		inviteLink: cfg.InviteLink,
	}
}

// Agree marks the user as having accepted the rules and issues a challenge.
// Re-agreeing is harmless; the timestamp only moves forward. Users mid-
// cooldown are shown the cooldown instead.
func (s *LobbyService) Agree(ctx context.Context, userID int64, now time.Time) (domain.Decision, error) {
	defer s.locks.lock(userID)()

	if dec, blocked, err := s.cooldownGate(ctx, userID, now); blocked || err != nil {
		return dec, err
	}

	if err := s.store.Users().SetAgreed(ctx, userID, now); err != nil {
		return nil, fmt.Errorf("failed to record agreement: %w", err)
	}

	return domain.ShowChallenge{Challenge: s.challenges.Issue(userID)}, nil
}

// SubmitAnswer resolves an answered challenge.
//
// Cooldown is checked first and wins. A missing session (restart, stale tap)
// reissues a fresh challenge without counting an attempt. A correct answer
// verifies the user and forgives all prior failures. A wrong answer counts
// against the window; hitting the limit clears the session and starts the
// cooldown, otherwise a replacement challenge is issued.
func (s *LobbyService) SubmitAnswer(ctx context.Context, userID int64, selected string, now time.Time) (domain.Decision, error) {
	defer s.locks.lock(userID)()

	if dec, blocked, err := s.cooldownGate(ctx, userID, now); blocked || err != nil {
		return dec, err
	}

	correct, exists := s.challenges.Answer(userID, selected)
	if !exists {
		return domain.ShowChallenge{
			Challenge: s.challenges.Issue(userID),
			Reissued:  true,
		}, nil
	}

	if correct {
		s.challenges.Clear(userID)
		if err := s.store.Users().SetVerified(ctx, userID, now); err != nil {
			return nil, fmt.Errorf("failed to record verification: %w", err)
		}
		return domain.ShowSuccess{InviteLink: s.inviteLink}, nil
	}

	count, cooldownUntil, err := s.attempts.recordWrongAnswer(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if cooldownUntil != nil {
		// Force the re-agree path once the cooldown elapses.
		s.challenges.Clear(userID)
		return domain.ShowCooldown{Remaining: cooldownUntil.Sub(now)}, nil
	}

	return domain.ShowWrongAnswer{
		AttemptsRemaining: s.attempts.maxAttempts - count,
		Challenge:         s.challenges.Issue(userID),
	}, nil
}

// Cancel abandons the lobby flow and discards any active challenge.
func (s *LobbyService) Cancel(ctx context.Context, userID int64) (domain.Decision, error) {
	defer s.locks.lock(userID)()

	s.challenges.Clear(userID)
	return domain.Cancelled{}, nil
}

// CheckCooldown reports either the remaining cooldown or, once it has
// elapsed, the rules screen so the user can retry.
func (s *LobbyService) CheckCooldown(ctx context.Context, userID int64, now time.Time) (domain.Decision, error) {
	defer s.locks.lock(userID)()

	inCooldown, remaining, err := s.attempts.checkCooldown(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if inCooldown {
		return domain.ShowCooldown{Remaining: remaining}, nil
	}
	return domain.ShowRules{}, nil
}

// IsVerifiedNow reports whether the user's verification is younger than the
// TTL. Beyond the TTL the user is indistinguishable from unverified.
func (s *LobbyService) IsVerifiedNow(ctx context.Context, userID int64, now time.Time) (bool, error) {
	user, err := s.store.Users().GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load user: %w", err)
	}

	if user.VerifiedAt == nil {
		return false, nil
	}
	return now.Sub(*user.VerifiedAt) <= s.verifyTTL, nil
}

// SetLanguage stores the presentation-only language preference.
func (s *LobbyService) SetLanguage(ctx context.Context, userID int64, lang string) error {
	return s.store.Users().SetLanguage(ctx, userID, lang)
}

// cooldownGate is the shared entry check for interactive lobby events.
func (s *LobbyService) cooldownGate(ctx context.Context, userID int64, now time.Time) (domain.Decision, bool, error) {
	inCooldown, remaining, err := s.attempts.checkCooldown(ctx, userID, now)
	if err != nil {
		return nil, false, err
	}
	if inCooldown {
		return domain.ShowCooldown{Remaining: remaining}, true, nil
	}
	return nil, false, nil
}
