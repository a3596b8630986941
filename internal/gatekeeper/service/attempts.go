package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store"
)

// attemptWindow is how long a series of wrong answers keeps accumulating. A
// wrong answer after more than this since the window opened restarts the
// count at 1.
const attemptWindow = 10 * time.Minute

// attemptEngine owns the wrong-answer counter and cooldown algorithm. All
// mutations run inside a store transaction; callers additionally hold the
// per-user lock so concurrent events for the same user serialize.
type attemptEngine struct {
	store       store.Store
	maxAttempts int
	cooldown    time.Duration
}

// recordWrongAnswer updates the attempt window and decides whether the user
// enters cooldown. Returns the new count and, when triggered, the cooldown
// expiry.
func (e *attemptEngine) recordWrongAnswer(ctx context.Context, userID int64, now time.Time) (int, *time.Time, error) {
	var (
		count         int
		cooldownUntil *time.Time
	)

	err := e.store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().EnsureUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		// A long-dormant series of failures does not accumulate.
		windowStart := user.AttemptsWindowStart
		if windowStart != nil && now.Sub(*windowStart) > attemptWindow {
			windowStart = nil
		}

		if windowStart == nil {
			windowStart = &now
			count = 1
		} else {
			count = user.AttemptsCount + 1
		}

		if count >= e.maxAttempts {
			until := now.Add(e.cooldown)
			cooldownUntil = &until
		}

		return tx.Users().UpdateAttempts(ctx, userID, count, windowStart, cooldownUntil)
	})
	if err != nil {
		return 0, nil, err
	}

	return count, cooldownUntil, nil
}

// checkCooldown reports whether the user is in cooldown and the remaining
// duration. An elapsed cooldown is lazily cleared here, resetting the attempt
// counter and window, so there is no background sweeper.
func (e *attemptEngine) checkCooldown(ctx context.Context, userID int64, now time.Time) (bool, time.Duration, error) {
	user, err := e.store.Users().GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to load user: %w", err)
	}

	if user.CooldownUntil == nil {
		return false, 0, nil
	}

	if !now.Before(*user.CooldownUntil) {
		if err := e.store.Users().ResetAttempts(ctx, userID); err != nil {
			return false, 0, fmt.Errorf("failed to reset attempts: %w", err)
		}
		return false, 0, nil
	}

	return true, user.CooldownUntil.Sub(now), nil
}
