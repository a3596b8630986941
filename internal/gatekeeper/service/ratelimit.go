package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter enforces a minimum interval between accepted interactive events
// per user, to blunt tap-spam on interactive controls. Non-accepted events
// are dropped, not queued. State is in-memory only and does not survive a
// restart.
type RateLimiter struct {
	interval time.Duration
	limiters sync.Map // map[int64]*rate.Limiter

	mu          sync.Mutex
	lastCleanup time.Time
}

func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval:    minInterval,
		lastCleanup: time.Now(),
	}
}

// Allow reports whether an event from the user at the given time should be
// processed. At most one event per interval is accepted (burst of 1).
func (l *RateLimiter) Allow(userID int64, now time.Time) bool {
	limiter := l.getLimiter(userID)
	ok := limiter.AllowN(now, 1)
	l.maybeCleanup()
	return ok
}

func (l *RateLimiter) getLimiter(userID int64) *rate.Limiter {
	if limiter, ok := l.limiters.Load(userID); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rate.Every(l.interval), 1)
	actual, _ := l.limiters.LoadOrStore(userID, limiter)
	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose bucket is full again, meaning the user
// has been idle for at least a full interval. Keeps the map from growing
// without bound over long uptimes.
func (l *RateLimiter) maybeCleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastCleanup) < 5*time.Minute {
		return
	}
	l.lastCleanup = time.Now()

	l.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= 1 {
			l.limiters.Delete(key)
		}
		return true
	})
}
