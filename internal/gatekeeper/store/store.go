package store

import (
	"context"
	"errors"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Settings() Settings

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to do read-modify-write sequences on a user record.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUser returns the record for a user id, or ErrNotFound.
	GetUser(ctx context.Context, userID int64) (domain.UserRecord, error)

	// EnsureUser returns the record for a user id, creating an empty one
	// if it does not exist yet. Safe under concurrent calls for the same id.
	EnsureUser(ctx context.Context, userID int64) (domain.UserRecord, error)

	// SetAgreed marks the user as having accepted the rules, creating the
	// record if needed. Re-agreement overwrites with the newer time.
	SetAgreed(ctx context.Context, userID int64, at time.Time) error

	// SetVerified stamps verified_at and clears the attempt counter, window
	// and cooldown in one statement. A pass always forgives prior failures.
	SetVerified(ctx context.Context, userID int64, at time.Time) error

	// UpdateAttempts persists the attempt counter state. A nil windowStart
	// must be written together with a zero count.
	UpdateAttempts(ctx context.Context, userID int64, count int, windowStart, cooldownUntil *time.Time) error

	// ResetAttempts clears count, window and cooldown (cooldown lazy expiry,
	// successful pass).
	ResetAttempts(ctx context.Context, userID int64) error

	// SetJoinRequestTime records the most recent membership request,
	// creating the record if needed.
	SetJoinRequestTime(ctx context.Context, userID int64, at time.Time) error

	// SetLanguage stores the presentation-only language preference.
	SetLanguage(ctx context.Context, userID int64, lang string) error

	// CountVerifiedSince counts users whose verification is newer than
	// cutoff.
	CountVerifiedSince(ctx context.Context, cutoff time.Time) (int, error)

	// CountUsers counts all known users.
	CountUsers(ctx context.Context) (int, error)
}

type Settings interface {
	// Get returns the stored value for key, or ErrNotFound when the key has
	// never been set. Callers fall back to their static default in that case.
	Get(ctx context.Context, key string) (string, error)

	// Set upserts the value for key.
	Set(ctx context.Context, key, value string) error
}
