package domain

import "time"

// UserRecord is the durable per-user verification state. Records are created
// lazily on first interaction and never deleted. All optional timestamps are
// nil until the corresponding event has happened.
type UserRecord struct {
	UserID int64

	// AgreedAt is when the user last accepted the rules. Re-agreement
	// overwrites it with a newer time.
	AgreedAt *time.Time

	// VerifiedAt is when the user last passed a challenge. It only grants
	// auto-approval while younger than the configured TTL.
	VerifiedAt *time.Time

	// AttemptsCount counts consecutive wrong answers inside the current
	// attempt window. A nil AttemptsWindowStart implies a zero count.
	AttemptsCount       int
	AttemptsWindowStart *time.Time

	// CooldownUntil, when set and in the future, bars the user from new
	// challenges and approvals. Once in the past it is treated as cleared.
	CooldownUntil *time.Time

	LastJoinRequestAt *time.Time

	// Language is a presentation-only preference tag. The decision logic
	// never branches on it.
	Language string
}
