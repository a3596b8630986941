package domain

import "time"

// Event is the closed set of inbound events the gate engine can handle. The
// messaging transport builds these; the engine owns the transition table.
// The unexported method keeps the union sealed to this package.
type Event interface {
	isEvent()
}

// UserAgreed records that the user accepted the rules.
type UserAgreed struct {
	UserID int64
	Now    time.Time
}

// ChallengeAnswered carries the token the user picked for the active
// challenge.
type ChallengeAnswered struct {
	UserID   int64
	Selected string
	Now      time.Time
}

// ChallengeCancelled abandons the lobby flow and discards any active
// challenge session.
type ChallengeCancelled struct {
	UserID int64
	Now    time.Time
}

// CooldownChecked asks whether the user's cooldown has elapsed so they can
// retry.
type CooldownChecked struct {
	UserID int64
	Now    time.Time
}

// JoinRequested is a membership request observed for a chat. Requests for
// chats other than the configured group are ignored.
type JoinRequested struct {
	UserID int64
	ChatID int64
	Now    time.Time
}

// AdminSetLockdown toggles the global lockdown switch.
type AdminSetLockdown struct {
	ActorID int64
	Enabled bool
	Now     time.Time
}

// AdminSetStrictMode toggles strict admission mode.
type AdminSetStrictMode struct {
	ActorID int64
	Strict  bool
	Now     time.Time
}

// AdminQueryStatus requests the current mode, lockdown state and user counts.
type AdminQueryStatus struct {
	ActorID int64
	Now     time.Time
}

func (UserAgreed) isEvent()         {}
func (ChallengeAnswered) isEvent()  {}
func (ChallengeCancelled) isEvent() {}
func (CooldownChecked) isEvent()    {}
func (JoinRequested) isEvent()      {}
func (AdminSetLockdown) isEvent()   {}
func (AdminSetStrictMode) isEvent() {}
func (AdminQueryStatus) isEvent()   {}
