package domain

import "time"

// Decision is the closed set of outcomes the gate engine produces. The
// transport layer renders them; the engine never decides how anything is
// displayed.
type Decision interface {
	isDecision()
}

// Challenge is a single-use verification prompt: one correct token shuffled
// among decoys.
type Challenge struct {
	Prompt  string
	Options []string
	Correct string
}

// ShowRules tells the renderer to present the rules/agreement screen.
type ShowRules struct{}

// ShowChallenge presents a fresh challenge. Reissued is set when the previous
// session expired (e.g. after a restart) and the answer was not counted.
type ShowChallenge struct {
	Challenge Challenge
	Reissued  bool
}

// ShowCooldown reports that the user is mid-penalty.
type ShowCooldown struct {
	Remaining time.Duration
}

// ShowSuccess reports a passed challenge along with the invite link the user
// should follow next.
type ShowSuccess struct {
	InviteLink string
}

// ShowWrongAnswer reports a failed attempt and carries the replacement
// challenge.
type ShowWrongAnswer struct {
	AttemptsRemaining int
	Challenge         Challenge
}

// Cancelled acknowledges an abandoned lobby flow.
type Cancelled struct{}

// ApproveJoin accepts the membership request. Lang is the user's stored
// preference so the welcome message can be localized.
type ApproveJoin struct {
	Lang string
}

// DeclineJoin rejects the membership request with a machine-readable reason.
type DeclineJoin struct {
	Reason string
	Lang   string
}

// HoldJoin leaves the request pending for manual moderator action.
type HoldJoin struct{}

// StatusSnapshot is the admin status view.
type StatusSnapshot struct {
	Mode            string
	Lockdown        bool
	VerifiedLast24h int
	TotalUsers      int
}

// NotAuthorized rejects an admin action from a non-admin actor.
type NotAuthorized struct{}

// Ignored means the event produced no state change and needs no rendering
// (rate-limited taps, join requests for other chats).
type Ignored struct{}

// Decline reasons surfaced on DeclineJoin.
const (
	DeclineReasonLockdown    = "lockdown"
	DeclineReasonVerifyFirst = "verify_first"
)

func (ShowRules) isDecision()       {}
func (ShowChallenge) isDecision()   {}
func (ShowCooldown) isDecision()    {}
func (ShowSuccess) isDecision()     {}
func (ShowWrongAnswer) isDecision() {}
func (Cancelled) isDecision()       {}
func (ApproveJoin) isDecision()     {}
func (DeclineJoin) isDecision()     {}
func (HoldJoin) isDecision()        {}
func (StatusSnapshot) isDecision()  {}
func (NotAuthorized) isDecision()   {}
func (Ignored) isDecision()         {}
