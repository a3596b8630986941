package http

import (
	"net/http"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
	"github.com/murkaverse/gatekeeper/pkg/httpx"
	"github.com/murkaverse/gatekeeper/pkg/slogx"
)

// decisionResponse is the wire form of a gate decision. Kind discriminates;
// only the fields relevant to that kind are populated.
type decisionResponse struct {
	Kind string `json:"decision"`

	Prompt   string   `json:"prompt,omitempty"`
	Options  []string `json:"options,omitempty"`
	Correct  string   `json:"correct,omitempty"`
	Reissued bool     `json:"reissued,omitempty"`

	RemainingSeconds  int    `json:"remaining_seconds,omitempty"`
	AttemptsRemaining int    `json:"attempts_remaining,omitempty"`
	InviteLink        string `json:"invite_link,omitempty"`

	Reason string `json:"reason,omitempty"`
	Lang   string `json:"lang,omitempty"`

	Mode            string `json:"mode,omitempty"`
	Lockdown        *bool  `json:"lockdown,omitempty"`
	VerifiedLast24h *int   `json:"verified_last_24h,omitempty"`
	TotalUsers      *int   `json:"total_users,omitempty"`
}

// writeDecision renders a decision from the engine. Every decision maps to a
// 200 except NotAuthorized; internal faults never reach here as decisions.
func writeDecision(w http.ResponseWriter, dec domain.Decision) {
	switch d := dec.(type) {
	case domain.ShowRules:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{Kind: "show_rules"})

	case domain.ShowChallenge:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{
			Kind:     "show_challenge",
			Prompt:   d.Challenge.Prompt,
			Options:  d.Challenge.Options,
			Correct:  d.Challenge.Correct,
			Reissued: d.Reissued,
		})

	case domain.ShowCooldown:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{
			Kind:             "show_cooldown",
			RemainingSeconds: int(d.Remaining.Seconds()),
		})

	case domain.ShowSuccess:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{
			Kind:       "show_success",
			InviteLink: d.InviteLink,
		})

	case domain.ShowWrongAnswer:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{
			Kind:              "show_wrong_answer",
			AttemptsRemaining: d.AttemptsRemaining,
			Prompt:            d.Challenge.Prompt,
			Options:           d.Challenge.Options,
			Correct:           d.Challenge.Correct,
		})

	case domain.Cancelled:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{Kind: "cancelled"})

	case domain.ApproveJoin:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{Kind: "approve", Lang: d.Lang})

	case domain.DeclineJoin:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{
			Kind:   "decline",
			Reason: d.Reason,
			Lang:   d.Lang,
		})

	case domain.HoldJoin:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{Kind: "hold"})

	case domain.StatusSnapshot:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{
			Kind:            "status",
			Mode:            d.Mode,
			Lockdown:        &d.Lockdown,
			VerifiedLast24h: &d.VerifiedLast24h,
			TotalUsers:      &d.TotalUsers,
		})

	case domain.NotAuthorized:
		httpx.WriteError(w, http.StatusForbidden, "not_authorized", "admin identity required")

	case domain.Ignored:
		httpx.WriteJSON(w, http.StatusOK, decisionResponse{Kind: "ignored"})

	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal", "unknown decision")
	}
}

// writeEngineError reports a hard failure (storage unavailable and the like)
// for the specific operation. No retry happens here.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Error("event handling failed", "error", err)
	httpx.WriteError(w, http.StatusInternalServerError, "internal", "operation failed")
}
