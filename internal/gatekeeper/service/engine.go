package service

import (
	"context"
	"fmt"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
)

// Engine is the single entry point for inbound events: one authoritative
// dispatch over the closed event union. Interactive events pass through the
// per-user rate limiter first; rate-limited taps are dropped as Ignored.
type Engine struct {
	Lobby     *LobbyService
	Admission *AdmissionService
	Admin     *AdminService
	Limiter   *RateLimiter
}

func (e *Engine) Handle(ctx context.Context, ev domain.Event) (domain.Decision, error) {
	switch ev := ev.(type) {
	case domain.UserAgreed:
		if !e.Limiter.Allow(ev.UserID, ev.Now) {
			return domain.Ignored{}, nil
		}
		return e.Lobby.Agree(ctx, ev.UserID, ev.Now)

	case domain.ChallengeAnswered:
		if !e.Limiter.Allow(ev.UserID, ev.Now) {
			return domain.Ignored{}, nil
		}
		return e.Lobby.SubmitAnswer(ctx, ev.UserID, ev.Selected, ev.Now)

	case domain.ChallengeCancelled:
		if !e.Limiter.Allow(ev.UserID, ev.Now) {
			return domain.Ignored{}, nil
		}
		return e.Lobby.Cancel(ctx, ev.UserID)

	case domain.CooldownChecked:
		if !e.Limiter.Allow(ev.UserID, ev.Now) {
			return domain.Ignored{}, nil
		}
		return e.Lobby.CheckCooldown(ctx, ev.UserID, ev.Now)

	case domain.JoinRequested:
		return e.Admission.Decide(ctx, ev.UserID, ev.ChatID, ev.Now)

	case domain.AdminSetLockdown:
		return e.Admin.SetLockdown(ctx, ev.ActorID, ev.Enabled, ev.Now)

	case domain.AdminSetStrictMode:
		return e.Admin.SetStrictMode(ctx, ev.ActorID, ev.Strict, ev.Now)

	case domain.AdminQueryStatus:
		return e.Admin.Status(ctx, ev.ActorID, ev.Now)

	default:
		return nil, fmt.Errorf("unhandled event type %T", ev)
	}
}
