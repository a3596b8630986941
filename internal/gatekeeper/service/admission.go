package service

import (
	"context"
	"fmt"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store"
)

// AdmissionService decides membership requests. It is single-tenant: only
// requests for the configured group are evaluated.
type AdmissionService struct {
	store    store.Store
	settings *SettingsService
	lobby    *LobbyService

	groupChatID int64
}

func NewAdmissionService(st store.Store, settings *SettingsService, lobby *LobbyService, groupChatID int64) *AdmissionService {
	return &AdmissionService{
		store:       st,
		settings:    settings,
		lobby:       lobby,
		groupChatID: groupChatID,
	}
}

// Decide produces exactly one of Approve, Decline or Hold for a join request.
//
// The request is recorded before any branching. The policy is evaluated in
// precedence order: lockdown declines everyone, a verified user outside
// cooldown is approved, strict mode declines the rest, soft mode holds them
// for manual review. The flags and user state are read under the per-user
// lock so a concurrent admin toggle cannot tear the snapshot.
func (s *AdmissionService) Decide(ctx context.Context, userID, chatID int64, now time.Time) (domain.Decision, error) {
	if chatID != s.groupChatID {
		return domain.Ignored{}, nil
	}

	defer s.lobby.locks.lock(userID)()

	if err := s.store.Users().SetJoinRequestTime(ctx, userID, now); err != nil {
		return nil, fmt.Errorf("failed to record join request: %w", err)
	}

	user, err := s.store.Users().GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	lang := user.Language

	lockdown, err := s.settings.Lockdown(ctx)
	if err != nil {
		return nil, err
	}
	if lockdown {
		return domain.DeclineJoin{Reason: domain.DeclineReasonLockdown, Lang: lang}, nil
	}

	verified, err := s.lobby.IsVerifiedNow(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	inCooldown, _, err := s.lobby.attempts.checkCooldown(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if verified && !inCooldown {
		return domain.ApproveJoin{Lang: lang}, nil
	}

	strict, err := s.settings.StrictMode(ctx)
	if err != nil {
		return nil, err
	}
	if strict {
		return domain.DeclineJoin{Reason: domain.DeclineReasonVerifyFirst, Lang: lang}, nil
	}

	return domain.HoldJoin{}, nil
}
