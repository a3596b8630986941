package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store"
)

// AdminService handles operator commands. Authorization is a static identity
// list; unauthorized actors get NotAuthorized and no state changes.
type AdminService struct {
	Store    store.Store
	Settings *SettingsService
	AdminIDs []int64
}

func (s *AdminService) SetLockdown(ctx context.Context, actorID int64, enabled bool, now time.Time) (domain.Decision, error) {
	if !s.isAdmin(actorID) {
		return domain.NotAuthorized{}, nil
	}

	if err := s.Settings.SetLockdown(ctx, enabled); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, now)
}

func (s *AdminService) SetStrictMode(ctx context.Context, actorID int64, strict bool, now time.Time) (domain.Decision, error) {
	if !s.isAdmin(actorID) {
		return domain.NotAuthorized{}, nil
	}

	if err := s.Settings.SetStrictMode(ctx, strict); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, now)
}

func (s *AdminService) Status(ctx context.Context, actorID int64, now time.Time) (domain.Decision, error) {
	if !s.isAdmin(actorID) {
		return domain.NotAuthorized{}, nil
	}
	return s.snapshot(ctx, now)
}

func (s *AdminService) isAdmin(actorID int64) bool {
	return slices.Contains(s.AdminIDs, actorID)
}

func (s *AdminService) snapshot(ctx context.Context, now time.Time) (domain.Decision, error) {
	lockdown, err := s.Settings.Lockdown(ctx)
	if err != nil {
		return nil, err
	}
	strict, err := s.Settings.StrictMode(ctx)
	if err != nil {
		return nil, err
	}

	verified24h, err := s.Store.Users().CountVerifiedSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent verifications: %w", err)
	}
	total, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	mode := "soft"
	if strict {
		mode = "strict"
	}

	return domain.StatusSnapshot{
		Mode:            mode,
		Lockdown:        lockdown,
		VerifiedLast24h: verified24h,
		TotalUsers:      total,
	}, nil
}
