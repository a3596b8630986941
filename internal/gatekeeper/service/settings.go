package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store"
)

const (
	settingLockdown   = "lockdown"
	settingStrictMode = "strict_mode"
)

// SettingsService is the explicit two-tier lookup over the operator flags:
// a value stored by an admin wins, otherwise the static config default
// applies. Booleans are serialized as "1"/"0" in the settings table.
type SettingsService struct {
	Store           store.Store
	LockdownDefault bool
	StrictDefault   bool
}

func (s *SettingsService) Lockdown(ctx context.Context) (bool, error) {
	return s.lookup(ctx, settingLockdown, s.LockdownDefault)
}

func (s *SettingsService) SetLockdown(ctx context.Context, enabled bool) error {
	return s.Store.Settings().Set(ctx, settingLockdown, encodeBool(enabled))
}

func (s *SettingsService) StrictMode(ctx context.Context) (bool, error) {
	return s.lookup(ctx, settingStrictMode, s.StrictDefault)
}

func (s *SettingsService) SetStrictMode(ctx context.Context, strict bool) error {
	return s.Store.Settings().Set(ctx, settingStrictMode, encodeBool(strict))
}

func (s *SettingsService) lookup(ctx context.Context, key string, fallback bool) (bool, error) {
	val, err := s.Store.Settings().Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return val == "1", nil
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
