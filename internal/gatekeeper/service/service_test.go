package service

import (
	"testing"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

const (
	testMaxAttempts = 3
	testCooldown    = 10 * time.Minute
	testVerifyTTL   = 5 * time.Minute
	testInviteLink  = "https://chat.example/join"
	testGroupChat   = int64(-1001)
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestLobby(t *testing.T, st store.Store) *LobbyService {
	t.Helper()

	return NewLobbyService(st, NewChallengeGenerator(), LobbyConfig{
		MaxAttempts: testMaxAttempts,
		Cooldown:    testCooldown,
		VerifyTTL:   testVerifyTTL,
		InviteLink:  testInviteLink,
	})
}

func newTestAdmission(t *testing.T, st store.Store, lobby *LobbyService, lockdownDefault, strictDefault bool) *AdmissionService {
	t.Helper()

	settings := &SettingsService{
		Store:           st,
		LockdownDefault: lockdownDefault,
		StrictDefault:   strictDefault,
	}
	return NewAdmissionService(st, settings, lobby, testGroupChat)
}
