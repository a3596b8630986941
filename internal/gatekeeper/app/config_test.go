package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, 5*time.Minute, cfg.VerifyTTL)
	require.Equal(t, 10*time.Minute, cfg.Cooldown)
	require.Equal(t, 3, cfg.MaxAttempts)
	require.False(t, cfg.StrictModeDefault)
	require.False(t, cfg.LockdownDefault)
	require.Equal(t, "gatekeeper.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GATE_GROUP_CHAT_ID", "-1001234567890")
	t.Setenv("GATE_INVITE_LINK", "https://example.com/invite")
	t.Setenv("GATE_VERIFY_TTL", "90s")
	t.Setenv("GATE_COOLDOWN", "600")
	t.Setenv("GATE_MAX_ATTEMPTS", "5")
	t.Setenv("GATE_STRICT_MODE", "true")
	t.Setenv("GATE_ADMIN_IDS", "111, 222,333")

	cfg := LoadConfig()

	require.Equal(t, int64(-1001234567890), cfg.GroupChatID)
	require.Equal(t, "https://example.com/invite", cfg.InviteLink)
	require.Equal(t, 90*time.Second, cfg.VerifyTTL)
	// Bare integers are seconds.
	require.Equal(t, 10*time.Minute, cfg.Cooldown)
	require.Equal(t, 5, cfg.MaxAttempts)
	require.True(t, cfg.StrictModeDefault)
	require.Equal(t, []int64{111, 222, 333}, cfg.AdminIDs)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsMissingRequired(t *testing.T) {
	cfg := LoadConfig()

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "GATE_GROUP_CHAT_ID")
	require.Contains(t, err.Error(), "GATE_INVITE_LINK")
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Config{
		GroupChatID: -100,
		InviteLink:  "https://example.com/invite",
		VerifyTTL:   5 * time.Minute,
		Cooldown:    -time.Second,
		MaxAttempts: 0,
	}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "GATE_MAX_ATTEMPTS")
	require.Contains(t, err.Error(), "GATE_COOLDOWN")
}
