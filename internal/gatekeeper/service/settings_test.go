package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	svc := &SettingsService{
		Store:           newTestStore(t),
		LockdownDefault: false,
		StrictDefault:   true,
	}

	lockdown, err := svc.Lockdown(ctx)
	require.NoError(t, err)
	require.False(t, lockdown)

	strict, err := svc.StrictMode(ctx)
	require.NoError(t, err)
	require.True(t, strict)
}

func TestSettingsStoredValueWins(t *testing.T) {
	ctx := context.Background()
	svc := &SettingsService{
		Store:         newTestStore(t),
		StrictDefault: true,
	}

	require.NoError(t, svc.SetStrictMode(ctx, false))

	strict, err := svc.StrictMode(ctx)
	require.NoError(t, err)
	require.False(t, strict)

	// Toggling back is just another override.
	require.NoError(t, svc.SetStrictMode(ctx, true))
	strict, err = svc.StrictMode(ctx)
	require.NoError(t, err)
	require.True(t, strict)
}

func TestSettingsEncoding(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SettingsService{Store: st}

	require.NoError(t, svc.SetLockdown(ctx, true))

	raw, err := st.Settings().Get(ctx, "lockdown")
	require.NoError(t, err)
	require.Equal(t, "1", raw)

	require.NoError(t, svc.SetLockdown(ctx, false))
	raw, err = st.Settings().Get(ctx, "lockdown")
	require.NoError(t, err)
	require.Equal(t, "0", raw)
}
