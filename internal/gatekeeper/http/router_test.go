package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/service"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

const (
	testGroupChat = int64(-1001)
	testAdminID   = int64(9000)
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	challenges := service.NewChallengeGenerator()
	lobby := service.NewLobbyService(st, challenges, service.LobbyConfig{
		MaxAttempts: 3,
		Cooldown:    10 * time.Minute,
		VerifyTTL:   5 * time.Minute,
		InviteLink:  "https://example.com/invite",
	})
	settings := &service.SettingsService{Store: st}
	engine := &service.Engine{
		Lobby:     lobby,
		Admission: service.NewAdmissionService(st, settings, lobby, testGroupChat),
		Admin: &service.AdminService{
			Store:    st,
			Settings: settings,
			AdminIDs: []int64{testAdminID},
		},
		Limiter: service.NewRateLimiter(300 * time.Millisecond),
	}

	r := NewRouter("test", st, slog.New(slog.DiscardHandler))
	r.Engine = engine
	r.Lobby = lobby
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, r *Router, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestAgreeReturnsChallenge(t *testing.T) {
	r := newTestRouter(t)

	rec, payload := doJSON(t, r, http.MethodPost, "/v1/lobby/agree", `{"user_id": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "show_challenge", payload["decision"])
	require.NotEmpty(t, payload["prompt"])
	require.Len(t, payload["options"], 4)
}

func TestAgreeRejectsMissingUserID(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := doJSON(t, r, http.MethodPost, "/v1/lobby/agree", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJoinRequestHoldsUnknownUser(t *testing.T) {
	r := newTestRouter(t)

	rec, payload := doJSON(t, r, http.MethodPost, "/v1/join-requests",
		`{"user_id": 7, "chat_id": -1001}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hold", payload["decision"])
}

func TestAdminStatusForbiddenForStranger(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := doJSON(t, r, http.MethodGet, "/v1/admin/status?actor_id=123", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminLockdownRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	rec, payload := doJSON(t, r, http.MethodPost, "/v1/admin/lockdown",
		`{"actor_id": 9000, "enabled": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "status", payload["decision"])
	require.Equal(t, true, payload["lockdown"])

	// Lockdown now declines everyone, verified or not.
	rec, payload = doJSON(t, r, http.MethodPost, "/v1/join-requests",
		`{"user_id": 7, "chat_id": -1001}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "decline", payload["decision"])
	require.Equal(t, "lockdown", payload["reason"])
}

func TestAdminModeValidation(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := doJSON(t, r, http.MethodPost, "/v1/admin/mode",
		`{"actor_id": 9000, "mode": "medium"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLivez(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := doJSON(t, r, http.MethodGet, "/livez", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
