package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/service"
	"github.com/murkaverse/gatekeeper/pkg/httpx"
)

// LobbyHandler adapts the interactive lobby flow (agree, answer, cancel,
// cooldown check, language) onto the gate engine.
type LobbyHandler struct {
	Engine *service.Engine
	Lobby  *service.LobbyService
}

type lobbyRequest struct {
	UserID   int64  `json:"user_id"`
	Selected string `json:"selected,omitempty"`
	Language string `json:"language,omitempty"`
}

func decodeLobbyRequest(w http.ResponseWriter, r *http.Request) (lobbyRequest, bool) {
	var req lobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return lobbyRequest{}, false
	}
	return req, true
}

func (h *LobbyHandler) HandleAgree(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLobbyRequest(w, r)
	if !ok {
		return
	}

	dec, err := h.Engine.Handle(r.Context(), domain.UserAgreed{
		UserID: req.UserID,
		Now:    time.Now().UTC(),
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeDecision(w, dec)
}

func (h *LobbyHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLobbyRequest(w, r)
	if !ok {
		return
	}
	if req.Selected == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "selected is required")
		return
	}

	dec, err := h.Engine.Handle(r.Context(), domain.ChallengeAnswered{
		UserID:   req.UserID,
		Selected: req.Selected,
		Now:      time.Now().UTC(),
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeDecision(w, dec)
}

func (h *LobbyHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLobbyRequest(w, r)
	if !ok {
		return
	}

	dec, err := h.Engine.Handle(r.Context(), domain.ChallengeCancelled{
		UserID: req.UserID,
		Now:    time.Now().UTC(),
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeDecision(w, dec)
}

func (h *LobbyHandler) HandleCooldown(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLobbyRequest(w, r)
	if !ok {
		return
	}

	dec, err := h.Engine.Handle(r.Context(), domain.CooldownChecked{
		UserID: req.UserID,
		Now:    time.Now().UTC(),
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeDecision(w, dec)
}

// HandleLanguage stores the presentation-only language preference. It is not
// an engine event since no decision logic consumes it.
func (h *LobbyHandler) HandleLanguage(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLobbyRequest(w, r)
	if !ok {
		return
	}
	if req.Language == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "language is required")
		return
	}

	if err := h.Lobby.SetLanguage(r.Context(), req.UserID, req.Language); err != nil {
		writeEngineError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
