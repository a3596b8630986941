package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/service"
	"github.com/murkaverse/gatekeeper/pkg/httpx"
)

// AdminHandler adapts operator commands onto the gate engine. The actor's
// identity comes from the relay; authorization against the admin list
// happens in the service layer.
type AdminHandler struct {
	Engine *service.Engine
}

type lockdownRequest struct {
	ActorID int64 `json:"actor_id"`
	Enabled bool  `json:"enabled"`
}

type modeRequest struct {
	ActorID int64  `json:"actor_id"`
	Mode    string `json:"mode"` // "strict" or "soft"
}

func (h *AdminHandler) HandleLockdown(w http.ResponseWriter, r *http.Request) {
	var req lockdownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActorID == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "actor_id is required")
		return
	}

	dec, err := h.Engine.Handle(r.Context(), domain.AdminSetLockdown{
		ActorID: req.ActorID,
		Enabled: req.Enabled,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeDecision(w, dec)
}

func (h *AdminHandler) HandleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActorID == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "actor_id is required")
		return
	}

	var strict bool
	switch req.Mode {
	case "strict":
		strict = true
	case "soft":
		strict = false
	default:
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", `mode must be "strict" or "soft"`)
		return
	}

	dec, err := h.Engine.Handle(r.Context(), domain.AdminSetStrictMode{
		ActorID: req.ActorID,
		Strict:  strict,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeDecision(w, dec)
}

func (h *AdminHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	actorID, err := strconv.ParseInt(r.URL.Query().Get("actor_id"), 10, 64)
	if err != nil || actorID == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "actor_id query parameter is required")
		return
	}

	dec, err := h.Engine.Handle(r.Context(), domain.AdminQueryStatus{
		ActorID: actorID,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeDecision(w, dec)
}
