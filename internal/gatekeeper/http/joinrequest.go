package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/service"
	"github.com/murkaverse/gatekeeper/pkg/httpx"
)

// JoinRequestHandler adapts observed membership requests onto the admission
// engine.
type JoinRequestHandler struct {
	Engine *service.Engine
}

type joinRequest struct {
	UserID int64 `json:"user_id"`
	ChatID int64 `json:"chat_id"`
}

func (h *JoinRequestHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || req.ChatID == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "user_id and chat_id are required")
		return
	}

	dec, err := h.Engine.Handle(r.Context(), domain.JoinRequested{
		UserID: req.UserID,
		ChatID: req.ChatID,
		Now:    time.Now().UTC(),
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeDecision(w, dec)
}
