// Package http is the thin transport adapter: handlers decode inbound events,
// hand them to the gate engine and render the returned decisions as JSON. No
// admission or verification logic lives here.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/service"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store"
	"github.com/murkaverse/gatekeeper/pkg/httpx"
	"github.com/murkaverse/gatekeeper/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	Engine *service.Engine
	Lobby  *service.LobbyService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLobby()
	r.registerJoinRequests()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLobby() {
	h := &LobbyHandler{Engine: r.Engine, Lobby: r.Lobby}

	// The interactive endpoints also pass through the engine's per-user
	// limiter; this IP limit just shields the transport itself.
	r.Mux.Handle("POST /v1/lobby/agree",
		httpx.Chain(http.HandlerFunc(h.HandleAgree),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/lobby/answer",
		httpx.Chain(http.HandlerFunc(h.HandleAnswer),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/lobby/cancel",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/lobby/cooldown",
		httpx.Chain(http.HandlerFunc(h.HandleCooldown),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/lobby/language",
		httpx.Chain(http.HandlerFunc(h.HandleLanguage),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerJoinRequests() {
	h := &JoinRequestHandler{Engine: r.Engine}

	r.Mux.Handle("POST /v1/join-requests",
		httpx.Chain(http.HandlerFunc(h.Handle),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{Engine: r.Engine}

	r.Mux.Handle("POST /v1/admin/lockdown",
		httpx.Chain(http.HandlerFunc(h.HandleLockdown),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/admin/mode",
		httpx.Chain(http.HandlerFunc(h.HandleMode),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/admin/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
