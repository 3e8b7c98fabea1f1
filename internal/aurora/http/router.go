package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/aurora/internal/aurora/cache"
	"github.com/aussiebroadwan/aurora/internal/aurora/service"
	"github.com/aussiebroadwan/aurora/internal/aurora/store"
	"github.com/aussiebroadwan/aurora/pkg/httpx"
	"github.com/aussiebroadwan/aurora/pkg/jwtx"
	"github.com/aussiebroadwan/aurora/pkg/slogx"

	_ "github.com/aussiebroadwan/aurora/api/aurora" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Permissions checked on the invitation routes.
const (
	PermissionView   = "aurora.invitations.view"
	PermissionCreate = "aurora.invitations.create"
	PermissionRevoke = "aurora.invitations.revoke"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	cache             cache.StatsCache
	InvitationService *service.InvitationService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	sc cache.StatsCache,
	logger *slog.Logger,
) *Router {
	if sc == nil {
		sc = cache.Nop{}
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		cache:        sc,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvitations()
	r.registerAccept()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Aurora Invitation Service API
//	@version		0.1.0
//	@description	Tenant-scoped user invitations: create, list, resend, revoke and accept.
//	@description
//	@description				Every /v1 route requires an HS256 bearer token carrying sub, tenant_id and permissions.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/aurora
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	secured := func(fn http.HandlerFunc, limit httpx.RateLimitConfig, perms ...string) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequirePermission(perms...),
			httpx.RateLimitByUser(limit),
		)
	}

	// Reads - generous per-user limit (the UI polls list and stats)
	r.Mux.Handle("GET /v1/invitations", secured(h.HandleList, httpx.ReadLimit, PermissionView))
	r.Mux.Handle("GET /v1/invitations/stats", secured(h.HandleStats, httpx.ReadLimit, PermissionView))
	r.Mux.Handle("GET /v1/invitations/{id}", secured(h.HandleGet, httpx.ReadLimit, PermissionView))

	// Mutations - resend shares the create permission
	r.Mux.Handle("POST /v1/invitations", secured(h.HandleCreate, httpx.MutationLimit, PermissionCreate))
	r.Mux.Handle("POST /v1/invitations/{id}/resend", secured(h.HandleResend, httpx.MutationLimit, PermissionCreate))
	r.Mux.Handle("POST /v1/invitations/{id}/revoke", secured(h.HandleRevoke, httpx.MutationLimit, PermissionRevoke))
}

func (r *Router) registerAccept() {
	h := &AcceptHandler{InvitationService: r.InvitationService}

	// POST /accept - any authenticated user, strict limits against token guessing
	r.Mux.Handle("POST /v1/invitations/accept",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.AcceptLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.HealthLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.cache),
			httpx.RateLimitByIP(httpx.HealthLimit),
		),
	)
}
