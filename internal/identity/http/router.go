package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/midgardlabs/tenantauth/internal/identity/service"
	"github.com/midgardlabs/tenantauth/internal/identity/store"
	"github.com/midgardlabs/tenantauth/pkg/httpx"
	"github.com/midgardlabs/tenantauth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	ProvisionService *service.ProvisionService
	AuthService      *service.AuthService
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
	r.registerTenants()
	r.registerAuth()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTenants() {
	r.Mux.Handle("POST /v1/tenants", &ProvisionHandler{
		ProvisionService: r.ProvisionService,
	})
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /v1/auth/login", &LoginHandler{
		AuthService: r.AuthService,
	})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /healthz", HealthHandler(r.startTime, r.buildVersion, r.store))
}
