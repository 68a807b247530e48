package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/internal/auth/store"
	"github.com/flicknest/flicknest/pkg/httpx"
	"github.com/flicknest/flicknest/pkg/jwtx"
	"github.com/flicknest/flicknest/pkg/slogx"

	_ "github.com/flicknest/flicknest/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.Keyring
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store      store.Store
	Validator  *service.Validator
	Issuer     *service.Issuer
	Revocation *service.RevocationService
}

func NewRouter(
	keys *jwtx.Keyring,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
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
	r.registerTokens()
	r.registerSession()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Flicknest Authentication Service API
//	@version		0.1.0
//	@description	Credential verification and issuance service for the Flicknest movie catalog.
//	@description
//	@description	Accepts identity-provider tokens, exchanges them for application access/refresh
//	@description	token pairs (HS256), and tracks revoked application tokens in a persisted ledger.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT bearer token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	exchange := &ExchangeHandler{Issuer: r.Issuer}
	r.Mux.Handle("POST /v1/auth/token/exchange", exchange)

	refresh := &RefreshHandler{Issuer: r.Issuer}
	r.Mux.Handle("POST /v1/auth/token/refresh", refresh)

	validate := &ValidateHandler{Validator: r.Validator}
	r.Mux.Handle("POST /v1/auth/token/validate", validate)

	introspect := &IntrospectHandler{Validator: r.Validator}
	r.Mux.Handle("POST /v1/auth/token/introspect", introspect)

	info := &TokenInfoHandler{}
	r.Mux.Handle("GET /v1/auth/token/info", r.requireAuth(info))
}

func (r *Router) registerSession() {
	session := &SessionHandler{}
	r.Mux.Handle("GET /v1/auth/session", r.optionalAuth(session))

	logout := &LogoutHandler{Revocation: r.Revocation}
	r.Mux.Handle("POST /v1/auth/logout", logout)
}

func (r *Router) registerAdmin() {
	cleanup := &CleanupHandler{Revocation: r.Revocation}
	r.Mux.Handle("POST /v1/auth/admin/cleanup-tokens", r.requireAuth(cleanup))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}
