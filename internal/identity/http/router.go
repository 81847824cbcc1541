package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pulseboard/pulseboard/internal/identity/service"
	"github.com/pulseboard/pulseboard/internal/identity/store"
	"github.com/pulseboard/pulseboard/pkg/httpx"
	"github.com/pulseboard/pulseboard/pkg/jwtx"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	RegistrarService  *service.RegistrarService
	CredentialService *service.CredentialService
	SessionService    *service.SessionService

	// RequestTimeout bounds every request's store lookups and hashing.
	RequestTimeout time.Duration

	// SecureCookies marks the session cookie Secure. Off only in dev.
	SecureCookies bool
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Default middleware chain. The timeout wraps everything so no
	// handler outlives the request budget.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	if r.RequestTimeout > 0 {
		r.middlewares = append(r.middlewares, httpx.Timeout(r.RequestTimeout))
	}

	r.registerAuth()
	r.registerAccounts()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /signup - strict rate limit by IP (public account creation)
	signupHandler := &SignupHandler{Registrar: r.RegistrarService}
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (brute force prevention)
	loginHandler := &LoginHandler{
		Credentials:   r.CredentialService,
		Sessions:      r.SessionService,
		SecureCookies: r.SecureCookies,
	}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /session - materializes the presented token; lenient limit
	// since it runs on effectively every dashboard request
	sessionHandler := &SessionHandler{Sessions: r.SessionService}
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(sessionHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{Store: r.store}

	// GET /accounts - admin-only listing, moderate limit per account
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, SessionCookieName),
		httpx.RequireRole("admin"),
		httpx.RateLimitByAccount(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/accounts", secured)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
