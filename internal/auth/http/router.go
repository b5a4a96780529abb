package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/traintrack-app/traintrack/internal/auth/service"
	"github.com/traintrack-app/traintrack/internal/auth/store"
	"github.com/traintrack-app/traintrack/pkg/httpx"
	"github.com/traintrack-app/traintrack/pkg/jwtx"
	"github.com/traintrack-app/traintrack/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	secureCookie bool
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	UserService    *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	secureCookie bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		secureCookie: secureCookie,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		httpx.RecoverMiddleware(),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccount()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /register - strict per-IP budget (account creation)
	registerHandler := &RegisterHandler{
		Sessions:     r.SessionService,
		SecureCookie: r.secureCookie,
	}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.RegisterLimit),
		),
	)

	// POST /login - rate limited by IP to slow credential stuffing
	loginHandler := &LoginHandler{
		Sessions:     r.SessionService,
		Users:        r.UserService,
		SecureCookie: r.secureCookie,
	}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.LoginLimit),
		),
	)

	// GET /verify-email - token arrives as a query parameter from the email link
	verifyHandler := &VerifyEmailHandler{Sessions: r.SessionService}
	r.Mux.Handle("GET /v1/auth/verify-email",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.GeneralLimit),
		),
	)

	// POST /refresh-token - authenticated by the refresh cookie, not the bearer header
	refreshHandler := &RefreshHandler{
		Sessions: r.SessionService,
		Users:    r.UserService,
	}
	r.Mux.Handle("POST /v1/auth/refresh-token",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.GeneralLimit),
		),
	)

	// POST /logout - requires a valid access token
	logoutHandler := &LogoutHandler{
		Sessions:     r.SessionService,
		SecureCookie: r.secureCookie,
	}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.GeneralLimit),
		),
	)
}

func (r *Router) registerAccount() {
	// PUT /password - requires the current password on top of a valid token
	passwordHandler := &PasswordHandler{Sessions: r.SessionService}
	r.Mux.Handle("PUT /v1/auth/password",
		httpx.Chain(passwordHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.GeneralLimit),
		),
	)

	// GET /me - current user and profile
	meHandler := &MeHandler{Users: r.UserService}
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(meHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.GeneralLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
