package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
	"github.com/aussiebroadwan/tokenauth/internal/auth/metrics"
	"github.com/aussiebroadwan/tokenauth/internal/auth/service"
	"github.com/aussiebroadwan/tokenauth/pkg/httpx"
	"github.com/aussiebroadwan/tokenauth/pkg/jwtx"
	"github.com/aussiebroadwan/tokenauth/pkg/slogx"

	_ "github.com/aussiebroadwan/tokenauth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is anything readyz can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options tune transport behaviour that does not belong to the services.
type Options struct {
	BuildVersion string

	// Location is the zone expiredTime is rendered in. Defaults to UTC.
	Location *time.Location

	Cookie     CookieConfig
	RateLimits httpx.RateLimits

	// Metrics records per route traffic. MetricsHandler, when set, is served
	// on GET /metrics.
	Metrics        metrics.Recorder
	MetricsHandler http.Handler

	// Database and SessionStore are probed by readyz. SessionStore may be nil
	// when sessions live in the database.
	Database     Pinger
	SessionStore Pinger
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens    *jwtx.TokenProvider
	opts      Options
	startTime time.Time
	logger    *slog.Logger

	LoginService *service.LoginService
	UserService  *service.UserService
}

func NewRouter(tokens *jwtx.TokenProvider, opts Options, logger *slog.Logger) *Router {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Cookie.Name == "" {
		opts.Cookie.Name = DefaultCookieName
	}
	if opts.RateLimits == (httpx.RateLimits{}) {
		opts.RateLimits = httpx.DefaultRateLimits()
	}
	opts.Metrics = metrics.OrNoop(opts.Metrics)

	r := &Router{
		Mux:       http.NewServeMux(),
		tokens:    tokens,
		opts:      opts,
		startTime: time.Now(),
		logger:    logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpx.Chain(httpSwagger.Handler(),
		httpx.RateLimitByIP(r.opts.RateLimits.Public),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Token Auth Service API
//	@version		0.1.0
//	@description	Login authentication with HS512 signed JWT access tokens.
//	@description
//	@description				Refresh tokens are never returned in a body. They are set as an HttpOnly cookie scoped to /v1/auth.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tokenauth
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

// handle registers h under pattern, instrumented with the pattern as the
// route label.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	r.Mux.Handle(pattern, metrics.Instrument(r.opts.Metrics, pattern, httpx.Chain(h, mws...)))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		LoginService: r.LoginService,
		Tokens:       r.tokens,
		Cookie:       r.opts.Cookie,
		Location:     r.opts.Location,
	}
	limits := r.opts.RateLimits

	// POST /login - strict rate limit by IP (credential guessing)
	r.handle("POST /v1/auth/login", http.HandlerFunc(h.HandleLogin),
		httpx.RateLimitByIP(limits.Strict),
	)

	// POST /refresh - the access token may be expired, so no authn middleware
	r.handle("POST /v1/auth/refresh", http.HandlerFunc(h.HandleRefresh),
		httpx.RateLimitByIP(limits.Moderate),
	)

	r.handle("POST /v1/auth/logout", http.HandlerFunc(h.HandleLogout),
		httpx.AuthnMiddleware(r.tokens),
		httpx.RateLimitByUser(limits.Moderate),
	)

	r.handle("GET /v1/auth/me", http.HandlerFunc(h.HandleMe),
		httpx.AuthnMiddleware(r.tokens),
		httpx.RateLimitByUser(limits.Lenient),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// POST /users - admin only, moderate rate limit by user
	r.handle("POST /v1/users", http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.tokens),
		httpx.RequireAnyRole(domain.RoleAdmin),
		httpx.RateLimitByUser(r.opts.RateLimits.Moderate),
	)
}

func (r *Router) registerSystem() {
	limits := r.opts.RateLimits

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.handle("GET /livez", LivezHandler(r.startTime, r.opts.BuildVersion),
		httpx.RateLimitByIP(limits.Lenient),
	)
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.opts.BuildVersion, r.opts.Database, r.opts.SessionStore),
		httpx.RateLimitByIP(limits.Lenient),
	)

	if r.opts.MetricsHandler != nil {
		r.Mux.Handle("GET /metrics", httpx.Chain(r.opts.MetricsHandler,
			httpx.RateLimitByIP(limits.Public),
		))
	}
}
