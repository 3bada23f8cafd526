package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rentloop/handoff/internal/handoff/service"
	"github.com/rentloop/handoff/internal/handoff/store"
	"github.com/rentloop/handoff/pkg/httpx"
	"github.com/rentloop/handoff/pkg/slogx"

	_ "github.com/rentloop/handoff/api/handoff" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	authSecret   []byte
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	IssuerService     *service.IssuerService
	RedemptionService *service.RedemptionService
	BookingService    *service.BookingService
}

func NewRouter(
	authSecret []byte,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		authSecret:   authSecret,
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
	r.registerBookings()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Handoff Token Service API
//	@version		0.1.0
//	@description	Issues, verifies, and redeems signed handover/return tokens for rental bookings.
//	@description
//	@description				Tokens are HMAC-SHA256 signed and single-use per action: redeeming a token
//	@description				flips the matching booking status exactly once, no matter how many times or
//	@description				how concurrently it is scanned.
//
//	@contact.name				RentLoop Team
//	@contact.url				https://github.com/rentloop/handoff
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

func (r *Router) registerTokens() {
	issueHandler := &IssueHandler{IssuerService: r.IssuerService}

	// POST /tokens/issue - moderate rate limit by caller (creates state)
	r.Mux.Handle("POST /v1/tokens/issue",
		httpx.Chain(http.HandlerFunc(issueHandler.HandleIssue),
			httpx.AuthnMiddleware(r.authSecret),
			httpx.RateLimitByCaller(httpx.ModerateLimit),
		),
	)

	// POST /tokens/reissue - moderate rate limit by caller (invalidates the live pair)
	r.Mux.Handle("POST /v1/tokens/reissue",
		httpx.Chain(http.HandlerFunc(issueHandler.HandleReissue),
			httpx.AuthnMiddleware(r.authSecret),
			httpx.RateLimitByCaller(httpx.ModerateLimit),
		),
	)

	// POST /tokens/verify - lenient rate limit (read-only, scanners may retry)
	verifyHandler := &VerifyHandler{RedemptionService: r.RedemptionService}
	r.Mux.Handle("POST /v1/tokens/verify",
		httpx.Chain(verifyHandler,
			httpx.AuthnMiddleware(r.authSecret),
			httpx.RateLimitByCaller(httpx.LenientLimit),
		),
	)

	// POST /tokens/redeem - strict rate limit by caller (state transition,
	// a legitimate scan happens at most twice per booking)
	redeemHandler := &RedeemHandler{RedemptionService: r.RedemptionService}
	r.Mux.Handle("POST /v1/tokens/redeem",
		httpx.Chain(redeemHandler,
			httpx.AuthnMiddleware(r.authSecret),
			httpx.RateLimitByCaller(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerBookings() {
	h := &BookingsHandler{BookingService: r.BookingService}

	// POST /bookings - moderate rate limit by caller
	r.Mux.Handle("POST /v1/bookings",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.authSecret),
			httpx.RateLimitByCaller(httpx.ModerateLimit),
		),
	)

	// GET /bookings/{bookingID}/events - lenient rate limit (audit reads)
	r.Mux.Handle("GET /v1/bookings/{bookingID}/events",
		httpx.Chain(http.HandlerFunc(h.HandleListEvents),
			httpx.AuthnMiddleware(r.authSecret),
			httpx.RateLimitByCaller(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
