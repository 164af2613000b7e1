// Package httpapi wires the HTTP transport (Gin) to the admin dashboard
// handlers and middleware. It centralizes cross-cutting concerns such as
// tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, session auth, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/config"
	"github.com/grabthumb/thumbbot/internal/http/handlers"
	"github.com/grabthumb/thumbbot/internal/http/middleware"
	"github.com/grabthumb/thumbbot/internal/services"
)

// sessionCookieName is the cookie carrying the signed dashboard session.
const sessionCookieName = "thumbbot_session"

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: the login pair, the session-guarded dashboard pages under /admin,
// and the JSON stats endpoint under /api.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip compression for the HTML pages
//  8. Cookie session store (dashboard auth)
//  9. Rate limiter (per session user/IP)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, notifier services.Notifier, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(parseTemplates())

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"Cookie", // session cookie must never reach the logs
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compress the HTML pages
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) Signed cookie sessions for dashboard auth
	store := cookie.NewStore([]byte(cfg.Dashboard.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((12 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	// 9) Token-bucket rate limiter per session user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db
	settingsSvc := &services.SettingsService{DB: db}
	accountSvc := &services.AccountService{
		DB:          db,
		Settings:    settingsSvc,
		Notifier:    notifier,
		PremiumDays: cfg.Bot.PremiumDays,
	}
	ticketSvc := &services.TicketService{DB: db}

	h := &handlers.Handler{
		DB:       db,
		Accounts: accountSvc,
		Tickets:  ticketSvc,
		Settings: settingsSvc,
		Cfg:      cfg.Dashboard,
	}

	// Login pair stays outside the session guard.
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin") })
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.DoLogin)
	r.GET("/logout", h.DoLogout)

	// Dashboard pages
	admin := r.Group("/admin", middleware.RequireSession("/login"))
	{
		admin.GET("", h.Dashboard)
		admin.GET("/users", h.Users)
		admin.POST("/users/:id/:action", h.UserAction)
		admin.GET("/tickets", h.TicketList)
		admin.GET("/tickets/:id", h.TicketDetail)
		admin.POST("/tickets/:id/status", h.TicketStatus)
		admin.GET("/tickets/:id/attachments.zip", h.TicketAttachmentsZip)
		admin.GET("/agents", h.Agents)
		admin.POST("/agents", h.AddAgent)
		admin.GET("/settings", h.ShowSettings)
		admin.POST("/settings", h.SaveSettings)
	}

	// JSON endpoints
	api := r.Group("/api", middleware.RequireSession("/login"))
	{
		api.GET("/stats", h.APIStats)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
