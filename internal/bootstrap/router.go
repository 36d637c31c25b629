package bootstrap

import (
	"log"
	"net/http"

	"github.com/go-sessiongate/sessiongate/internal/config"
	"github.com/go-sessiongate/sessiongate/internal/metrics"
	"github.com/go-sessiongate/sessiongate/internal/middleware"
	sessionpkg "github.com/go-sessiongate/sessiongate/internal/session"
	"github.com/go-sessiongate/sessiongate/internal/store"
	"github.com/go-sessiongate/sessiongate/internal/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// setupRouter builds the gin engine with middleware and routes
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	hs handlerSet,
	binder *sessionpkg.Binder,
	recorder metrics.Recorder,
	redisClient *redis.Client,
) (*gin.Engine, error) {
	setupGinMode(cfg)

	r := gin.New()
	// Metrics middleware must run before other routes
	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.IPMiddleware())

	// Session middleware
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction, // Require HTTPS in production
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.SessionName, sessionStore))

	// Embedded templates and static files
	r.SetHTMLTemplate(templates.Load())
	staticFS, err := templates.Static()
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(staticFS))

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Prometheus metrics endpoint (with optional authentication)
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	rateLimiters, err := setupRateLimiting(cfg, redisClient)
	if err != nil {
		return nil, err
	}

	// Guest routes (redirect authenticated users to the home page)
	guest := r.Group("", middleware.RequireGuest(binder))
	{
		guest.GET("/login", hs.Auth.LoginPage)
		guest.POST("/login", rateLimiters.login, hs.Auth.Login)
		guest.GET("/register", hs.Register.RegisterPage)
		guest.POST("/register", rateLimiters.register, hs.Register.Register)
	}

	// Protected routes (require login)
	protected := r.Group("", middleware.RequireAuth(binder, recorder))
	{
		protected.GET("/", hs.Home.HomePage)
	}

	r.POST("/logout", hs.Auth.Logout)

	return r, nil
}

// createHealthCheckHandler creates health check endpoint handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch err := db.Health(); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
		log.Printf("Gin mode: Release (production)")
		return
	}
	gin.SetMode(gin.DebugMode)
	log.Printf("Gin mode: Debug (development)")
}
