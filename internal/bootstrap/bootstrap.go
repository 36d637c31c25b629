package bootstrap

import (
	"net/http"

	"github.com/go-sessiongate/sessiongate/internal/auth"
	"github.com/go-sessiongate/sessiongate/internal/config"
	"github.com/go-sessiongate/sessiongate/internal/metrics"
	"github.com/go-sessiongate/sessiongate/internal/services"
	"github.com/go-sessiongate/sessiongate/internal/session"
	"github.com/go-sessiongate/sessiongate/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB                   *store.Store
	MetricsRecorder      metrics.Recorder
	RateLimitRedisClient *redis.Client

	// Domain
	UserService *services.UserService
	Binder      *session.Binder

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 2: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 3: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 4: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics and Redis
func (app *Application) initializeInfrastructure() error {
	var err error

	app.DB, err = initializeDatabase(app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = metrics.Init(app.Config.MetricsEnabled)

	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up the verifier, binder and user service
func (app *Application) initializeBusinessLayer() {
	verifier := auth.NewVerifier(app.DB)
	app.Binder = session.NewBinder(app.DB)
	app.UserService = services.NewUserService(
		app.DB,
		verifier,
		app.Config.BcryptCost,
		app.MetricsRecorder,
	)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.UserService,
		app.Binder,
		app.MetricsRecorder,
	)

	router, err := setupRouter(
		app.Config,
		app.DB,
		app.HandlerSet,
		app.Binder,
		app.MetricsRecorder,
		app.RateLimitRedisClient,
	)
	if err != nil {
		return err
	}
	app.Router = router

	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}
