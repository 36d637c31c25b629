package bootstrap

import (
	"github.com/go-sessiongate/sessiongate/internal/config"
	"github.com/go-sessiongate/sessiongate/internal/handlers"
	"github.com/go-sessiongate/sessiongate/internal/metrics"
	"github.com/go-sessiongate/sessiongate/internal/services"
	"github.com/go-sessiongate/sessiongate/internal/session"
)

// handlerSet groups the HTTP handlers wired into the router
type handlerSet struct {
	Auth     *handlers.AuthHandler
	Register *handlers.RegisterHandler
	Home     *handlers.HomeHandler
}

func initializeHandlers(
	cfg *config.Config,
	userService *services.UserService,
	binder *session.Binder,
	m metrics.Recorder,
) handlerSet {
	return handlerSet{
		Auth:     handlers.NewAuthHandler(userService, binder, cfg.BaseURL, m),
		Register: handlers.NewRegisterHandler(userService),
		Home:     handlers.NewHomeHandler(),
	}
}
