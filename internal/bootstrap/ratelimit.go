package bootstrap

import (
	"log"

	"github.com/go-sessiongate/sessiongate/internal/config"
	"github.com/go-sessiongate/sessiongate/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// rateLimitMiddlewares holds rate limiting middlewares for the form endpoints
type rateLimitMiddlewares struct {
	login    gin.HandlerFunc
	register gin.HandlerFunc
}

// initializeRateLimitRedisClient creates the shared Redis client when the
// redis rate limit store is configured
func initializeRateLimitRedisClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.EnableRateLimit || cfg.RateLimitStore != config.RateLimitStoreRedis {
		return nil, nil
	}

	client, err := middleware.CreateRedisClient(
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RedisDB,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("Redis rate limiting configured: %s (DB: %d)", cfg.RedisAddr, cfg.RedisDB)
	return client, nil
}

// setupRateLimiting configures rate limiting middlewares based on configuration
func setupRateLimiting(
	cfg *config.Config,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	if !cfg.EnableRateLimit {
		noOp := func(c *gin.Context) { c.Next() }
		return rateLimitMiddlewares{login: noOp, register: noOp}, nil
	}

	log.Printf("Rate limiting enabled (store: %s)", cfg.RateLimitStore)

	createLimiter := func(requestsPerMinute int) (gin.HandlerFunc, error) {
		return middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         middleware.RateLimitStoreType(cfg.RateLimitStore),
			RedisClient:       redisClient,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
		})
	}

	login, err := createLimiter(cfg.LoginRateLimit)
	if err != nil {
		return rateLimitMiddlewares{}, err
	}
	register, err := createLimiter(cfg.RegisterRateLimit)
	if err != nil {
		return rateLimitMiddlewares{}, err
	}

	return rateLimitMiddlewares{login: login, register: register}, nil
}
