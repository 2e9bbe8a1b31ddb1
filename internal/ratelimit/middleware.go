package ratelimit

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"codeberg.org/contentstudio/server/internal/errors"
	"codeberg.org/contentstudio/server/internal/logger"
)

// per-IP burst protection, independent of the daily generation quota
type Limiter struct {
	config  *Config
	limiter *limiter.Limiter
}

// creates a limiter counting in process memory
func NewMemory(config *Config) (*Limiter, error) {
	return newLimiter(config, memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          config.Prefix,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	}))
}

// creates a limiter counting in redis, shared by every server instance
func NewRedis(config *Config, client *redis.Client) (*Limiter, error) {
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: config.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}

	return newLimiter(config, store)
}

func newLimiter(config *Config, store limiter.Store) (*Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(config.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid request rate %q: %w", config.Rate, err)
	}

	return &Limiter{
		config:  config,
		limiter: limiter.New(store, rate),
	}, nil
}

// returns a Gin middleware that rejects clients exceeding the request rate
func (l *Limiter) Middleware() gin.HandlerFunc {
	limited := mgin.NewMiddleware(l.limiter,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("request rate exceeded", "ip", c.ClientIP(), "path", c.Request.URL.Path)
			errors.TooManyRequests(c, "too many requests, slow down")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// an unavailable counter store must not take the API down
			logger.ErrorErr(err, "rate limit store failed", "ip", c.ClientIP())
			c.Next()
		}),
	)

	return func(c *gin.Context) {
		if !l.config.Enabled || l.config.IsExemptPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		limited(c)
	}
}
