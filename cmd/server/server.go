package main

import (
	"context"
	"fmt"

	"codeberg.org/contentstudio/server/internal/auth"
	"codeberg.org/contentstudio/server/internal/config"
	"codeberg.org/contentstudio/server/internal/logger"
	"codeberg.org/contentstudio/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// development-only cookie key used when SESSION_SECRET is unset
const devSessionSecret = "content-studio-development-session-key"

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	secret := cfg.SessionSecret
	if secret == "" {
		logger.Warn("SESSION_SECRET not set, using development session key")
		secret = devSessionSecret
	}

	sessionStore, err := auth.NewSessionStore(auth.Options{
		Secret: secret,
		Secure: cfg.Environment == "production",
	})
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	limiterConfig := ratelimit.DefaultConfig()
	limiterConfig.Rate = cfg.RequestRate

	// share request counters across instances when redis is available
	var limiter *ratelimit.Limiter
	if services.Redis != nil {
		limiter, err = ratelimit.NewRedis(limiterConfig, services.Redis)
	} else {
		limiter, err = ratelimit.NewMemory(limiterConfig)
	}

	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	logger.Info("services initialized",
		"usage_store", cfg.UsageStore,
		"daily_limit", services.Tracker.Limit(),
		"generation_delay", cfg.GenerationDelay,
		"timezone", cfg.Location.String(),
		"request_rate", limiterConfig.Rate,
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config:   cfg,
		services: services,
		sessions: sessionStore,
		limiter:  limiter,
		router:   gin.Default(),
	}

	RegisterRoutes(server.router, server)

	return server, nil
}

// releases all backend connections
func (s *Server) Close() {
	s.services.Close()
}
