package main

import (
	"codeberg.org/contentstudio/server/internal/config"
	"codeberg.org/contentstudio/server/internal/ratelimit"
	"codeberg.org/contentstudio/server/internal/studio"
	"codeberg.org/contentstudio/server/internal/usage"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	sessions sessions.Store
	limiter  *ratelimit.Limiter
	router   *gin.Engine
}

// holds the usage backend and the studio built on it
type Services struct {
	Store   usage.Store
	Tracker *usage.Tracker
	Studio  *studio.Studio

	// set only for the matching USAGE_STORE
	Redis *redis.Client
	DB    *pgxpool.Pool
}
