package main

import (
	"time"

	"codeberg.org/contentstudio/server/internal/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// allows browser clients from the configured origins (any origin when none are set)
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", auth.HeaderClientID},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}

	return cors.New(cfg)
}
