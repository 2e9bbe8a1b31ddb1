package main

import (
	"codeberg.org/contentstudio/server/api/rest/generate"
	"codeberg.org/contentstudio/server/api/rest/health"
	"codeberg.org/contentstudio/server/api/rest/options"
	"codeberg.org/contentstudio/server/api/rest/usage"
	"codeberg.org/contentstudio/server/internal/auth"
	"codeberg.org/contentstudio/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.CORSOrigins))
	router.Use(server.limiter.Middleware())
	router.GET("/health", health.Handler)
	router.NoRoute(func(c *gin.Context) {
		errors.NotFound(c, "route")
	})

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)
		options.RegisterRoutes(v1)

		clients := v1.Group("")
		clients.Use(auth.ClientMiddleware(server.sessions))

		generate.RegisterRoutes(clients, server.services.Studio)
		usage.RegisterRoutes(clients, server.services.Studio)
	}
}
