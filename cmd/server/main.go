package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/contentstudio/server/internal/config"
	"codeberg.org/contentstudio/server/internal/logger"
)

// @title AI Content Studio API
// @version 1.0
// @description Caption and hashtag generation for small businesses
// @description
// @description Features:
// @description - Three captions and ten hashtags per generation
// @description - Five free generations per client per day
// @description - Anonymous client identity via session cookie or X-Client-ID header

// @contact.name API Support
// @contact.url https://codeberg.org/contentstudio/server

// @BasePath /api/v1

func main() {
	logger.Info("starting content studio server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// ENVIRONMENT may have come from .env, which loads after the package default
	logger.SetDefault(logger.New(cfg.Environment, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	srv, err := NewServer(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
