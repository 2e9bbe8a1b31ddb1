package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/contentstudio/server/internal/config"
	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/studio"
	"codeberg.org/contentstudio/server/internal/usage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

const (
	// generation pacing across all clients
	generationRate  = 50
	generationBurst = 10
)

// creates the usage store, tracker, generator and studio
func InitializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	switch cfg.UsageStore {
	case config.StoreRedis:
		store, err := usage.NewRedisStoreFromURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis usage store: %w", err)
		}

		services.Store = store
		services.Redis = store.Client()

	case config.StorePostgres:
		db, err := newPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		store := usage.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}

		services.Store = store
		services.DB = db

	default:
		services.Store = usage.NewMemoryStore()
	}

	services.Tracker = usage.NewTracker(services.Store, usage.SystemClock{},
		usage.WithLimit(cfg.DailyLimit),
		usage.WithLocation(cfg.Location),
	)

	generator := content.NewTemplateGenerator(
		content.WithLatency(cfg.GenerationDelay),
		content.WithRateLimiter(rate.NewLimiter(generationRate, generationBurst)),
	)

	services.Studio = studio.New(services.Tracker, generator)

	return services, nil
}

func newPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// poolers in transaction mode do not support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// releases backend connections
func (s *Services) Close() {
	if s.Redis != nil {
		s.Redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if s.DB != nil {
		s.DB.Close()
	}
}
