package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultDailyLimit      = 5
	defaultGenerationDelay = 2 * time.Second
	defaultRequestRate     = "60-M"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	environment := getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	port := getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	usageStore := strings.ToLower(getenv("USAGE_STORE"))
	if usageStore == "" {
		usageStore = StoreMemory
	}

	redisURL := getenv("REDIS_URL")
	databaseURL := getenv("DATABASE_URL")

	switch usageStore {
	case StoreMemory:
	case StoreRedis:
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable is required when USAGE_STORE=redis")
		}
	case StorePostgres:
		if databaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when USAGE_STORE=postgres")
		}
	default:
		return nil, fmt.Errorf("USAGE_STORE must be one of memory, redis, postgres (got %q)", usageStore)
	}

	sessionSecret := getenv("SESSION_SECRET")
	if sessionSecret == "" && environment == "production" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required in production")
	}

	dailyLimit := defaultDailyLimit
	if v := getenv("DAILY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("DAILY_LIMIT must be a positive integer (got %q)", v)
		}
		dailyLimit = n
	}

	delay := defaultGenerationDelay
	if v := getenv("GENERATION_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("GENERATION_DELAY must be a non-negative duration (got %q)", v)
		}
		delay = d
	}

	location := time.Local
	if v := getenv("TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
		}
		location = loc
	}

	requestRate := getenv("REQUEST_RATE")
	if requestRate == "" {
		requestRate = defaultRequestRate
	}

	return &Config{
		Environment:     environment,
		Port:            port,
		UsageStore:      usageStore,
		RedisURL:        redisURL,
		DatabaseURL:     databaseURL,
		SessionSecret:   sessionSecret,
		DailyLimit:      dailyLimit,
		GenerationDelay: delay,
		Location:        location,
		RequestRate:     requestRate,
		CORSOrigins:     splitList(getenv("CORS_ORIGINS")),
	}, nil
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
