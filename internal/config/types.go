package config

import "time"

// usage store backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Environment     string
	Port            string
	UsageStore      string
	RedisURL        string
	DatabaseURL     string
	SessionSecret   string
	DailyLimit      int
	GenerationDelay time.Duration
	Location        *time.Location
	RequestRate     string
	CORSOrigins     []string
}

// flags for the terminal client
type Flags struct {
	Remote    bool
	Endpoint  string
	StatePath string
	LogPath   string
	Delay     time.Duration
}
