package ratelimit

import "strings"

// holds request rate limiting configuration
type Config struct {
	// whether the limiter is active
	Enabled bool

	// ulule formatted rate, e.g. "60-M" for 60 requests per minute
	Rate string

	// key prefix in the shared store
	Prefix string

	// paths that bypass the limiter (health checks, etc.)
	ExemptPaths []string
}

// returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Rate:    "60-M",
		Prefix:  "content_studio_rate",
		ExemptPaths: []string{
			"/health",
			"/api/v1/ping",
		},
	}
}

// checks if a path should bypass the limiter
func (c *Config) IsExemptPath(path string) bool {
	for _, exempt := range c.ExemptPaths {
		if path == exempt || strings.HasPrefix(path, exempt+"/") {
			return true
		}
	}
	return false
}
