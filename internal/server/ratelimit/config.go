package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// Rule limits requests whose method and path match. Pattern uses path.Match
// syntax, so "/resumes/*/fields" matches any single id segment.
type Rule struct {
	Method  string
	Pattern string
	Limit   int           // Maximum requests per window; <= 0 means unlimited
	Window  time.Duration // Time window
	Burst   int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Rules           []Rule
}

// LoadConfig loads rate limiting configuration from environment variables.
// getenv is usually os.Getenv.
func LoadConfig(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.bool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTimeout:     time.Hour,
		Whitelist:       parseIPList(env.string("RATE_LIMIT_WHITELIST", "")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-endpoint limits.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "GET", Pattern: "/health", Limit: 0},

		// Creating documents writes to storage.
		{Method: "POST", Pattern: "/resumes", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "PUT", Pattern: "/resumes/*", Limit: 60, Window: time.Minute, Burst: 10},

		// Field edits arrive once per keystroke.
		{Method: "PATCH", Pattern: "/resumes/*/fields", Limit: 3000, Window: time.Minute, Burst: 100},
	}
}

type envReader func(string) string

func (e envReader) string(key, def string) string {
	if v := e(key); v != "" {
		return v
	}
	return def
}

func (e envReader) int(key string, def int) int {
	if v, err := strconv.Atoi(e(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) bool(key string, def bool) bool {
	if v, err := strconv.ParseBool(e(key)); err == nil {
		return v
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(e(key)); err == nil {
		return v
	}
	return def
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
