package config

import (
	"strings"
	"time"
)

// CacheConfig tunes the Redis response cache. Methods lists which HTTP
// methods are cacheable; KeyStrategy decides which request parts form
// the cache key; MaxBodyBytes caps the size of a stored response.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* variables.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBoolDefault("CACHE_ENABLED", true),
		Methods:      parseMethods(envStrDefault("CACHE_METHODS", "GET")),
		TTL:          envDurDefault("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStrDefault("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStrDefault("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envIntDefault("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToUpper(p)); p != "" {
			m[p] = true
		}
	}
	return m
}
