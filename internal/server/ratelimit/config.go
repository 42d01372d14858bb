package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig is used when no configuration is supplied.
func DefaultConfig() *Config {
	return NewConfig(true, 30, time.Minute, 10)
}

// NewConfig limits analysis requests to limit per window with the given
// burst. Lightweight read endpoints get a tenfold default limit.
func NewConfig(enabled bool, limit int, window time.Duration, burst int) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    limit * 10,
		DefaultWindow:   window,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: AnalyzeEndpointConfigs(limit, window, burst),
	}
}

// AnalyzeEndpointConfigs returns the configurations for the expensive endpoints.
func AnalyzeEndpointConfigs(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyze", Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
		{Path: "/analyze/", Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
