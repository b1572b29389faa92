package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact request path
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Submitting a job description is the only write path
		{Path: "/dashboard/generate-cover-letter", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
		{Path: "/api/cover-letters", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},

		// Reads fall through to the default limit
	}
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks and static assets are never limited
	if method == "GET" && (path == "/health" || strings.HasPrefix(path, "/static/")) {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	return nil
}
