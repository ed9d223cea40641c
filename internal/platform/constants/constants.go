// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Catalog Limits: Field lengths enforced by the service validators.
  - Time Context: The closed vocabulary for a story's time_context.
  - HTTP Headers: Names shared by the middleware chain.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "baking-atlas-api"
	AppVersion = "0.1.0-dev"
	APIPrefix  = "/api/v1"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// ReadinessTimeout bounds the store ping behind /ready.
	ReadinessTimeout = 2 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Catalog Limits

const (
	MaxNameLength     = 200
	MaxTitleLength    = 300
	MaxSlugLength     = 120
	MaxTagNameLength  = 64
	MaxTagTypeLength  = 64
	MaxSummaryLength  = 2000
	MaxCategoryLength = 100
	MaxAuthorLength   = 200
)

// # Time Context

// Allowed values for a story's time_context.
const (
	TimeContextHistorical = "historical"
	TimeContextModern     = "modern"
	TimeContextOngoing    = "ongoing"
	TimeContextMixed      = "mixed"
)

// TimeContexts lists every accepted time_context value.
var TimeContexts = []string{
	TimeContextHistorical,
	TimeContextModern,
	TimeContextOngoing,
	TimeContextMixed,
}

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
