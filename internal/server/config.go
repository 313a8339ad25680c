package server

import (
	"time"

	"github.com/raysh454/segmentd/internal/ratelimit"
)

// Config holds the HTTP surface settings.
type Config struct {
	// ListenAddr is the host:port used by HTTPServer.
	ListenAddr string

	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string

	// EnableDemoMode allows requests to substitute generated signals.
	EnableDemoMode bool

	// RequestTimeout bounds REST handlers. WebSocket sessions are not bound by it.
	RequestTimeout time.Duration

	// ReadTimeout bounds reading a request, headers and body included.
	ReadTimeout time.Duration

	// RateLimit throttles each client address.
	RateLimit ratelimit.Config

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers; otherwise
	// clients are keyed by the socket peer address.
	TrustProxy bool
}

// DefaultConfig returns a Config with sensible development defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":8000",
		AllowedOrigins: []string{"*"},
		EnableDemoMode: true,
		RequestTimeout: 10 * time.Second,
		ReadTimeout:    15 * time.Second,
		RateLimit:      ratelimit.DefaultConfig(),
	}
}
