// Package ratelimit provides client-side rate limiting for the external
// APIs the ingest pipeline calls.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ServiceType identifies an upstream API service for rate limiting purposes.
type ServiceType string

const (
	// ServiceYouTubeData is the YouTube Data API.
	ServiceYouTubeData ServiceType = "youtube-data"
	// ServiceCaptions is the RapidAPI captions service.
	ServiceCaptions ServiceType = "captions"
	// ServiceLLM is the analysis LLM API.
	ServiceLLM ServiceType = "llm"
)

// Config holds rate limiting configuration for a service.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultLimits provides conservative defaults for each upstream service,
// well below the providers' actual limits to avoid burning quota.
var DefaultLimits = map[ServiceType]Config{
	ServiceYouTubeData: {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceCaptions:    {RequestsPerSecond: 1.0, BurstSize: 2}, // metered per-request plans
	ServiceLLM:         {RequestsPerSecond: 2.0, BurstSize: 4},
}

// Limiter provides rate limiting for upstream API requests.
// It uses a token bucket algorithm with optional backoff for 429 responses.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
}

// New creates a rate limiter for the specified service.
func New(service ServiceType) *Limiter {
	cfg, ok := DefaultLimits[service]
	if !ok {
		cfg = Config{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		service: service,
	}
}

// NewWithConfig creates a rate limiter with custom configuration.
func NewWithConfig(cfg Config) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return l.limiter.Wait(ctx)
}

// RecordRateLimitError records a rate limit error and sets a backoff period.
// Call this when receiving a 429 response from an upstream API.
func (l *Limiter) RecordRateLimitError(retryAfterSeconds int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if retryAfterSeconds <= 0 {
		// Default backoff: 60 seconds
		retryAfterSeconds = 60
	}
	l.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// Allow checks if a request can be made immediately without blocking.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return l.limiter.Allow()
}
