package rest

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every HTTP request with method, path, status, duration, and remote address.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// tokenBucket is a single client's allowance.
type tokenBucket struct {
	lastRefill time.Time
	tokens     float64
}

const (
	// sweepInterval is how often idle buckets are dropped.
	sweepInterval = 10 * time.Second
	// defaultMaxClients bounds the number of tracked clients.
	defaultMaxClients = 10_000
)

// RateLimiter implements a token bucket rate limiter per client address.
// The burst equals the per-second rate, so a bucket untouched for a second
// is full again and is dropped; a returning client starts with a fresh one.
type RateLimiter struct {
	now        func() time.Time
	buckets    map[string]*tokenBucket
	lastSweep  time.Time
	rate       float64 // tokens per second, also the burst size
	maxClients int
	mu         sync.Mutex
}

// NewRateLimiter creates a rate limiter that allows rps requests per second per client.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		now:        time.Now,
		buckets:    make(map[string]*tokenBucket),
		rate:       float64(rps),
		maxClients: defaultMaxClients,
	}
}

// Allow reports whether a single request from client is permitted.
// It consumes one token if available. When maxClients active clients are
// already tracked, requests from new clients are denied.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= sweepInterval {
		rl.sweep(now)
	}

	b, ok := rl.buckets[client]
	if !ok {
		if len(rl.buckets) >= rl.maxClients {
			rl.sweep(now)
			if len(rl.buckets) >= rl.maxClients {
				return false
			}
		}
		b = &tokenBucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[client] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.rate
	if b.tokens > rl.rate {
		b.tokens = rl.rate
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// sweep drops buckets that have refilled completely.
func (rl *RateLimiter) sweep(now time.Time) {
	for client, b := range rl.buckets {
		if now.Sub(b.lastRefill) >= time.Second {
			delete(rl.buckets, client)
		}
	}
	rl.lastSweep = now
}

// RateLimitMiddleware applies rate limiting to incoming HTTP requests.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientAddr(r)) {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
