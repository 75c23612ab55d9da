package api

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/shelfline/shelfline-server/internal/http/response"
	"github.com/shelfline/shelfline-server/internal/ratelimit"
)

// Per-client inbound limits. Generous enough for a busy back-office tab,
// tight enough to shrug off a stuck retry loop.
const (
	clientRPS   = 30
	clientBurst = 60
)

// rateLimitMiddleware rejects requests from clients that exceed their token
// bucket. It runs after RealIP so the key is the true client address.
func rateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				response.Error(w, http.StatusTooManyRequests, "too many requests", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey extracts the client address without the ephemeral port, so all
// connections from one host share a bucket.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
