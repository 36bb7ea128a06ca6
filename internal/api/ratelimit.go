package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
)

type RateLimiter interface {
	IsRateLimited(ctx context.Context, key string) bool
}

// RateLimit rejects requests with 429 once the client IP exceeds its quota.
func RateLimit(limiter RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			clientIP = host
		}

		if limiter.IsRateLimited(r.Context(), clientIP) {
			slog.Warn("Rate limit exceeded", "ip", clientIP)
			writeDetail(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
