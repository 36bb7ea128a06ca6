package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"record-service/internal/telemetry"
)

// NewCatalogServer wires the catalog routes, /metrics and the telemetry
// middleware. A nil limiter disables rate limiting.
func NewCatalogServer(h *CatalogHandler, limiter RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	h.RegisterRoutes(mux)

	var handler http.Handler = mux
	if limiter != nil {
		handler = RateLimit(limiter, handler)
	}
	return telemetry.Middleware(handler)
}

func NewTaskServer(h *TaskHandler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	h.RegisterRoutes(mux)
	return telemetry.Middleware(mux)
}
