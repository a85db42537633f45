package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/domain-tracker/internal/delivery/http/handler"
	"github.com/user/domain-tracker/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)

	mux.HandleFunc("GET /api/snapshots", h.HandleListSnapshots)
	mux.HandleFunc("DELETE /api/snapshots/{id}", h.HandleDeleteSnapshot)

	mux.HandleFunc("GET /api/rows", h.HandleQueryRows)
	mux.HandleFunc("GET /api/diff", h.HandleDiff)
	mux.HandleFunc("GET /api/domain/{id}/history", h.HandleDomainHistory)

	mux.HandleFunc("GET /api/scrape/status", h.HandleScrapeStatus)
	mux.HandleFunc("POST /api/scrape/start", h.HandleScrapeStart)
	mux.HandleFunc("POST /api/scrape/stop", h.HandleScrapeStop)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middlewares
	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
