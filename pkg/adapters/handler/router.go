package handler

import (
	"encoding/json"
	"net/http"

	"visittracker/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(service ports.AnalyticsService) http.Handler {
	h := NewHTTPHandler(service)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})

	mux.HandleFunc("GET /track", h.Track)
	mux.HandleFunc("GET /stats", h.Stats)
	mux.HandleFunc("DELETE /reset", h.Reset)

	mux.Handle("GET /metrics", MetricsHandler())

	return RequestLogger(mux)
}
