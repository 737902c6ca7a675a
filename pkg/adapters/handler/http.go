package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"visittracker/pkg/ports"
)

type HTTPHandler struct {
	service ports.AnalyticsService
}

func NewHTTPHandler(service ports.AnalyticsService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Track records a page visit. Designed to be called as a fire-and-forget
// beacon on page load, so nothing about the input is ever rejected.
func (h *HTTPHandler) Track(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	// Explicit ref parameter wins over the Referer header
	referrer := r.URL.Query().Get("ref")
	if referrer == "" {
		referrer = r.Header.Get("Referer")
	}

	if err := h.service.Track(r.Context(), path, referrer, r.UserAgent(), clientIP(r)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	visitsTracked.Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"tracked": true,
	})
}

// Stats returns the full dashboard payload, recomputed from the store on
// every call. There is no partial-failure mode: if any query fails the
// whole request fails.
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	statsServed.Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"stats":  stats,
	})
}

// Reset deletes all recorded visits
func (h *HTTPHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resetsTotal.Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": "Analytics data cleared",
	})
}

// clientIP resolves the best-effort client address. Behind the serverless
// proxy RemoteAddr is always the proxy, so X-Forwarded-For takes priority.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
