package handlers

import (
	"net/http"
	"time"
)

const version = "0.1.0"

// HealthResponse is the health snapshot.
type HealthResponse struct {
	OK       bool   `json:"ok"`
	Version  string `json:"version"`
	Instance string `json:"instance"`
	Messages int    `json:"messages"`
	Bots     int    `json:"bots"`
	Uptime   int64  `json:"uptime"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, HealthResponse{
		OK:       true,
		Version:  version,
		Instance: h.instance,
		Messages: h.store.CountMessages(),
		Bots:     h.store.CountBots(),
		Uptime:   int64(time.Since(h.started).Seconds()),
	})
}
