package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clawdbotatg/nerve-cord/internal/config"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store    store.DataStore
	alog     *store.ActivityLog
	cfg      *config.Config
	log      zerolog.Logger
	started  time.Time
	instance string
}

// NewHandler creates a new Handler with the given store and activity log.
func NewHandler(ds store.DataStore, alog *store.ActivityLog, cfg *config.Config, logger zerolog.Logger) *Handler {
	return &Handler{
		store:    ds,
		alog:     alog,
		cfg:      cfg,
		log:      logger,
		started:  time.Now(),
		instance: uuid.NewString(),
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON request body into v, answering 400 itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
