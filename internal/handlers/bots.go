package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clawdbotatg/nerve-cord/internal/metrics"
	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// RegisterBotRequest is the bot registration request body. The public key is
// opaque to the broker; clients encrypt message bodies with it.
type RegisterBotRequest struct {
	Name      string `json:"name"`
	PublicKey string `json:"publicKey"`
}

// RegisterBot handles POST /bots. Registration is replace-on-write: a second
// registration for the same name overwrites the first wholesale.
func (h *Handler) RegisterBot(w http.ResponseWriter, r *http.Request) {
	var req RegisterBotRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.PublicKey == "" {
		h.Error(w, http.StatusBadRequest, "name, publicKey required")
		return
	}

	bot := h.store.PutBot(&models.Bot{
		Name:       req.Name,
		PublicKey:  req.PublicKey,
		Registered: time.Now(),
	})

	metrics.BotsRegistered.Inc()
	h.JSON(w, http.StatusCreated, bot)
}

// ListBots handles GET /bots.
func (h *Handler) ListBots(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.store.ListBots())
}

// GetBot handles GET /bots/{name}.
func (h *Handler) GetBot(w http.ResponseWriter, r *http.Request) {
	bot, err := h.store.GetBot(chi.URLParam(r, "name"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "bot not found")
		return
	}
	h.JSON(w, http.StatusOK, bot)
}

// DeleteBot handles DELETE /bots/{name}. Deletion requires the separate
// admin credential on top of a full-tier bearer token, and fails closed when
// no admin token is configured at all.
func (h *Handler) DeleteBot(w http.ResponseWriter, r *http.Request) {
	if h.cfg.AdminToken == "" {
		h.Error(w, http.StatusForbidden, "admin token not configured")
		return
	}
	if strings.TrimSpace(r.Header.Get("X-Admin-Token")) != h.cfg.AdminToken {
		h.Error(w, http.StatusForbidden, "admin access required")
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.store.DeleteBot(name); err != nil {
		h.Error(w, http.StatusNotFound, "bot not found")
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"deleted": name})
}
