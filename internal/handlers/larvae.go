package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clawdbotatg/nerve-cord/internal/metrics"
	"github.com/clawdbotatg/nerve-cord/internal/models"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// RegisterLarvaRequest is the larva registration body.
type RegisterLarvaRequest struct {
	Name   string `json:"name"`
	Task   string `json:"task"`
	Status string `json:"status"`
}

// UpdateLarvaRequest is the larva patch body. Nil fields are left unchanged.
type UpdateLarvaRequest struct {
	Task   *string `json:"task"`
	Status *string `json:"status"`
}

// RegisterLarva handles POST /larvae. Re-registering a name keeps its
// original registration time.
func (h *Handler) RegisterLarva(w http.ResponseWriter, r *http.Request) {
	var req RegisterLarvaRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		h.Error(w, http.StatusBadRequest, "name required")
		return
	}

	larva := h.store.RegisterLarva(&models.Larva{
		Name:   req.Name,
		Task:   req.Task,
		Status: req.Status,
		IP:     remoteIP(r),
	})

	metrics.LarvaeRegistered.Inc()
	h.JSON(w, http.StatusCreated, larva)
}

// ListLarvae handles GET /larvae. ?active=true hides larvae idle for an hour
// or more; the sweep removes them entirely after two.
func (h *Handler) ListLarvae(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	h.JSON(w, http.StatusOK, h.store.ListLarvae(activeOnly))
}

// GetLarva handles GET /larvae/{name}.
func (h *Handler) GetLarva(w http.ResponseWriter, r *http.Request) {
	larva, err := h.store.GetLarva(chi.URLParam(r, "name"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "larva not found")
		return
	}
	h.JSON(w, http.StatusOK, larva)
}

// UpdateLarva handles PATCH /larvae/{name} and refreshes lastSeen.
func (h *Handler) UpdateLarva(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, err := h.store.GetLarva(name); err != nil {
		h.Error(w, http.StatusNotFound, "larva not found")
		return
	}

	var req UpdateLarvaRequest
	if !h.decode(w, r, &req) {
		return
	}

	larva, err := h.store.UpdateLarva(name, store.LarvaPatch{
		Task:   req.Task,
		Status: req.Status,
	})
	if err != nil {
		h.Error(w, http.StatusNotFound, "larva not found")
		return
	}
	h.JSON(w, http.StatusOK, larva)
}

// DeleteLarva handles DELETE /larvae/{name}.
func (h *Handler) DeleteLarva(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.store.DeleteLarva(name); err != nil {
		h.Error(w, http.StatusNotFound, "larva not found")
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"deleted": name})
}
