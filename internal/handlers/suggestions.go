package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clawdbotatg/nerve-cord/internal/models"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// CreateSuggestionRequest is the suggestion creation body.
type CreateSuggestionRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	From  string `json:"from"`
}

// UpdateSuggestionRequest is the suggestion patch body.
type UpdateSuggestionRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// ListSuggestions handles GET /suggestions.
func (h *Handler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.store.ListSuggestions())
}

// CreateSuggestion handles POST /suggestions. Open to every tier.
func (h *Handler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req CreateSuggestionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Title == "" {
		h.Error(w, http.StatusBadRequest, "title required")
		return
	}

	entry := h.store.CreateSuggestion(&models.Suggestion{
		Title: req.Title,
		Body:  req.Body,
		From:  req.From,
	})
	h.JSON(w, http.StatusCreated, entry)
}

// GetSuggestion handles GET /suggestions/{id}.
func (h *Handler) GetSuggestion(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.GetSuggestion(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "suggestion not found")
		return
	}
	h.JSON(w, http.StatusOK, entry)
}

// UpdateSuggestion handles PATCH /suggestions/{id}.
func (h *Handler) UpdateSuggestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateSuggestionRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.store.UpdateSuggestion(id, store.SuggestionPatch{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		h.Error(w, http.StatusNotFound, "suggestion not found")
		return
	}
	h.JSON(w, http.StatusOK, entry)
}

// DeleteSuggestion handles DELETE /suggestions/{id}.
func (h *Handler) DeleteSuggestion(w http.ResponseWriter, r *http.Request) {
	removed, err := h.store.DeleteSuggestion(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "suggestion not found")
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"deleted": removed})
}
