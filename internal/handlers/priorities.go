package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clawdbotatg/nerve-cord/internal/ident"
	"github.com/clawdbotatg/nerve-cord/internal/metrics"
	"github.com/clawdbotatg/nerve-cord/internal/models"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// CreatePriorityRequest is the priority creation body. Rank 0 appends.
type CreatePriorityRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	Rank int    `json:"rank"`
}

// UpdatePriorityRequest is the priority patch body.
type UpdatePriorityRequest struct {
	Text *string `json:"text"`
	From *string `json:"from"`
	Rank int     `json:"rank"`
}

// ListPriorities handles GET /priorities.
func (h *Handler) ListPriorities(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.store.ListPriorities())
}

// CreatePriority handles POST /priorities.
func (h *Handler) CreatePriority(w http.ResponseWriter, r *http.Request) {
	var req CreatePriorityRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		h.Error(w, http.StatusBadRequest, "text required")
		return
	}
	from := req.From
	if from == "" {
		from = "unknown"
	}
	entry := h.store.CreatePriority(req.Text, from, req.Rank)
	h.JSON(w, http.StatusCreated, entry)
}

// TopPriority handles POST /priorities/top: the text becomes rank 1 and
// everything else shifts down.
func (h *Handler) TopPriority(w http.ResponseWriter, r *http.Request) {
	var req CreatePriorityRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		h.Error(w, http.StatusBadRequest, "text required")
		return
	}
	from := req.From
	if from == "" {
		from = "unknown"
	}
	h.JSON(w, http.StatusOK, h.store.TopPriority(req.Text, from))
}

// UpdatePriority handles PATCH /priorities/{id}.
func (h *Handler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdatePriorityRequest
	if !h.decode(w, r, &req) {
		return
	}
	entry, err := h.store.UpdatePriority(id, store.PriorityPatch{
		Text: req.Text,
		From: req.From,
		Rank: req.Rank,
	})
	if err != nil {
		h.Error(w, http.StatusNotFound, "priority not found")
		return
	}
	h.JSON(w, http.StatusOK, entry)
}

// CompletePriority handles POST /priorities/{id}/done: the entry is removed
// and the completion is recorded in the activity log.
func (h *Handler) CompletePriority(w http.ResponseWriter, r *http.Request) {
	completed, err := h.store.CompletePriority(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "priority not found")
		return
	}

	entry := &models.LogEntry{
		ID:      ident.LogEntry(),
		From:    completed.SetBy,
		Text:    "Priority completed: " + completed.Text,
		Tags:    []string{"priority", "done"},
		Created: time.Now(),
	}
	if err := h.alog.Append(entry); err != nil {
		// Completion already applied; the log record is best-effort.
		h.log.Error().Err(err).Msg("failed to log priority completion")
	} else {
		metrics.LogEntries.Inc()
	}

	h.JSON(w, http.StatusOK, map[string]any{"completed": completed, "logged": entry})
}

// DeletePriority handles DELETE /priorities/{id} and, for numeric path
// segments, the legacy delete-by-rank form. Returns the reranked list.
func (h *Handler) DeletePriority(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if rank, err := strconv.Atoi(id); err == nil {
		list, err := h.store.DeletePriorityByRank(rank)
		if err != nil {
			h.Error(w, http.StatusNotFound, "rank out of range")
			return
		}
		h.JSON(w, http.StatusOK, list)
		return
	}

	list, err := h.store.DeletePriority(id)
	if err != nil {
		h.Error(w, http.StatusNotFound, "priority not found")
		return
	}
	h.JSON(w, http.StatusOK, list)
}
