package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clawdbotatg/nerve-cord/internal/ident"
	"github.com/clawdbotatg/nerve-cord/internal/metrics"
	"github.com/clawdbotatg/nerve-cord/internal/models"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// AppendLogRequest is the activity log entry body.
type AppendLogRequest struct {
	From    string   `json:"from"`
	Text    string   `json:"text"`
	Tags    []string `json:"tags"`
	Details any      `json:"details"`
}

// AppendLog handles POST /log.
func (h *Handler) AppendLog(w http.ResponseWriter, r *http.Request) {
	var req AppendLogRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.From == "" || req.Text == "" {
		h.Error(w, http.StatusBadRequest, "from, text required")
		return
	}

	entry := &models.LogEntry{
		ID:      ident.LogEntry(),
		From:    req.From,
		Text:    req.Text,
		Tags:    req.Tags,
		Details: req.Details,
		Created: time.Now(),
	}
	if err := h.alog.Append(entry); err != nil {
		h.log.Error().Err(err).Msg("failed to append log entry")
		h.Error(w, http.StatusInternalServerError, "failed to write log entry")
		return
	}

	metrics.LogEntries.Inc()
	h.JSON(w, http.StatusCreated, entry)
}

// QueryLog handles GET /log with ?date=YYYY-MM-DD, ?from, ?tag, ?limit.
func (h *Handler) QueryLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	results := h.alog.Query(store.LogQuery{
		Date:  q.Get("date"),
		From:  q.Get("from"),
		Tag:   q.Get("tag"),
		Limit: limit,
	})
	h.JSON(w, http.StatusOK, results)
}

// DeleteLog handles DELETE /log/{id}. A failed shard rewrite is a storage
// error, not a missing id.
func (h *Handler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := h.alog.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.log.Error().Err(err).Msg("failed to delete log entry")
		h.Error(w, http.StatusInternalServerError, "failed to delete log entry")
		return
	}
	h.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
