package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clawdbotatg/nerve-cord/internal/metrics"
	"github.com/clawdbotatg/nerve-cord/internal/models"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// SendMessageRequest is the send-message request body. Encrypted is a *bool
// so that an absent flag, false, or a non-boolean value all fail validation:
// only the literal true is accepted.
type SendMessageRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Encrypted *bool  `json:"encrypted"`
	Priority  string `json:"priority"`
	ReplyTo   string `json:"replyTo"`
}

// ReplyRequest is the reply request body. Recipient, subject, and priority
// come from the parent message.
type ReplyRequest struct {
	From      string `json:"from"`
	Body      string `json:"body"`
	Encrypted *bool  `json:"encrypted"`
}

// SendMessage handles POST /messages.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.From == "" || req.To == "" || req.Body == "" {
		h.Error(w, http.StatusBadRequest, "from, to, body required")
		return
	}
	if req.Encrypted == nil || !*req.Encrypted {
		h.Error(w, http.StatusBadRequest, "encrypted:true required, plaintext messages not allowed")
		return
	}

	msg := h.store.CreateMessage(&models.Message{
		From:      req.From,
		To:        req.To,
		Subject:   req.Subject,
		Body:      req.Body,
		Encrypted: true,
		Priority:  req.Priority,
		ReplyTo:   req.ReplyTo,
	})

	metrics.MessagesSent.Inc()
	h.JSON(w, http.StatusCreated, msg)
}

// ListMessages handles GET /messages with optional to/from/status filters.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results := h.store.ListMessages(store.MessageFilter{
		To:     q.Get("to"),
		From:   q.Get("from"),
		Status: q.Get("status"),
	})
	h.JSON(w, http.StatusOK, results)
}

// GetMessage handles GET /messages/{id}.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.store.GetMessage(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "not found")
		return
	}
	h.JSON(w, http.StatusOK, msg)
}

// ReplyMessage handles POST /messages/{id}/reply. The parent must exist;
// replying auto-fills the recipient, a "Re: " subject, and the parent's
// priority.
func (h *Handler) ReplyMessage(w http.ResponseWriter, r *http.Request) {
	parent, err := h.store.GetMessage(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "not found")
		return
	}

	var req ReplyRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.From == "" || req.Body == "" {
		h.Error(w, http.StatusBadRequest, "from, body required")
		return
	}
	if req.Encrypted == nil || !*req.Encrypted {
		h.Error(w, http.StatusBadRequest, "encrypted:true required, plaintext messages not allowed")
		return
	}

	reply := h.store.CreateMessage(&models.Message{
		From:      req.From,
		To:        parent.From,
		Subject:   "Re: " + parent.Subject,
		Body:      req.Body,
		Encrypted: true,
		Priority:  parent.Priority,
		ReplyTo:   parent.ID,
	})

	metrics.RepliesSent.Inc()
	h.JSON(w, http.StatusCreated, reply)
}

// MarkSeen handles POST /messages/{id}/seen.
func (h *Handler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	msg, err := h.store.MarkSeen(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "not found")
		return
	}
	h.JSON(w, http.StatusOK, msg)
}

// BurnMessage handles POST /messages/{id}/burn: the message comes back
// exactly once and is gone afterwards.
func (h *Handler) BurnMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.store.BurnMessage(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "not found")
		return
	}
	metrics.MessagesBurned.Inc()
	h.JSON(w, http.StatusOK, msg)
}

// DeleteMessage handles DELETE /messages/{id}.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMessage(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.Error(w, http.StatusInternalServerError, "delete failed")
		return
	}
	h.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
