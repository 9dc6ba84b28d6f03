package handlers

import (
	"net"
	"net/http"
	"time"

	"github.com/clawdbotatg/nerve-cord/internal/metrics"
	"github.com/clawdbotatg/nerve-cord/internal/models"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// HeartbeatRequest is the check-in body. Status and Task only matter when
// the name belongs to a registered larva.
type HeartbeatRequest struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	SkillVersion string `json:"skillVersion"`
	Status       string `json:"status"`
	Task         string `json:"task"`
}

// HeartbeatStatus is one entry of the public heartbeat listing, with
// liveness derived at read time rather than stored.
type HeartbeatStatus struct {
	models.Heartbeat
	Online bool  `json:"online"`
	AgeMs  int64 `json:"ageMs"`
}

// PostHeartbeat handles POST /heartbeat.
func (h *Handler) PostHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req HeartbeatRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		h.Error(w, http.StatusBadRequest, "name required")
		return
	}

	h.store.RecordHeartbeat(&models.Heartbeat{
		Name:         req.Name,
		IP:           remoteIP(r),
		Version:      req.Version,
		SkillVersion: req.SkillVersion,
	}, req.Status, req.Task)

	metrics.HeartbeatsReceived.Inc()
	h.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetHeartbeats handles GET /heartbeat. Public by design: who is alive is
// not a secret, and the poller needs it before it has any credentials.
func (h *Handler) GetHeartbeats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	beats := h.store.ListHeartbeats()
	result := make([]HeartbeatStatus, len(beats))
	for i, hb := range beats {
		age := now.Sub(hb.LastSeen)
		result[i] = HeartbeatStatus{
			Heartbeat: *hb,
			Online:    age < store.HeartbeatTimeout,
			AgeMs:     age.Milliseconds(),
		}
	}
	h.JSON(w, http.StatusOK, result)
}

// remoteIP strips the port chi's RealIP middleware leaves on RemoteAddr.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
