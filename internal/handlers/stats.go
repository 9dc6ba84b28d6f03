package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/clawdbotatg/nerve-cord/internal/models"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// BotStats is the per-bot slice of the stats response.
type BotStats struct {
	Registered     time.Time  `json:"registered"`
	Sent           int        `json:"sent"`
	Received       int        `json:"received"`
	Pending        int        `json:"pending"`
	LastSentAt     *time.Time `json:"lastSentAt"`
	LastReceivedAt *time.Time `json:"lastReceivedAt"`
}

// StatsResponse is the public aggregate snapshot. The dashboard consumes
// exactly this, through the same endpoint as every other client.
type StatsResponse struct {
	Uptime           int64               `json:"uptime"`
	UptimeHuman      string              `json:"uptimeHuman"`
	TotalMessages    int                 `json:"totalMessages"`
	StatusBreakdown  map[string]int      `json:"statusBreakdown"`
	MessagesLastHour int                 `json:"messagesLastHour"`
	Bots             map[string]BotStats `json:"bots"`
	BotCount         int                 `json:"botCount"`
	ServerTime       time.Time           `json:"serverTime"`
}

// Stats handles GET /stats. Public.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	msgs := h.store.ListMessages(store.MessageFilter{})
	bots := h.store.ListBots()

	statusCounts := make(map[string]int)
	lastHour := 0
	for _, m := range msgs {
		statusCounts[m.Status]++
		if now.Sub(m.Created) < time.Hour {
			lastHour++
		}
	}

	botStats := make(map[string]BotStats, len(bots))
	for _, b := range bots {
		stats := BotStats{Registered: b.Registered}
		for _, m := range msgs {
			if m.From == b.Name {
				stats.Sent++
				if stats.LastSentAt == nil || m.Created.After(*stats.LastSentAt) {
					created := m.Created
					stats.LastSentAt = &created
				}
			}
			if m.To == b.Name {
				stats.Received++
				if m.Status == models.StatusPending {
					stats.Pending++
				}
				if stats.LastReceivedAt == nil || m.Created.After(*stats.LastReceivedAt) {
					created := m.Created
					stats.LastReceivedAt = &created
				}
			}
		}
		botStats[b.Name] = stats
	}

	uptime := time.Since(h.started)
	h.JSON(w, http.StatusOK, StatsResponse{
		Uptime:           int64(uptime.Seconds()),
		UptimeHuman:      formatUptime(uptime),
		TotalMessages:    len(msgs),
		StatusBreakdown:  statusCounts,
		MessagesLastHour: lastHour,
		Bots:             botStats,
		BotCount:         len(bots),
		ServerTime:       now.UTC(),
	})
}

// formatUptime renders a duration as "2d 3h 14m", dropping leading zero
// units but always showing minutes.
func formatUptime(d time.Duration) string {
	s := int64(d.Seconds())
	days := s / 86400
	hours := (s % 86400) / 3600
	mins := (s % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	parts = append(parts, fmt.Sprintf("%dm", mins))
	return strings.Join(parts, " ")
}
