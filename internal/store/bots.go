package store

import (
	"sort"

	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// PutBot registers a bot, replacing any prior registration for the same name
// outright. Nothing is merged; callers resend publicKey every time.
func (s *MemoryStore) PutBot(b *models.Bot) *models.Bot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bots[b.Name] = b
	s.saveLocked()
	return b
}

// GetBot returns a registered bot by name.
func (s *MemoryStore) GetBot(name string) (*models.Bot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bots[name]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// ListBots returns all registered bots, ordered by name.
func (s *MemoryStore) ListBots() []*models.Bot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Bot, 0, len(s.bots))
	for _, b := range s.bots {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DeleteBot unregisters a bot.
func (s *MemoryStore) DeleteBot(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bots[name]; !ok {
		return ErrNotFound
	}
	delete(s.bots, name)
	s.saveLocked()
	return nil
}

// CountBots returns the number of registered bots.
func (s *MemoryStore) CountBots() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bots)
}

// RecordHeartbeat upserts the liveness record for a bot name. When the name
// also belongs to a registered larva the larva is refreshed too, optionally
// picking up a status or task carried on the heartbeat.
func (s *MemoryStore) RecordHeartbeat(hb *models.Heartbeat, larvaStatus, larvaTask string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hb.LastSeen = s.Now()
	s.heartbeats[hb.Name] = hb

	if l, ok := s.larvae[hb.Name]; ok {
		l.LastSeen = hb.LastSeen
		l.IP = hb.IP
		if larvaStatus != "" {
			l.Status = larvaStatus
		}
		if larvaTask != "" {
			l.Task = larvaTask
		}
	}
}

// ListHeartbeats returns every heartbeat record, ordered by name.
func (s *MemoryStore) ListHeartbeats() []*models.Heartbeat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Heartbeat, 0, len(s.heartbeats))
	for _, hb := range s.heartbeats {
		out = append(out, hb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
