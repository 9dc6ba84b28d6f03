package store

import (
	"sort"

	"github.com/clawdbotatg/nerve-cord/internal/ident"
	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// CreateMessage fills in the server-side fields of m, stores it, and, when m
// is a reply to a message that still exists, appends m to the parent's
// replies and promotes the parent to replied. A replyTo that resolves to
// nothing is stored as-is: dangling references are tolerated, not errors.
func (s *MemoryStore) CreateMessage(m *models.Message) *models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	m.ID = ident.Message()
	m.Status = models.StatusPending
	m.Replies = []string{}
	m.Created = now
	m.Expires = now.Add(MessageTTL)
	m.SeenAt = nil
	if m.Priority == "" {
		m.Priority = "normal"
	}

	s.messages[m.ID] = m

	if m.ReplyTo != "" {
		if parent, ok := s.messages[m.ReplyTo]; ok {
			parent.Replies = append(parent.Replies, m.ID)
			if parent.Status != models.StatusReplied {
				parent.Status = models.StatusReplied
			}
		}
	}

	s.saveLocked()
	return m
}

// GetMessage returns a live message by id. An expired message is treated as
// absent, matching list visibility.
func (s *MemoryStore) GetMessage(id string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.Now().After(m.Expires) {
		delete(s.messages, id)
		return nil, ErrNotFound
	}
	return m, nil
}

// ListMessages returns non-expired messages matching the filter, newest
// first. Expiry is applied lazily on every call.
func (s *MemoryStore) ListMessages(f MessageFilter) []*models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepMessagesLocked()

	results := make([]*models.Message, 0, len(s.messages))
	for _, m := range s.messages {
		if f.To != "" && m.To != f.To {
			continue
		}
		if f.From != "" && m.From != f.From {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		results = append(results, m)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Created.After(results[j].Created)
	})
	return results
}

// MarkSeen transitions pending to seen. Already-seen and replied messages
// keep their status (never regresses), but seen_at is restamped every call.
func (s *MemoryStore) MarkSeen(id string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok || s.Now().After(m.Expires) {
		return nil, ErrNotFound
	}
	if m.Status == models.StatusPending {
		m.Status = models.StatusSeen
	}
	now := s.Now()
	m.SeenAt = &now

	s.saveLocked()
	return m, nil
}

// BurnMessage returns a message and deletes it in the same critical section,
// guaranteeing at-most-once retrieval: a second burn of the same id reports
// ErrNotFound.
func (s *MemoryStore) BurnMessage(id string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok || s.Now().After(m.Expires) {
		return nil, ErrNotFound
	}
	delete(s.messages, id)

	s.saveLocked()
	return m, nil
}

// DeleteMessage removes a message unconditionally. Children referencing it
// via replyTo are left with a dangling reference.
func (s *MemoryStore) DeleteMessage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return ErrNotFound
	}
	delete(s.messages, id)

	s.saveLocked()
	return nil
}

// CountMessages returns the number of stored messages, expired or not.
func (s *MemoryStore) CountMessages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
