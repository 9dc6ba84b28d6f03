package store

import (
	"github.com/clawdbotatg/nerve-cord/internal/ident"
	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// rerank rewrites Rank as 1..n in list order. Caller holds the write lock.
func (s *MemoryStore) rerank() {
	for i, p := range s.priorities {
		p.Rank = i + 1
	}
}

// ListPriorities returns the ordered priority list.
func (s *MemoryStore) ListPriorities() []*models.Priority {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Priority, len(s.priorities))
	copy(out, s.priorities)
	return out
}

// CreatePriority inserts a new priority at rank (clamped to the list), or
// appends when rank is 0.
func (s *MemoryStore) CreatePriority(text, from string, rank int) *models.Priority {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &models.Priority{
		ID:    ident.Priority(),
		Text:  text,
		SetBy: from,
		SetAt: s.Now(),
	}

	// Any explicit rank clamps into [1, len+1]; only 0 means append.
	target := len(s.priorities) + 1
	if rank != 0 {
		target = min(max(rank, 1), len(s.priorities)+1)
	}
	idx := target - 1
	s.priorities = append(s.priorities[:idx],
		append([]*models.Priority{entry}, s.priorities[idx:]...)...)
	s.rerank()

	s.saveLocked()
	return entry
}

// TopPriority puts text at rank 1, pushing everything else down. An existing
// entry with the same text is removed first so the list never holds
// duplicates of the top item. Returns the full reranked list.
func (s *MemoryStore) TopPriority(text, from string) []*models.Priority {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.priorities[:0]
	for _, p := range s.priorities {
		if p.Text != text {
			kept = append(kept, p)
		}
	}
	entry := &models.Priority{
		ID:    ident.Priority(),
		Text:  text,
		SetBy: from,
		SetAt: s.Now(),
	}
	s.priorities = append([]*models.Priority{entry}, kept...)
	s.rerank()

	s.saveLocked()
	out := make([]*models.Priority, len(s.priorities))
	copy(out, s.priorities)
	return out
}

// UpdatePriority patches text/setBy and optionally moves the entry to a new
// rank.
func (s *MemoryStore) UpdatePriority(id string, p PriorityPatch) (*models.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.priorityIndex(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	entry := s.priorities[idx]
	if p.Text != nil {
		entry.Text = *p.Text
	}
	if p.From != nil {
		entry.SetBy = *p.From
	}
	if p.Rank > 0 && p.Rank != entry.Rank {
		s.priorities = append(s.priorities[:idx], s.priorities[idx+1:]...)
		newIdx := min(max(p.Rank-1, 0), len(s.priorities))
		s.priorities = append(s.priorities[:newIdx],
			append([]*models.Priority{entry}, s.priorities[newIdx:]...)...)
		s.rerank()
	}

	s.saveLocked()
	return entry, nil
}

// CompletePriority removes an entry and returns it so the caller can record
// the completion in the activity log.
func (s *MemoryStore) CompletePriority(id string) (*models.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.priorityIndex(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	completed := s.priorities[idx]
	s.priorities = append(s.priorities[:idx], s.priorities[idx+1:]...)
	s.rerank()

	s.saveLocked()
	return completed, nil
}

// DeletePriority removes an entry by id and returns the reranked list.
func (s *MemoryStore) DeletePriority(id string) ([]*models.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.priorityIndex(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	s.priorities = append(s.priorities[:idx], s.priorities[idx+1:]...)
	s.rerank()

	s.saveLocked()
	out := make([]*models.Priority, len(s.priorities))
	copy(out, s.priorities)
	return out, nil
}

// DeletePriorityByRank removes an entry by its 1-based rank. Kept for older
// clients that predate stable priority ids.
func (s *MemoryStore) DeletePriorityByRank(rank int) ([]*models.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rank < 1 || rank > len(s.priorities) {
		return nil, ErrNotFound
	}
	s.priorities = append(s.priorities[:rank-1], s.priorities[rank:]...)
	s.rerank()

	s.saveLocked()
	out := make([]*models.Priority, len(s.priorities))
	copy(out, s.priorities)
	return out, nil
}

// priorityIndex finds an entry by id. Caller holds a lock.
func (s *MemoryStore) priorityIndex(id string) int {
	for i, p := range s.priorities {
		if p.ID == id {
			return i
		}
	}
	return -1
}
