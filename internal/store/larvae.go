package store

import (
	"sort"

	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// RegisterLarva upserts a larva. Re-registering an existing name keeps its
// original registration time; everything else is replaced.
func (s *MemoryStore) RegisterLarva(l *models.Larva) *models.Larva {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	l.Registered = now
	if existing, ok := s.larvae[l.Name]; ok {
		l.Registered = existing.Registered
	}
	l.LastSeen = now
	if l.Status == "" {
		l.Status = models.LarvaStarting
	}

	s.larvae[l.Name] = l
	return l
}

// GetLarva returns a larva by name. Stale larvae remain visible until the
// sweep purges them.
func (s *MemoryStore) GetLarva(name string) (*models.Larva, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.larvae[name]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}

// ListLarvae returns larvae ordered by name. With activeOnly set, larvae idle
// for an hour or more are excluded; they still show up in the full listing
// until the sweep purges them at the two hour mark.
func (s *MemoryStore) ListLarvae(activeOnly bool) []*models.Larva {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.Now()
	out := make([]*models.Larva, 0, len(s.larvae))
	for _, l := range s.larvae {
		if activeOnly && now.Sub(l.LastSeen) >= LarvaExpiry {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// UpdateLarva patches task and/or status and refreshes lastSeen.
func (s *MemoryStore) UpdateLarva(name string, p LarvaPatch) (*models.Larva, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.larvae[name]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Task != nil {
		l.Task = *p.Task
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	l.LastSeen = s.Now()
	return l, nil
}

// DeleteLarva removes a larva.
func (s *MemoryStore) DeleteLarva(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.larvae[name]; !ok {
		return ErrNotFound
	}
	delete(s.larvae, name)
	return nil
}
