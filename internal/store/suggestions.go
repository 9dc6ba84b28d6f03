package store

import (
	"github.com/clawdbotatg/nerve-cord/internal/ident"
	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// ListSuggestions returns suggestions in insertion order.
func (s *MemoryStore) ListSuggestions() []*models.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Suggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// CreateSuggestion fills in the server-side fields and appends the entry.
func (s *MemoryStore) CreateSuggestion(sg *models.Suggestion) *models.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	sg.ID = ident.Suggestion()
	sg.Created = s.Now()
	if sg.From == "" {
		sg.From = "anonymous"
	}

	s.suggestions = append(s.suggestions, sg)
	s.saveLocked()
	return sg
}

// GetSuggestion returns a suggestion by id.
func (s *MemoryStore) GetSuggestion(id string) (*models.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sg := range s.suggestions {
		if sg.ID == id {
			return sg, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateSuggestion patches title and/or body.
func (s *MemoryStore) UpdateSuggestion(id string, p SuggestionPatch) (*models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sg := range s.suggestions {
		if sg.ID == id {
			if p.Title != nil {
				sg.Title = *p.Title
			}
			if p.Body != nil {
				sg.Body = *p.Body
			}
			s.saveLocked()
			return sg, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteSuggestion removes a suggestion and returns the removed record.
func (s *MemoryStore) DeleteSuggestion(id string) (*models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sg := range s.suggestions {
		if sg.ID == id {
			s.suggestions = append(s.suggestions[:i], s.suggestions[i+1:]...)
			s.saveLocked()
			return sg, nil
		}
	}
	return nil, ErrNotFound
}
