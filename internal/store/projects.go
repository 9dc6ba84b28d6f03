package store

import (
	"github.com/clawdbotatg/nerve-cord/internal/ident"
	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// ListProjects returns projects in insertion order, optionally filtered by
// exact status match.
func (s *MemoryStore) ListProjects(status string) []*models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CreateProject fills in the server-side fields and appends the project.
func (s *MemoryStore) CreateProject(p *models.Project) *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	p.ID = ident.Project()
	p.Created = now
	p.Updated = now
	if p.Status == "" {
		p.Status = "idea"
	}
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
	if p.NextSteps == nil {
		p.NextSteps = []string{}
	}
	if p.CreatedBy == "" {
		p.CreatedBy = "unknown"
	}

	s.projects = append(s.projects, p)
	s.saveLocked()
	return p
}

// GetProject returns a project by id.
func (s *MemoryStore) GetProject(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateProject applies a partial update. Metadata entries are merged into
// the existing map; every other field is replaced when present.
func (s *MemoryStore) UpdateProject(id string, patch ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var proj *models.Project
	for _, p := range s.projects {
		if p.ID == id {
			proj = p
			break
		}
	}
	if proj == nil {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		proj.Name = *patch.Name
	}
	if patch.Status != nil {
		proj.Status = *patch.Status
	}
	if patch.Repo != nil {
		proj.Repo = *patch.Repo
	}
	if patch.URL != nil {
		proj.URL = *patch.URL
	}
	if patch.Contract != nil {
		proj.Contract = *patch.Contract
	}
	if patch.Chain != nil {
		proj.Chain = *patch.Chain
	}
	if patch.Description != nil {
		proj.Description = *patch.Description
	}
	if patch.Metadata != nil {
		if proj.Metadata == nil {
			proj.Metadata = map[string]any{}
		}
		for k, v := range patch.Metadata {
			proj.Metadata[k] = v
		}
	}
	if patch.NextSteps != nil {
		proj.NextSteps = *patch.NextSteps
	}
	proj.Updated = s.Now()

	s.saveLocked()
	return proj, nil
}

// DeleteProject removes a project and returns the removed record.
func (s *MemoryStore) DeleteProject(id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			s.saveLocked()
			return p, nil
		}
	}
	return nil, ErrNotFound
}
