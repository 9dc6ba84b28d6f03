package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clawdbotatg/nerve-cord/internal/models"
	"github.com/clawdbotatg/nerve-cord/internal/store"
)

// CreateProjectRequest is the project creation body.
type CreateProjectRequest struct {
	Name        string         `json:"name"`
	Status      string         `json:"status"`
	Repo        string         `json:"repo"`
	URL         string         `json:"url"`
	Contract    string         `json:"contract"`
	Chain       string         `json:"chain"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	NextSteps   []string       `json:"nextSteps"`
	From        string         `json:"from"`
}

// UpdateProjectRequest is the project patch body. Nil fields are left
// unchanged; Metadata is merged key by key.
type UpdateProjectRequest struct {
	Name        *string        `json:"name"`
	Status      *string        `json:"status"`
	Repo        *string        `json:"repo"`
	URL         *string        `json:"url"`
	Contract    *string        `json:"contract"`
	Chain       *string        `json:"chain"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	NextSteps   *[]string      `json:"nextSteps"`
}

// ListProjects handles GET /projects with an optional ?status= filter.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.store.ListProjects(r.URL.Query().Get("status")))
}

// CreateProject handles POST /projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		h.Error(w, http.StatusBadRequest, "name required")
		return
	}

	project := h.store.CreateProject(&models.Project{
		Name:        req.Name,
		Status:      req.Status,
		Repo:        req.Repo,
		URL:         req.URL,
		Contract:    req.Contract,
		Chain:       req.Chain,
		Description: req.Description,
		Metadata:    req.Metadata,
		NextSteps:   req.NextSteps,
		CreatedBy:   req.From,
	})
	h.JSON(w, http.StatusCreated, project)
}

// GetProject handles GET /projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetProject(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "project not found")
		return
	}
	h.JSON(w, http.StatusOK, project)
}

// UpdateProject handles PATCH /projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	project, err := h.store.UpdateProject(id, store.ProjectPatch{
		Name:        req.Name,
		Status:      req.Status,
		Repo:        req.Repo,
		URL:         req.URL,
		Contract:    req.Contract,
		Chain:       req.Chain,
		Description: req.Description,
		Metadata:    req.Metadata,
		NextSteps:   req.NextSteps,
	})
	if err != nil {
		h.Error(w, http.StatusNotFound, "project not found")
		return
	}
	h.JSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	removed, err := h.store.DeleteProject(chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, http.StatusNotFound, "project not found")
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"deleted": removed})
}
