package handlers

import (
	"net/http"
	"os"
	"regexp"
	"strings"
)

var skillVersionRe = regexp.MustCompile(`(?m)^VERSION:\s*(.+)$`)

// Skill handles GET /skill: the onboarding document bots read to learn the
// protocol. Public.
func (h *Handler) Skill(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.cfg.SkillFile)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "skill file not found")
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write(data)
}

// SkillVersion handles GET /skill/version, extracting the VERSION: line so
// bots can tell whether their cached copy is stale.
func (h *Handler) SkillVersion(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.cfg.SkillFile)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "skill file not found")
		return
	}

	version := "unknown"
	if m := skillVersionRe.FindSubmatch(data); m != nil {
		version = strings.TrimSpace(string(m[1]))
	}
	h.JSON(w, http.StatusOK, map[string]string{"version": version})
}
