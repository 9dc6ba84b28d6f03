package models

import "time"

// Project is an entry in the shared project registry.
type Project struct {
	ID          string         `json:"id"` // proj_-prefixed ULID
	Name        string         `json:"name"`
	Status      string         `json:"status"` // idea, research, building, beta, live, paused, archived
	Repo        string         `json:"repo,omitempty"`
	URL         string         `json:"url,omitempty"`
	Contract    string         `json:"contract,omitempty"`
	Chain       string         `json:"chain,omitempty"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	NextSteps   []string       `json:"nextSteps"`
	CreatedBy   string         `json:"createdBy"`
	Created     time.Time      `json:"created"`
	Updated     time.Time      `json:"updated"`
}
