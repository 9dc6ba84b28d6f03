package models

import "time"

// Larva statuses.
const (
	LarvaStarting = "starting"
	LarvaWorking  = "working"
	LarvaDone     = "done"
	LarvaError    = "error"
)

// Larva is a short-lived worker process. A larva counts as inactive after an
// hour without an update and is purged entirely after two.
type Larva struct {
	Name       string    `json:"name"`
	Task       string    `json:"task"`
	Status     string    `json:"status"`
	Registered time.Time `json:"registered"`
	LastSeen   time.Time `json:"lastSeen"`
	IP         string    `json:"ip"`
}
