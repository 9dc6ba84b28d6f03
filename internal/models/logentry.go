package models

import "time"

// LogEntry is one record in the append-only activity log.
type LogEntry struct {
	ID      string    `json:"id"` // log_-prefixed ULID
	From    string    `json:"from"`
	Text    string    `json:"text"`
	Tags    []string  `json:"tags"`
	Details any       `json:"details"`
	Created time.Time `json:"created"`
}
