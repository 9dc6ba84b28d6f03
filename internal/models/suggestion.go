package models

import "time"

// Suggestion is a community suggestion. Unlike most collections, every
// authenticated tier may create and edit suggestions.
type Suggestion struct {
	ID      string    `json:"id"` // sug_-prefixed ULID
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	From    string    `json:"from"`
	Created time.Time `json:"created"`
}
