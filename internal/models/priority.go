package models

import "time"

// Priority is one entry in the shared, ordered priority list. Rank is
// recomputed 1..n after every mutation of the list.
type Priority struct {
	ID    string    `json:"id"` // prio_-prefixed ULID
	Text  string    `json:"text"`
	SetBy string    `json:"setBy"`
	SetAt time.Time `json:"setAt"`
	Rank  int       `json:"rank"`
}
