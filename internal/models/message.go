package models

import "time"

// Message statuses. Status only moves forward: pending -> seen -> replied.
const (
	StatusPending = "pending"
	StatusSeen    = "seen"
	StatusReplied = "replied"
)

// Message is a note from one bot to another. Body is ciphertext produced by
// the sending bot; the broker stores and returns it without ever inspecting it.
type Message struct {
	ID        string     `json:"id"` // msg_-prefixed ULID
	From      string     `json:"from"`
	To        string     `json:"to"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Encrypted bool       `json:"encrypted"`
	Priority  string     `json:"priority"` // free-form label, default "normal"
	Status    string     `json:"status"`
	ReplyTo   string     `json:"replyTo,omitempty"` // parent message id; may dangle
	Replies   []string   `json:"replies"`           // child ids, append-only
	Created   time.Time  `json:"created"`
	Expires   time.Time  `json:"expires"` // created + 24h
	SeenAt    *time.Time `json:"seen_at"`
}
