// Package ident generates prefixed, collision-resistant entity IDs. The
// prefix distinguishes id families on the wire (msg_, prio_, sug_, proj_,
// log_) so a caller can never confuse, say, a message id for a project id.
package ident

import "github.com/oklog/ulid/v2"

func newID(prefix string) string {
	return prefix + "_" + ulid.Make().String()
}

// Message returns a new message id.
func Message() string { return newID("msg") }

// Priority returns a new priority id.
func Priority() string { return newID("prio") }

// Suggestion returns a new suggestion id.
func Suggestion() string { return newID("sug") }

// Project returns a new project id.
func Project() string { return newID("proj") }

// LogEntry returns a new activity log entry id.
func LogEntry() string { return newID("log") }
