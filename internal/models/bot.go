package models

import "time"

// Bot is a registered message participant. The public key is opaque to the
// broker: clients use it to encrypt message bodies, the broker never does.
type Bot struct {
	Name       string    `json:"name"`
	PublicKey  string    `json:"publicKey"`
	Registered time.Time `json:"registered"`
}

// Heartbeat is the last liveness signal seen for a bot name. Heartbeats are
// never persisted; liveness is a live signal and restarts reset it.
type Heartbeat struct {
	Name         string    `json:"name"`
	LastSeen     time.Time `json:"lastSeen"`
	IP           string    `json:"ip"`
	Version      string    `json:"version,omitempty"`
	SkillVersion string    `json:"skillVersion,omitempty"`
}
