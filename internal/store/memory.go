package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clawdbotatg/nerve-cord/internal/ident"
	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// Retention windows. Messages live a fixed 24 hours; larvae go inactive
// after one hour without an update and are purged after two.
const (
	MessageTTL       = 24 * time.Hour
	LarvaExpiry      = time.Hour
	LarvaPurge       = 2 * LarvaExpiry
	HeartbeatTimeout = 30 * time.Second
)

// MemoryStore owns every mutable collection behind one RWMutex. The in-memory
// maps are the source of truth; the persister is a write-through snapshot
// whose failures never block a mutation. Heartbeats and larvae are
// deliberately never persisted.
type MemoryStore struct {
	mu sync.RWMutex

	messages    map[string]*models.Message
	bots        map[string]*models.Bot
	heartbeats  map[string]*models.Heartbeat
	larvae      map[string]*models.Larva
	priorities  []*models.Priority
	suggestions []*models.Suggestion
	projects    []*models.Project

	persist *FilePersister // nil disables durability (tests)
	log     zerolog.Logger

	// Now is the clock for every expiry decision. Tests override it.
	Now func() time.Time
}

// NewMemoryStore creates an empty store. persist may be nil.
func NewMemoryStore(persist *FilePersister, logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		messages:   make(map[string]*models.Message),
		bots:       make(map[string]*models.Bot),
		heartbeats: make(map[string]*models.Heartbeat),
		larvae:     make(map[string]*models.Larva),
		persist:    persist,
		log:        logger,
		Now:        time.Now,
	}
}

// Load reads every persisted collection from disk. A missing file starts the
// collection empty and is not worth a mention; an unreadable or unparsable
// file also starts it empty but is logged loudly so an operator can tell
// silent data loss from a fresh boot.
func (s *MemoryStore) Load() {
	if s.persist == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []*models.Message
	if s.loadCollection("messages", &msgs) {
		for _, m := range msgs {
			s.messages[m.ID] = m
		}
		s.log.Info().Int("count", len(msgs)).Msg("loaded messages from disk")
	}

	var bots []*models.Bot
	if s.loadCollection("bots", &bots) {
		for _, b := range bots {
			s.bots[b.Name] = b
		}
		s.log.Info().Int("count", len(bots)).Msg("loaded bots from disk")
	}

	if s.loadCollection("priorities", &s.priorities) {
		// Older snapshots may predate stable priority ids.
		migrated := false
		for _, p := range s.priorities {
			if p.ID == "" {
				p.ID = ident.Priority()
				migrated = true
			}
		}
		s.rerank()
		if migrated {
			s.saveLocked()
		}
		s.log.Info().Int("count", len(s.priorities)).Bool("migrated", migrated).
			Msg("loaded priorities from disk")
	}

	if s.loadCollection("suggestions", &s.suggestions) {
		s.log.Info().Int("count", len(s.suggestions)).Msg("loaded suggestions from disk")
	}

	if s.loadCollection("projects", &s.projects) {
		s.log.Info().Int("count", len(s.projects)).Msg("loaded projects from disk")
	}
}

// loadCollection reports whether the collection was present and readable.
func (s *MemoryStore) loadCollection(name string, v any) bool {
	err := s.persist.Load(name, v)
	switch {
	case err == nil:
		return true
	case IsNotExist(err):
		return false
	default:
		s.log.Error().Err(err).Str("collection", name).
			Msg("collection unreadable, starting empty")
		return false
	}
}

// Save snapshots every durable collection to disk. Called synchronously after
// each mutation and from the periodic sweep loop. Failures are logged by the
// persister and otherwise swallowed: memory stays the source of truth and the
// next cycle retries.
func (s *MemoryStore) Save() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.saveLocked()
}

func (s *MemoryStore) saveLocked() {
	if s.persist == nil {
		return
	}
	s.persist.Save("messages", s.messageSlice())
	s.persist.Save("bots", s.botSlice())
	s.persist.Save("priorities", s.priorities)
	s.persist.Save("suggestions", s.suggestions)
	s.persist.Save("projects", s.projects)
}

func (s *MemoryStore) messageSlice() []*models.Message {
	out := make([]*models.Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	return out
}

func (s *MemoryStore) botSlice() []*models.Bot {
	out := make([]*models.Bot, 0, len(s.bots))
	for _, b := range s.bots {
		out = append(out, b)
	}
	return out
}

// Sweep removes expired messages and purges larvae idle past the purge
// window. Idempotent and order-independent: any number of runs at the same
// instant leaves the same surviving set.
func (s *MemoryStore) Sweep() (expiredMessages, purgedLarvae int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	for id, m := range s.messages {
		if now.After(m.Expires) {
			delete(s.messages, id)
			expiredMessages++
		}
	}
	for name, l := range s.larvae {
		if now.Sub(l.LastSeen) > LarvaPurge {
			delete(s.larvae, name)
			purgedLarvae++
		}
	}
	return expiredMessages, purgedLarvae
}

// sweepMessagesLocked applies lazy expiry on the read path. Caller holds the
// write lock.
func (s *MemoryStore) sweepMessagesLocked() {
	now := s.Now()
	for id, m := range s.messages {
		if now.After(m.Expires) {
			delete(s.messages, id)
		}
	}
}
