package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// ActivityLog is the append-only log, sharded into one JSON file per UTC day.
// Appends rewrite only the current day's shard, trading many small files for
// write locality. It keeps no in-memory state and is safe for concurrent use.
type ActivityLog struct {
	mu  sync.Mutex
	dir string
	log zerolog.Logger

	// Now is the clock used to shard entries without an explicit created
	// time. Tests override it.
	Now func() time.Time
}

// LogQuery filters activity log reads. Zero values match everything;
// Limit 0 means unlimited.
type LogQuery struct {
	Date  string // YYYY-MM-DD, restricts the read to one shard
	From  string
	Tag   string
	Limit int
}

// NewActivityLog creates an activity log rooted at dir.
func NewActivityLog(dir string, logger zerolog.Logger) *ActivityLog {
	return &ActivityLog{dir: dir, log: logger, Now: time.Now}
}

// shardDateRe bounds what a caller-supplied date may look like. Shard keys
// become filenames, so anything else never reaches the filesystem.
var shardDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func (a *ActivityLog) shardPath(key string) string {
	return filepath.Join(a.dir, key+".json")
}

// readShard returns a shard's entries, treating a missing or unreadable
// shard as empty.
func (a *ActivityLog) readShard(key string) []*models.LogEntry {
	data, err := os.ReadFile(a.shardPath(key))
	if err != nil {
		if !IsNotExist(err) {
			a.log.Error().Err(err).Str("shard", key).Msg("log shard unreadable")
		}
		return nil
	}
	var entries []*models.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		a.log.Error().Err(err).Str("shard", key).Msg("log shard unparsable")
		return nil
	}
	return entries
}

func (a *ActivityLog) writeShard(key string, entries []*models.LogEntry) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.shardPath(key), data, 0o644)
}

// shardKeys lists all shard dates, newest first.
func (a *ActivityLog) shardKeys() []string {
	files, err := os.ReadDir(a.dir)
	if err != nil {
		return nil
	}
	var keys []string
	for _, f := range files {
		if name, ok := strings.CutSuffix(f.Name(), ".json"); ok {
			keys = append(keys, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// Append adds an entry to its day's shard.
func (a *ActivityLog) Append(entry *models.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if entry.Created.IsZero() {
		entry.Created = a.Now()
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	key := dateKey(entry.Created)
	entries := append(a.readShard(key), entry)
	return a.writeShard(key, entries)
}

// Query returns matching entries, newest first.
func (a *ActivityLog) Query(q LogQuery) []*models.LogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	var keys []string
	switch {
	case q.Date == "":
		keys = a.shardKeys()
	case shardDateRe.MatchString(q.Date):
		keys = []string{q.Date}
	}

	var results []*models.LogEntry
	for _, key := range keys {
		results = append(results, a.readShard(key)...)
	}
	if q.From != "" {
		results = filterEntries(results, func(e *models.LogEntry) bool { return e.From == q.From })
	}
	if q.Tag != "" {
		results = filterEntries(results, func(e *models.LogEntry) bool {
			for _, t := range e.Tags {
				if t == q.Tag {
					return true
				}
			}
			return false
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Created.After(results[j].Created)
	})
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	if results == nil {
		results = []*models.LogEntry{}
	}
	return results
}

// Delete removes an entry by id, searching every shard. Returns ErrNotFound
// when no shard contains the id.
func (a *ActivityLog) Delete(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, key := range a.shardKeys() {
		entries := a.readShard(key)
		for i, e := range entries {
			if e.ID == id {
				entries = append(entries[:i], entries[i+1:]...)
				return a.writeShard(key, entries)
			}
		}
	}
	return ErrNotFound
}

func filterEntries(entries []*models.LogEntry, keep func(*models.LogEntry) bool) []*models.LogEntry {
	out := entries[:0]
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
