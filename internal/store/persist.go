package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FilePersister serializes collections as pretty-printed JSON files, one file
// per collection, rewritten whole on every save. No fsync, no atomic rename:
// a crash mid-write can corrupt one collection's file, which a later Load
// reports and survives by starting that collection empty.
type FilePersister struct {
	dir string
	log zerolog.Logger
}

// NewFilePersister creates a persister rooted at dir. The directory is
// created on the first save.
func NewFilePersister(dir string, logger zerolog.Logger) *FilePersister {
	return &FilePersister{dir: dir, log: logger}
}

func (p *FilePersister) path(name string) string {
	return filepath.Join(p.dir, name+".json")
}

// Load reads a collection file into v. A missing file is reported via
// IsNotExist so callers can distinguish a fresh boot from a parse failure.
func (p *FilePersister) Load(name string, v any) error {
	data, err := os.ReadFile(p.path(name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Save writes the full collection snapshot, logging and swallowing failures:
// the in-memory state remains authoritative and the next save cycle retries.
func (p *FilePersister) Save(name string, v any) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		p.log.Error().Err(err).Str("collection", name).Msg("save failed")
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		p.log.Error().Err(err).Str("collection", name).Msg("save failed")
		return
	}
	if err := os.WriteFile(p.path(name), data, 0o644); err != nil {
		p.log.Error().Err(err).Str("collection", name).Msg("save failed")
	}
}

// IsNotExist reports whether err came from loading a collection that has
// never been saved.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
