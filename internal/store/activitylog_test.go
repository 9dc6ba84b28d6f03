package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clawdbotatg/nerve-cord/internal/ident"
	"github.com/clawdbotatg/nerve-cord/internal/models"
)

func newTestLog(t *testing.T) (*ActivityLog, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	a := NewActivityLog(t.TempDir(), zerolog.Nop())
	a.Now = func() time.Time { return now }
	return a, &now
}

func appendEntry(t *testing.T, a *ActivityLog, from, text string, tags ...string) *models.LogEntry {
	t.Helper()
	e := &models.LogEntry{ID: ident.LogEntry(), From: from, Text: text, Tags: tags}
	if err := a.Append(e); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestLogShardsByUTCDay(t *testing.T) {
	a, clock := newTestLog(t)

	appendEntry(t, a, "crab", "first")
	// An hour later it is already June 2nd in UTC.
	*clock = clock.Add(time.Hour)
	appendEntry(t, a, "crab", "second")

	for _, shard := range []string{"2025-06-01.json", "2025-06-02.json"} {
		if _, err := os.Stat(filepath.Join(a.dir, shard)); err != nil {
			t.Fatalf("expected shard %s: %v", shard, err)
		}
	}

	if got := a.Query(LogQuery{Date: "2025-06-01"}); len(got) != 1 || got[0].Text != "first" {
		t.Fatalf("date query should read one shard, got %v", got)
	}
}

func TestLogQueryFilters(t *testing.T) {
	a, clock := newTestLog(t)

	appendEntry(t, a, "crab", "deployed", "deploy")
	*clock = clock.Add(time.Minute)
	appendEntry(t, a, "mantis", "indexed", "index")
	*clock = clock.Add(time.Minute)
	appendEntry(t, a, "crab", "rolled back", "deploy", "incident")

	all := a.Query(LogQuery{})
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Text != "rolled back" {
		t.Fatal("expected newest-first ordering")
	}

	if got := a.Query(LogQuery{From: "crab"}); len(got) != 2 {
		t.Fatalf("from filter: expected 2, got %d", len(got))
	}
	if got := a.Query(LogQuery{Tag: "incident"}); len(got) != 1 || got[0].Text != "rolled back" {
		t.Fatalf("tag filter mismatch: %v", got)
	}
	if got := a.Query(LogQuery{Limit: 1}); len(got) != 1 || got[0].Text != "rolled back" {
		t.Fatalf("limit should keep the newest entry, got %v", got)
	}
}

func TestLogQueryRejectsPathDates(t *testing.T) {
	a, _ := newTestLog(t)
	appendEntry(t, a, "crab", "inside")

	// A well-formed JSON shard sitting outside the log directory. A date
	// value that escapes the directory must never read it.
	outside := filepath.Join(filepath.Dir(a.dir), "escape.json")
	data := `[{"id":"log_x","from":"evil","text":"outside","tags":[],"created":"2025-06-01T00:00:00Z"}]`
	if err := os.WriteFile(outside, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, date := range []string{"../escape", "2025-6-1", "2025-06-01x"} {
		if got := a.Query(LogQuery{Date: date}); len(got) != 0 {
			t.Fatalf("date %q should match nothing, got %v", date, got)
		}
	}
	if got := a.Query(LogQuery{Date: "2025-06-01"}); len(got) != 1 || got[0].Text != "inside" {
		t.Fatalf("well-formed date should still read its shard, got %v", got)
	}
}

func TestLogQueryEmptyIsNotNil(t *testing.T) {
	a, _ := newTestLog(t)
	if got := a.Query(LogQuery{}); got == nil {
		t.Fatal("empty query result should be an empty slice")
	}
}

func TestLogDeleteAcrossShards(t *testing.T) {
	a, clock := newTestLog(t)

	appendEntry(t, a, "crab", "keep me")
	*clock = clock.Add(time.Hour)
	target := appendEntry(t, a, "crab", "delete me")

	if err := a.Delete(target.ID); err != nil {
		t.Fatal(err)
	}
	if got := a.Query(LogQuery{}); len(got) != 1 || got[0].Text != "keep me" {
		t.Fatalf("expected only the kept entry, got %v", got)
	}
	if err := a.Delete(target.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting twice should be ErrNotFound, got %v", err)
	}
}
