package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clawdbotatg/nerve-cord/internal/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()

	s := NewMemoryStore(NewFilePersister(dir, logger), logger)
	msg := s.CreateMessage(&models.Message{From: "crab", To: "mantis", Body: "ct"})
	s.PutBot(&models.Bot{Name: "crab", PublicKey: "pk"})
	s.CreatePriority("ship it", "crab", 0)
	s.CreateSuggestion(&models.Suggestion{Title: "idea", From: "mantis"})
	s.CreateProject(&models.Project{Name: "broker"})

	// A fresh store over the same directory sees everything durable.
	s2 := NewMemoryStore(NewFilePersister(dir, logger), logger)
	s2.Load()

	got, err := s2.GetMessage(msg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.From != "crab" || got.Body != "ct" {
		t.Fatalf("message did not survive the round trip: %+v", got)
	}
	if _, err := s2.GetBot("crab"); err != nil {
		t.Fatal("bot did not survive the round trip")
	}
	if ps := s2.ListPriorities(); len(ps) != 1 || ps[0].Text != "ship it" || ps[0].Rank != 1 {
		t.Fatalf("priorities did not survive the round trip: %+v", ps)
	}
	if sugs := s2.ListSuggestions(); len(sugs) != 1 {
		t.Fatalf("suggestions did not survive the round trip: %d", len(sugs))
	}
	if projs := s2.ListProjects(""); len(projs) != 1 {
		t.Fatalf("projects did not survive the round trip: %d", len(projs))
	}
}

func TestHeartbeatsNotPersisted(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()

	s := NewMemoryStore(NewFilePersister(dir, logger), logger)
	s.RecordHeartbeat(&models.Heartbeat{Name: "crab"}, "", "")
	s.RegisterLarva(&models.Larva{Name: "larva-1"})
	s.Save()

	s2 := NewMemoryStore(NewFilePersister(dir, logger), logger)
	s2.Load()
	if len(s2.ListHeartbeats()) != 0 {
		t.Fatal("heartbeats must not survive a restart")
	}
	if len(s2.ListLarvae(false)) != 0 {
		t.Fatal("larvae must not survive a restart")
	}
}

func TestCorruptCollectionStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()

	s := NewMemoryStore(NewFilePersister(dir, logger), logger)
	s.CreateMessage(&models.Message{From: "a", To: "b", Body: "x"})
	s.PutBot(&models.Bot{Name: "crab"})

	if err := os.WriteFile(filepath.Join(dir, "messages.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	s2 := NewMemoryStore(NewFilePersister(dir, logger), logger)
	s2.Load()

	// The corrupt collection starts empty; the readable ones still load.
	if s2.CountMessages() != 0 {
		t.Fatalf("corrupt messages file should start empty, got %d", s2.CountMessages())
	}
	if s2.CountBots() != 1 {
		t.Fatalf("bots should still load, got %d", s2.CountBots())
	}
}

func TestPriorityIDMigration(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()

	// Older snapshots stored priorities without ids.
	legacy := `[{"text":"old entry","setBy":"crab","rank":1}]`
	if err := os.WriteFile(filepath.Join(dir, "priorities.json"), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewMemoryStore(NewFilePersister(dir, logger), logger)
	s.Load()

	ps := s.ListPriorities()
	if len(ps) != 1 {
		t.Fatalf("expected 1 migrated priority, got %d", len(ps))
	}
	if ps[0].ID == "" {
		t.Fatal("migration should assign an id")
	}
}
