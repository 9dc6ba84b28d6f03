package store

import (
	"errors"
	"strings"
	"testing"
)

func texts(s *MemoryStore) []string {
	var out []string
	for _, p := range s.ListPriorities() {
		out = append(out, p.Text)
	}
	return out
}

func assertOrder(t *testing.T, s *MemoryStore, want ...string) {
	t.Helper()
	got := texts(s)
	if len(got) != len(want) {
		t.Fatalf("expected %d priorities, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	for i, p := range s.ListPriorities() {
		if p.Rank != i+1 {
			t.Fatalf("rank at index %d should be %d, got %d", i, i+1, p.Rank)
		}
	}
}

func TestCreatePriorityAppendsAndInserts(t *testing.T) {
	s, _ := newTestStore(t)

	p := s.CreatePriority("ship broker", "crab", 0)
	if !strings.HasPrefix(p.ID, "prio_") {
		t.Fatalf("expected prio_ id prefix, got %q", p.ID)
	}
	s.CreatePriority("write docs", "crab", 0)
	assertOrder(t, s, "ship broker", "write docs")

	// Insert at rank 1 pushes the rest down.
	s.CreatePriority("fix prod", "mantis", 1)
	assertOrder(t, s, "fix prod", "ship broker", "write docs")

	// An out-of-range rank clamps to the end.
	s.CreatePriority("someday", "mantis", 99)
	assertOrder(t, s, "fix prod", "ship broker", "write docs", "someday")

	// A negative rank clamps to the top, just like rank 1.
	s.CreatePriority("drop everything", "mantis", -1)
	assertOrder(t, s, "drop everything", "fix prod", "ship broker", "write docs", "someday")
}

func TestTopPriorityDedupes(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreatePriority("a", "crab", 0)
	s.CreatePriority("b", "crab", 0)
	s.CreatePriority("c", "crab", 0)

	list := s.TopPriority("b", "mantis")
	if len(list) != 3 {
		t.Fatalf("top of an existing text must not grow the list, got %d", len(list))
	}
	assertOrder(t, s, "b", "a", "c")

	s.TopPriority("new thing", "mantis")
	assertOrder(t, s, "new thing", "b", "a", "c")
}

func TestUpdatePriorityMovesRank(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreatePriority("a", "crab", 0)
	target := s.CreatePriority("b", "crab", 0)
	s.CreatePriority("c", "crab", 0)

	if _, err := s.UpdatePriority(target.ID, PriorityPatch{Rank: 1}); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, s, "b", "a", "c")

	text := "b2"
	got, err := s.UpdatePriority(target.ID, PriorityPatch{Text: &text})
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "b2" || got.Rank != 1 {
		t.Fatalf("patch without rank should keep position, got %+v", got)
	}
}

func TestCompletePriority(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreatePriority("a", "crab", 0)
	target := s.CreatePriority("b", "crab", 0)

	done, err := s.CompletePriority(target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Text != "b" {
		t.Fatalf("expected completed entry back, got %+v", done)
	}
	assertOrder(t, s, "a")

	if _, err := s.CompletePriority(target.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("completing twice should be ErrNotFound, got %v", err)
	}
}

func TestDeletePriorityByRank(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreatePriority("a", "crab", 0)
	s.CreatePriority("b", "crab", 0)

	if _, err := s.DeletePriorityByRank(3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rank out of range should be ErrNotFound, got %v", err)
	}
	list, err := s.DeletePriorityByRank(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Text != "b" || list[0].Rank != 1 {
		t.Fatalf("expected reranked remainder, got %+v", list)
	}
}
