package store

import (
	"errors"
	"testing"
	"time"

	"github.com/clawdbotatg/nerve-cord/internal/models"
)

func TestRegisterLarvaDefaults(t *testing.T) {
	s, clock := newTestStore(t)

	l := s.RegisterLarva(&models.Larva{Name: "larva-1", Task: "index repos"})
	if l.Status != models.LarvaStarting {
		t.Fatalf("expected starting, got %q", l.Status)
	}
	if !l.Registered.Equal(*clock) || !l.LastSeen.Equal(*clock) {
		t.Fatal("registered and lastSeen should be stamped with the clock")
	}
}

func TestReRegisterKeepsRegistered(t *testing.T) {
	s, clock := newTestStore(t)

	first := s.RegisterLarva(&models.Larva{Name: "larva-1"})
	registered := first.Registered

	*clock = clock.Add(10 * time.Minute)
	second := s.RegisterLarva(&models.Larva{Name: "larva-1", Status: models.LarvaWorking})

	if !second.Registered.Equal(registered) {
		t.Fatal("re-registration must keep the original registration time")
	}
	if !second.LastSeen.Equal(*clock) {
		t.Fatal("re-registration should refresh lastSeen")
	}
	if second.Status != models.LarvaWorking {
		t.Fatalf("expected working, got %q", second.Status)
	}
}

func TestLarvaActiveWindow(t *testing.T) {
	s, clock := newTestStore(t)

	s.RegisterLarva(&models.Larva{Name: "larva-1"})

	*clock = clock.Add(59 * time.Minute)
	if got := s.ListLarvae(true); len(got) != 1 {
		t.Fatalf("larva idle under an hour should be active, got %d", len(got))
	}

	*clock = clock.Add(2 * time.Minute)
	if got := s.ListLarvae(true); len(got) != 0 {
		t.Fatalf("larva idle over an hour should be inactive, got %d", len(got))
	}
	// Inactive but not yet purged: the full listing still shows it.
	if got := s.ListLarvae(false); len(got) != 1 {
		t.Fatalf("inactive larva should remain in the full listing, got %d", len(got))
	}
}

func TestLarvaPurge(t *testing.T) {
	s, clock := newTestStore(t)

	s.RegisterLarva(&models.Larva{Name: "larva-1"})

	*clock = clock.Add(LarvaPurge - time.Minute)
	if _, purged := s.Sweep(); purged != 0 {
		t.Fatalf("larva under the purge window should survive, purged %d", purged)
	}

	*clock = clock.Add(2 * time.Minute)
	if _, purged := s.Sweep(); purged != 1 {
		t.Fatalf("expected 1 purged larva, got %d", purged)
	}
	if _, err := s.GetLarva("larva-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("purged larva should be gone, got %v", err)
	}
}

func TestUpdateLarvaRefreshesLastSeen(t *testing.T) {
	s, clock := newTestStore(t)

	s.RegisterLarva(&models.Larva{Name: "larva-1"})

	*clock = clock.Add(30 * time.Minute)
	status := models.LarvaDone
	l, err := s.UpdateLarva("larva-1", LarvaPatch{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if l.Status != models.LarvaDone {
		t.Fatalf("expected done, got %q", l.Status)
	}
	if !l.LastSeen.Equal(*clock) {
		t.Fatal("update should refresh lastSeen")
	}
}

func TestHeartbeatRefreshesLarva(t *testing.T) {
	s, clock := newTestStore(t)

	s.RegisterLarva(&models.Larva{Name: "larva-1"})

	*clock = clock.Add(45 * time.Minute)
	s.RecordHeartbeat(&models.Heartbeat{Name: "larva-1"}, models.LarvaWorking, "crunching")

	l, err := s.GetLarva("larva-1")
	if err != nil {
		t.Fatal(err)
	}
	if !l.LastSeen.Equal(*clock) {
		t.Fatal("heartbeat should refresh the larva's lastSeen")
	}
	if l.Status != models.LarvaWorking || l.Task != "crunching" {
		t.Fatalf("heartbeat should carry status and task, got %q %q", l.Status, l.Task)
	}

	hbs := s.ListHeartbeats()
	if len(hbs) != 1 || hbs[0].Name != "larva-1" {
		t.Fatalf("expected one heartbeat for larva-1, got %v", hbs)
	}
}
