package game

import (
	"testing"
	"time"
)

func TestNewStore(t *testing.T) {
	s := NewStore(4, time.Minute)
	if s == nil {
		t.Fatal("NewStore returned nil")
	}
}

func TestStore_CreateGame_GetGame(t *testing.T) {
	s := NewStore(2, time.Minute)
	g := s.CreateGame("alice", "bob", "carol")
	if g == nil {
		t.Fatal("CreateGame returned nil")
	}
	if g.ID == "" {
		t.Error("game ID is empty")
	}
	if len(g.Players) != 2 {
		t.Errorf("players %d, want 2 (roster limit)", len(g.Players))
	}

	got, ok := s.GetGame(g.ID)
	if !ok {
		t.Fatal("GetGame returned false for existing game")
	}
	if got != g {
		t.Error("GetGame returned different pointer")
	}

	_, ok = s.GetGame("nonexistent")
	if ok {
		t.Error("GetGame should return false for missing ID")
	}

	s.DeleteGame(g.ID)
	if _, ok := s.GetGame(g.ID); ok {
		t.Error("GetGame should return false after DeleteGame")
	}
}

func TestStore_PublishCarriesSignal(t *testing.T) {
	s := NewStore(2, time.Minute)
	g := s.CreateGame("alice")
	hub := s.Broadcaster(g.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	g.RollEnd(RollEndEvent{Knocked: 3})
	s.Publish(g.ID, EventLane)
	got := <-ch
	if got.Name != EventLane || got.Signal != g.Signal() {
		t.Errorf("got %+v, want lane@%d", got, g.Signal())
	}
}

func TestStore_PublishAll(t *testing.T) {
	s := NewStore(2, time.Minute)
	g := s.CreateGame("alice")
	hub := s.Broadcaster(g.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.PublishAll(g.ID)
	for _, want := range []string{EventLane, EventScores, EventPlayers} {
		if got := <-ch; got.Name != want {
			t.Errorf("got %q, want %q", got.Name, want)
		}
	}
}

func TestStore_Broadcaster(t *testing.T) {
	s := NewStore(2, time.Minute)
	g := s.CreateGame()
	if s.Broadcaster(g.ID) == nil {
		t.Fatal("Broadcaster returned nil for existing game")
	}
	// Broadcaster for an unknown ID creates a hub, but no game appears.
	if s.Broadcaster("unknown-id") == nil {
		t.Fatal("Broadcaster returned nil for unknown ID")
	}
	if _, ok := s.GetGame("unknown-id"); ok {
		t.Error("GetGame should not find a lane that was never created")
	}
}

func TestStore_ThrowWatchdogReleasesGuard(t *testing.T) {
	s := NewStore(2, 20*time.Millisecond)
	g := s.CreateGame("alice")
	hub := s.Broadcaster(g.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	if err := g.Throw(ThrowEvent{}, time.Now().UTC()); err != nil {
		t.Fatalf("Throw: %v", err)
	}
	s.EnsureThrowWatchdog(g.ID)
	s.EnsureThrowWatchdog(g.ID)

	select {
	case got := <-ch:
		if got.Name != EventLane {
			t.Errorf("got %q, want lane", got.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not release the throw")
	}
	if g.Rolling() {
		t.Error("guard should be released")
	}
}

func TestStore_WakeThrowWatchdog_NoPanicWhenNoLoop(t *testing.T) {
	s := NewStore(2, time.Minute)
	s.WakeThrowWatchdog("nonexistent")
}
