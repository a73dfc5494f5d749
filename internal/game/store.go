package game

import (
	"time"

	"tenpin/pkg/realtime"
)

// Event names published to lane subscribers.
const (
	EventLane    = "lane"
	EventScores  = "scores"
	EventPlayers = "players"
)

// Store holds lanes and delegates to realtime.RoomStore for lookup and broadcast.
type Store struct {
	r           *realtime.RoomStore[*Game]
	maxPlayers  int
	rollTimeout time.Duration
}

// NewStore creates an in-memory lane store. Every lane it creates gets the
// given roster limit and throw timeout.
func NewStore(maxPlayers int, rollTimeout time.Duration) *Store {
	return &Store{
		r:           realtime.NewRoomStore[*Game](),
		maxPlayers:  maxPlayers,
		rollTimeout: rollTimeout,
	}
}

// CreateGame initializes a lane, seats the named players in order and
// registers its broadcaster. Names past the roster limit are ignored.
func (s *Store) CreateGame(names ...string) *Game {
	g := NewGame(s.maxPlayers, s.rollTimeout)
	for _, name := range names {
		if _, err := g.AddPlayer(name); err != nil {
			break
		}
	}
	s.r.Create(g.ID, g)
	return g
}

// GetGame returns a lane by ID if it exists.
func (s *Store) GetGame(id string) (*Game, bool) {
	room, ok := s.r.Get(id)
	if !ok || room.State == nil {
		return nil, false
	}
	return room.State, true
}

// DeleteGame drops a lane and stops its watchdog.
func (s *Store) DeleteGame(id string) {
	s.r.Delete(id)
}

// Broadcaster returns the SSE broadcaster for a lane, creating it if missing.
func (s *Store) Broadcaster(id string) *realtime.Broadcaster {
	return s.r.Broadcaster(id)
}

// Publish notifies subscribers of a lane update, stamped with the lane's
// current reset signal.
func (s *Store) Publish(id string, names ...string) {
	var signal uint64
	if g, ok := s.GetGame(id); ok {
		signal = g.Signal()
	}
	for _, name := range names {
		s.r.Publish(id, realtime.Event{Name: name, Signal: signal})
	}
}

// PublishAll notifies subscribers that everything changed.
func (s *Store) PublishAll(id string) {
	s.Publish(id, EventLane, EventScores, EventPlayers)
}

// EnsureThrowWatchdog starts the loop that frees the rolling guard when a
// throw is never resolved. It exits once no throw is pending.
func (s *Store) EnsureThrowWatchdog(id string) {
	getState := func() *Game {
		g, _ := s.GetGame(id)
		return g
	}
	tick := func(state *Game, now time.Time) (time.Time, []realtime.Event, bool) {
		if state == nil {
			return time.Time{}, nil, true
		}
		if state.ReleaseStaleThrow(now) {
			return time.Time{}, []realtime.Event{{Name: EventLane, Signal: state.Signal()}}, true
		}
		next, ok := state.NextTimer()
		if !ok {
			return time.Time{}, nil, true
		}
		return next, nil, false
	}
	s.r.RunLoop(id, getState, tick)
}

// WakeThrowWatchdog makes the watchdog re-read the lane, e.g. after a roll
// resolved.
func (s *Store) WakeThrowWatchdog(id string) {
	s.r.Wake(id)
}
