package game

import (
	"errors"

	"tenpin/internal/scoring"
)

var (
	// ErrNoPlayers means the roster is empty, so there is nobody to bowl.
	ErrNoPlayers = errors.New("no players")
	// ErrGameOver means every player has finished the tenth frame.
	ErrGameOver = errors.New("game over")
	// ErrFrameClosed means a roll arrived for a frame that takes no more rolls.
	ErrFrameClosed = errors.New("frame already closed")
)

// RackPolicy tells the renderer how to set pins for the next ball.
type RackPolicy int

const (
	// FullRack sets all ten pins.
	FullRack RackPolicy = iota
	// CarryOver keeps only the pins left standing by the previous ball.
	CarryOver
)

func (p RackPolicy) String() string {
	if p == CarryOver {
		return "carry_over"
	}
	return "full"
}

// Turn is whose ball it is, in which frame, and on what rack.
type Turn struct {
	Player int
	Frame  int
	Rack   RackPolicy
}

// Outcome describes what one recorded roll did to the game.
type Outcome struct {
	Player        int
	Frame         int
	Reported      int
	Recorded      int
	Clamped       bool
	FrameComplete bool
	Next          Turn
	GameComplete  bool
	Signal        uint64
}

// Controller is the turn state machine. It owns the FrameStore and is the
// only thing that writes to it.
type Controller struct {
	store  *FrameStore
	turn   Turn
	signal uint64
}

// NewController starts a game for the given number of players at the first
// player's first frame on a full rack.
func NewController(players int) *Controller {
	c := &Controller{store: NewFrameStore(players)}
	c.turn = Turn{Rack: FullRack}
	c.signal = 1
	return c
}

// Reset clears every frame and restarts the turn for the given roster size.
func (c *Controller) Reset(players int) {
	c.store.reset(players)
	c.turn = Turn{Rack: FullRack}
	c.signal++
}

// Turn returns the current turn.
func (c *Controller) Turn() Turn {
	return c.turn
}

// Signal increments on every reset and every recorded roll. The renderer
// re-racks whenever it changes.
func (c *Controller) Signal() uint64 {
	return c.signal
}

// Players returns the number of rows in the store.
func (c *Controller) Players() int {
	return c.store.Players()
}

// View returns an immutable copy of the frame store.
func (c *Controller) View() View {
	return c.store.View()
}

// Complete reports whether the game is over.
func (c *Controller) Complete() bool {
	return scoring.IsGameComplete(c.store.rows)
}

// LegalMaxPins is the most pins the next ball may knock down. It is 0 when
// nobody can bowl.
func (c *Controller) LegalMaxPins() int {
	if c.store.Players() == 0 || c.Complete() {
		return 0
	}
	return scoring.MaxPinsThisRoll(c.turn.Frame, c.store.rows[c.turn.Player][c.turn.Frame])
}

// Record clamps the reported pin count, appends it to the active frame and
// advances the turn.
func (c *Controller) Record(knocked int) (Outcome, error) {
	if c.store.Players() == 0 {
		return Outcome{}, ErrNoPlayers
	}
	if c.Complete() {
		return Outcome{}, ErrGameOver
	}
	player, index := c.turn.Player, c.turn.Frame
	frame := c.store.Frame(player, index)
	if scoring.IsFrameComplete(index, frame) {
		return Outcome{}, ErrFrameClosed
	}

	recorded := scoring.Clamp(index, frame, knocked)
	c.store.Append(player, index, recorded)
	frame = append(frame, recorded)

	out := Outcome{
		Player:   player,
		Frame:    index,
		Reported: knocked,
		Recorded: recorded,
		Clamped:  recorded != knocked,
	}
	state := scoring.Classify(index, frame)
	switch {
	case !state.Complete && state.Standing == scoring.Pins:
		// Tenth-frame strike or spare: the next ball is on a fresh rack.
		c.turn.Rack = FullRack
	case !state.Complete:
		c.turn.Rack = CarryOver
	case player+1 < c.store.Players():
		c.turn = Turn{Player: player + 1, Frame: index, Rack: FullRack}
	default:
		c.turn = Turn{Player: 0, Frame: min(scoring.LastFrame, index+1), Rack: FullRack}
	}
	c.signal++

	out.FrameComplete = state.Complete
	out.Next = c.turn
	out.GameComplete = c.Complete()
	out.Signal = c.signal
	return out, nil
}
