// Package scoring holds the ten-pin rules: frame classification, the legal
// pin count for the next ball, and the score sheet computed from rolls.
//
// Everything here is a pure function of the rolls it is given.
package scoring

import "strconv"

const (
	// Frames is the number of frames each player bowls.
	Frames = 10
	// Pins is the size of a full rack.
	Pins = 10
	// LastFrame is the index of the tenth frame.
	LastFrame = Frames - 1
)

// Frame is the ordered list of pins knocked down by each ball in one frame.
type Frame []int

// Kind tags what a frame has become so far.
type Kind int

const (
	// Empty has no rolls.
	Empty Kind = iota
	// Pending has a single non-strike roll and owes a second ball.
	Pending
	// Strike took all ten pins with the first ball.
	Strike
	// Spare took all ten pins with two balls.
	Spare
	// Open left pins standing after two balls.
	Open
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Pending:
		return "pending"
	case Strike:
		return "strike"
	case Spare:
		return "spare"
	case Open:
		return "open"
	default:
		return "unknown"
	}
}

// State is the classified form of a frame. Standing is the number of pins the
// next ball in this frame may knock down; it is 0 once the frame is complete.
type State struct {
	Kind     Kind
	Complete bool
	Standing int
}

// Classify derives the state of the frame at index from its rolls.
func Classify(index int, f Frame) State {
	if index >= LastFrame {
		return classifyTenth(f)
	}
	switch {
	case len(f) == 0:
		return State{Kind: Empty, Standing: Pins}
	case f[0] == Pins:
		return State{Kind: Strike, Complete: true}
	case len(f) == 1:
		return State{Kind: Pending, Standing: Pins - f[0]}
	case f[0]+f[1] == Pins:
		return State{Kind: Spare, Complete: true}
	default:
		return State{Kind: Open, Complete: true}
	}
}

// The tenth frame re-racks after a strike or a spare and grants fill balls.
func classifyTenth(f Frame) State {
	switch len(f) {
	case 0:
		return State{Kind: Empty, Standing: Pins}
	case 1:
		if f[0] == Pins {
			return State{Kind: Strike, Standing: Pins}
		}
		return State{Kind: Pending, Standing: Pins - f[0]}
	case 2:
		switch {
		case f[0] == Pins:
			if f[1] == Pins {
				return State{Kind: Strike, Standing: Pins}
			}
			return State{Kind: Strike, Standing: Pins - f[1]}
		case f[0]+f[1] == Pins:
			return State{Kind: Spare, Standing: Pins}
		default:
			return State{Kind: Open, Complete: true}
		}
	default:
		kind := Open
		if f[0] == Pins {
			kind = Strike
		} else if f[0]+f[1] == Pins {
			kind = Spare
		}
		return State{Kind: kind, Complete: true}
	}
}

// IsFrameComplete reports whether no further roll may be appended.
func IsFrameComplete(index int, f Frame) bool {
	return Classify(index, f).Complete
}

// MaxPinsThisRoll returns how many pins the next ball in the frame may legally
// knock down. A closed frame allows 0.
func MaxPinsThisRoll(index int, f Frame) int {
	return Classify(index, f).Standing
}

// Clamp bounds a reported pin count to what the frame allows.
func Clamp(index int, f Frame, knocked int) int {
	limit := MaxPinsThisRoll(index, f)
	if knocked < 0 {
		return 0
	}
	if knocked > limit {
		return limit
	}
	return knocked
}

// IsGameComplete reports whether every player has finished the tenth frame.
// A game without players is never complete.
func IsGameComplete(rows [][]Frame) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if len(row) < Frames || !IsFrameComplete(LastFrame, row[LastFrame]) {
			return false
		}
	}
	return true
}

// Notation renders the marks a score sheet shows for each ball of the frame.
func Notation(f Frame) []string {
	marks := make([]string, 0, len(f))
	standing, fresh := Pins, true
	for _, pins := range f {
		switch {
		case fresh && pins == Pins:
			marks = append(marks, "X")
		case !fresh && pins == standing:
			marks = append(marks, "/")
		case pins == 0:
			marks = append(marks, "-")
		default:
			marks = append(marks, strconv.Itoa(pins))
		}
		standing -= pins
		fresh = standing <= 0
		if fresh {
			standing = Pins
		}
	}
	return marks
}
