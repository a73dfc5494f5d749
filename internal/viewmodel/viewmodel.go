package viewmodel

// HomePage holds data for the create-lane form.
type HomePage struct {
	Title      string
	MaxPlayers int
}

// GamePage holds data for the main lane page template.
type GamePage struct {
	Title     string
	GameID    string
	InviteURL string
	Lane      LaneFragment
	Scores    ScoresFragment
	Players   PlayersFragment
}

// LaneFragment holds data for the lane HUD: whose ball it is and how many
// pins are up.
type LaneFragment struct {
	GameID       string
	Signal       uint64
	ActiveName   string
	FrameNumber  int
	BallNumber   int
	Rack         string
	LegalMaxPins int
	Rolling      bool
	Complete     bool
	NoPlayers    bool
	WinnerName   string
}

// ScoresFragment holds data for the score grid.
type ScoresFragment struct {
	GameID     string
	Rows       []ScoreRow
	Complete   bool
	WinnerName string
}

// ScoreRow is one bowler's line on the grid.
type ScoreRow struct {
	Name   string
	Active bool
	Total  int
	Frames []FrameBox
}

// FrameBox is one frame on the grid. Running is blank until the frame can be
// scored.
type FrameBox struct {
	Number  int
	Marks   []string
	Running string
	Current bool
}

// PlayersFragment holds data for the roster panel.
type PlayersFragment struct {
	GameID     string
	Players    []PlayerEntry
	CanAdd     bool
	MaxPlayers int
}

// PlayerEntry is one bowler in the roster panel.
type PlayerEntry struct {
	ID     string
	Name   string
	Seat   int
	Active bool
}

// LaneState is the JSON the renderer polls or receives over SSE to decide how
// to set the pins and whether to accept input.
type LaneState struct {
	GameID       string `json:"gameId"`
	ResetSignal  uint64 `json:"resetSignal"`
	Version      uint64 `json:"version"`
	RackPolicy   string `json:"rackPolicy"`
	LegalMaxPins int    `json:"legalMaxPins"`
	ActivePlayer int    `json:"activePlayer"`
	ActiveFrame  int    `json:"activeFrame"`
	Rolling      bool   `json:"rolling"`
	Complete     bool   `json:"complete"`
}

// RollResult is returned to the renderer after a roll is recorded.
type RollResult struct {
	Recorded      int       `json:"recorded"`
	Clamped       bool      `json:"clamped"`
	FrameComplete bool      `json:"frameComplete"`
	Lane          LaneState `json:"lane"`
}
