package game

import "tenpin/internal/scoring"

// FrameStore is the per-player, per-frame record of rolls. Rows are indexed
// by turn order. Every mutation bumps Version.
type FrameStore struct {
	version uint64
	rows    [][]scoring.Frame
}

// NewFrameStore gives each of the players ten empty frames.
func NewFrameStore(players int) *FrameStore {
	s := &FrameStore{}
	s.reset(players)
	return s
}

func (s *FrameStore) reset(players int) {
	if players < 0 {
		players = 0
	}
	rows := make([][]scoring.Frame, players)
	for i := range rows {
		rows[i] = make([]scoring.Frame, scoring.Frames)
	}
	s.rows = rows
	s.version++
}

// Players returns the number of rows.
func (s *FrameStore) Players() int {
	return len(s.rows)
}

// Version identifies the current contents of the store.
func (s *FrameStore) Version() uint64 {
	return s.version
}

// Frame returns a copy of one frame.
func (s *FrameStore) Frame(player, frame int) scoring.Frame {
	return append(scoring.Frame(nil), s.rows[player][frame]...)
}

// Append adds one roll to a frame and returns the new version.
func (s *FrameStore) Append(player, frame, pins int) uint64 {
	s.rows[player][frame] = append(s.rows[player][frame], pins)
	s.version++
	return s.version
}

// View returns a deep copy of the store that later mutations cannot reach.
func (s *FrameStore) View() View {
	rows := make([][]scoring.Frame, len(s.rows))
	for p, row := range s.rows {
		rows[p] = make([]scoring.Frame, len(row))
		for f, frame := range row {
			rows[p][f] = append(scoring.Frame(nil), frame...)
		}
	}
	return View{Version: s.version, Rows: rows}
}

// View is an immutable snapshot of a FrameStore.
type View struct {
	Version uint64
	Rows    [][]scoring.Frame
}

// Card scores one player's row.
func (v View) Card(player int) scoring.Card {
	return scoring.Score(v.Rows[player])
}

// Complete reports whether every player has finished the game.
func (v View) Complete() bool {
	return scoring.IsGameComplete(v.Rows)
}
