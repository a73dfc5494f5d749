package game

import (
	"testing"

	"tenpin/internal/scoring"
)

func TestNewFrameStore(t *testing.T) {
	s := NewFrameStore(3)
	if s.Players() != 3 {
		t.Fatalf("Players %d, want 3", s.Players())
	}
	view := s.View()
	for p, row := range view.Rows {
		if len(row) != scoring.Frames {
			t.Errorf("player %d has %d frames, want %d", p, len(row), scoring.Frames)
		}
		for f, frame := range row {
			if len(frame) != 0 {
				t.Errorf("player %d frame %d has rolls %v", p, f, frame)
			}
		}
	}
}

func TestFrameStore_AppendBumpsVersion(t *testing.T) {
	s := NewFrameStore(1)
	before := s.Version()
	v := s.Append(0, 0, 7)
	if v != before+1 || s.Version() != v {
		t.Errorf("version %d after append, want %d", s.Version(), before+1)
	}
	if got := s.Frame(0, 0); len(got) != 1 || got[0] != 7 {
		t.Errorf("frame %v, want [7]", got)
	}
}

func TestFrameStore_FrameReturnsCopy(t *testing.T) {
	s := NewFrameStore(1)
	s.Append(0, 0, 3)
	f := s.Frame(0, 0)
	f[0] = 9
	if got := s.Frame(0, 0); got[0] != 3 {
		t.Errorf("store changed through a returned frame: %v", got)
	}
}

func TestFrameStore_ViewIsIsolated(t *testing.T) {
	s := NewFrameStore(2)
	s.Append(1, 0, 4)
	view := s.View()
	view.Rows[1][0][0] = 10
	view.Rows[0][0] = append(view.Rows[0][0], 5)

	s.Append(1, 0, 2)
	if got := s.Frame(1, 0); got[0] != 4 || got[1] != 2 {
		t.Errorf("store frame %v, want [4 2]", got)
	}
	if got := s.Frame(0, 0); len(got) != 0 {
		t.Errorf("store frame %v, want empty", got)
	}
	if len(view.Rows[1][0]) != 1 {
		t.Errorf("view grew after store append: %v", view.Rows[1][0])
	}
}

func TestView_CardAndComplete(t *testing.T) {
	s := NewFrameStore(1)
	for f := 0; f < scoring.Frames; f++ {
		s.Append(0, f, 3)
		s.Append(0, f, 4)
	}
	view := s.View()
	if got := view.Card(0).Total; got != 70 {
		t.Errorf("total %d, want 70", got)
	}
	if !view.Complete() {
		t.Error("view should be complete")
	}
}
