package game

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"tenpin/internal/scoring"
	"tenpin/pkg/realtime"
)

const (
	// DefaultMaxPlayers caps the roster when no limit is configured.
	DefaultMaxPlayers = 6
	maxNameLen        = 20
)

var (
	ErrRolling        = errors.New("a ball is already rolling")
	ErrRosterFull     = errors.New("roster is full")
	ErrPlayerNotFound = errors.New("player not found")
)

// Player is one bowler on the lane. Order in Game.Players is turn order.
type Player struct {
	ID       string
	Name     string
	JoinedAt time.Time
}

// ThrowEvent is reported by the renderer when a ball is released.
type ThrowEvent struct {
	Speed float64 `json:"speed"`
	Curve float64 `json:"curve"`
}

// RollEndEvent is reported by the renderer once the pins settle.
type RollEndEvent struct {
	Knocked   int `json:"knocked"`
	Remaining int `json:"remaining"`
}

// Game is one lane session: the roster, the turn controller and the guard
// that keeps a second ball from being thrown while one is unresolved.
type Game struct {
	mu         sync.Mutex
	ID         string
	CreatedAt  time.Time
	MaxPlayers int
	Players    []*Player

	ctl       *Controller
	throw     realtime.Deadline
	lastThrow ThrowEvent
}

// NewGame creates an empty lane. A non-positive maxPlayers or rollTimeout
// falls back to the defaults.
func NewGame(maxPlayers int, rollTimeout time.Duration) *Game {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	return &Game{
		ID:         newID(),
		CreatedAt:  time.Now().UTC(),
		MaxPlayers: maxPlayers,
		ctl:        NewController(0),
		throw:      realtime.Deadline{Timeout: rollTimeout},
	}
}

// AddPlayer appends a bowler to the turn order. The roster changes size, so
// every frame is cleared and play restarts from the first player.
func (g *Game) AddPlayer(name string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Players) >= g.MaxPlayers {
		return nil, ErrRosterFull
	}
	player := &Player{
		ID:       newID(),
		Name:     cleanName(name, len(g.Players)+1),
		JoinedAt: time.Now().UTC(),
	}
	g.Players = append(g.Players, player)
	g.resetLocked()
	return player, nil
}

// RenamePlayer changes a display name. Frames are kept.
func (g *Game) RenamePlayer(id string, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.playerIndexLocked(id)
	if i < 0 {
		return ErrPlayerNotFound
	}
	g.Players[i].Name = cleanName(name, i+1)
	return nil
}

// RemovePlayer drops a bowler and clears every frame.
func (g *Game) RemovePlayer(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.playerIndexLocked(id)
	if i < 0 {
		return ErrPlayerNotFound
	}
	g.Players = append(g.Players[:i], g.Players[i+1:]...)
	g.resetLocked()
	return nil
}

// Reset starts a new game with the same roster.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

func (g *Game) resetLocked() {
	g.ctl.Reset(len(g.Players))
	g.throw.Disarm()
	g.lastThrow = ThrowEvent{}
}

// Throw marks a ball as rolling. Input must stay disabled until RollEnd.
func (g *Game) Throw(ev ThrowEvent, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Players) == 0 {
		return ErrNoPlayers
	}
	if g.ctl.Complete() {
		return ErrGameOver
	}
	if g.throw.Armed() {
		return ErrRolling
	}
	g.throw.Arm(now)
	g.lastThrow = ev
	return nil
}

// RollEnd records the settled pin count for the active bowler. The count is
// clamped to what the frame allows; the renderer is never trusted.
func (g *Game) RollEnd(ev RollEndEvent) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.throw.Disarm()
	legal := g.ctl.LegalMaxPins()
	turn := g.ctl.Turn()
	out, err := g.ctl.Record(ev.Knocked)
	if err != nil {
		if errors.Is(err, ErrFrameClosed) {
			log.Printf("roll on closed frame game=%s player=%d frame=%d knocked=%d", g.ID, turn.Player, turn.Frame, ev.Knocked)
		}
		return Outcome{}, err
	}
	if out.Clamped {
		log.Printf("clamped roll game=%s player=%d frame=%d reported=%d recorded=%d", g.ID, out.Player, out.Frame, out.Reported, out.Recorded)
	}
	if ev.Remaining != legal-out.Recorded {
		log.Printf("pin count mismatch game=%s frame=%d legal=%d recorded=%d remaining=%d", g.ID, out.Frame, legal, out.Recorded, ev.Remaining)
	}
	return out, nil
}

// ReleaseStaleThrow clears the rolling guard when the renderer never reported
// the end of the roll. Nothing is recorded.
func (g *Game) ReleaseStaleThrow(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.throw.Expired(now) {
		return false
	}
	log.Printf("releasing unresolved throw game=%s armed=%s", g.ID, g.throw.ArmedAt.Format(time.RFC3339))
	g.throw.Disarm()
	return true
}

// NextTimer returns when the pending throw times out.
func (g *Game) NextTimer() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.throw.NextWake()
}

// Rolling reports whether a ball is unresolved.
func (g *Game) Rolling() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.throw.Armed()
}

// Signal returns the current reset signal.
func (g *Game) Signal() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctl.Signal()
}

// Complete reports whether every bowler has finished.
func (g *Game) Complete() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctl.Complete()
}

// PlayerName resolves a bowler's display name by ID.
func (g *Game) PlayerName(id string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.playerIndexLocked(id)
	if i < 0 {
		return "", false
	}
	return g.Players[i].Name, true
}

func (g *Game) playerIndexLocked(id string) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Snapshot captures the state needed for rendering and for the renderer.
type Snapshot struct {
	ID           string
	Version      uint64
	Signal       uint64
	Turn         Turn
	ActiveName   string
	LegalMaxPins int
	Rolling      bool
	Complete     bool
	MaxPlayers   int
	Players      []PlayerCard
	WinnerName   string
	LastThrow    ThrowEvent
}

// PlayerCard is one row of the score grid.
type PlayerCard struct {
	ID     string
	Name   string
	Total  int
	Active bool
	Frames [scoring.Frames]FrameCard
}

// FrameCard is one box of the score grid.
type FrameCard struct {
	Marks    []string
	Score    *int
	Running  *int
	Kind     scoring.Kind
	Complete bool
}

// Snapshot returns a consistent view of the lane.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	view := g.ctl.View()
	turn := g.ctl.Turn()
	complete := view.Complete()

	cards := make([]PlayerCard, 0, len(g.Players))
	for i, player := range g.Players {
		card := view.Card(i)
		running := card.Cumulative()
		pc := PlayerCard{
			ID:     player.ID,
			Name:   player.Name,
			Total:  card.Total,
			Active: !complete && i == turn.Player,
		}
		for f, frame := range view.Rows[i] {
			state := scoring.Classify(f, frame)
			pc.Frames[f] = FrameCard{
				Marks:    scoring.Notation(frame),
				Score:    card.PerFrame[f],
				Running:  running[f],
				Kind:     state.Kind,
				Complete: state.Complete,
			}
		}
		cards = append(cards, pc)
	}

	activeName := ""
	if !complete && turn.Player < len(g.Players) {
		activeName = g.Players[turn.Player].Name
	}
	winnerName := ""
	if complete {
		winnerName = resolveWinner(cards)
	}
	return Snapshot{
		ID:           g.ID,
		Version:      view.Version,
		Signal:       g.ctl.Signal(),
		Turn:         turn,
		ActiveName:   activeName,
		LegalMaxPins: g.ctl.LegalMaxPins(),
		Rolling:      g.throw.Armed(),
		Complete:     complete,
		MaxPlayers:   g.MaxPlayers,
		Players:      cards,
		WinnerName:   winnerName,
		LastThrow:    g.lastThrow,
	}
}

func resolveWinner(cards []PlayerCard) string {
	if len(cards) == 0 {
		return ""
	}
	ranked := make([]PlayerCard, len(cards))
	copy(ranked, cards)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	top := ranked[0].Total
	winners := make([]string, 0, len(ranked))
	for _, card := range ranked {
		if card.Total != top {
			break
		}
		winners = append(winners, card.Name)
	}
	if len(winners) == 1 {
		return winners[0]
	}
	return "Tie: " + strings.Join(winners, ", ")
}

func cleanName(name string, seat int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Player " + strconv.Itoa(seat)
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}
	return name
}

func newID() string {
	// 10 bytes -> 16 chars of base32, short and url-safe.
	buf := make([]byte, 10)
	_, _ = rand.Read(buf)
	encoder := base32.StdEncoding.WithPadding(base32.NoPadding)
	return strings.ToLower(encoder.EncodeToString(buf))
}
