package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tenpin/internal/game"
	"tenpin/internal/viewmodel"
	"tenpin/views/components"
	"tenpin/views/pages"
)

const maxEventBody = 4 << 10

// Options tunes the game routes.
type Options struct {
	// BaseURL, when set, is used for the lane link instead of the request host.
	BaseURL string
	// RequestTimeout bounds every route except the event stream.
	RequestTimeout time.Duration
}

type GameHandler struct {
	store *game.Store
	opts  Options
}

func NewGameHandler(store *game.Store, opts Options) *GameHandler {
	return &GameHandler{store: store, opts: opts}
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/stream", h.stream)
		r.Group(func(r chi.Router) {
			if h.opts.RequestTimeout > 0 {
				r.Use(middleware.Timeout(h.opts.RequestTimeout))
			}
			r.Get("/", h.gamePage)
			r.Get("/lane", h.laneState)
			r.Get("/hud", h.laneFragment)
			r.Get("/scores", h.scoresFragment)
			r.Get("/players", h.playersFragment)
			r.Post("/players", h.addPlayer)
			r.Post("/players/{playerID}/name", h.renamePlayer)
			r.Post("/players/{playerID}/remove", h.removePlayer)
			r.Post("/reset", h.resetGame)
			r.Post("/throw", h.throw)
			r.Post("/rollend", h.rollEnd)
		})
	})
}

func (h *GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	instance, ok := h.store.GetGame(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return instance, true
}

func (h *GameHandler) gamePage(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	snapshot := instance.Snapshot()
	render(w, r, pages.GamePage(viewmodel.GamePage{
		Title:     appTitle,
		GameID:    instance.ID,
		InviteURL: h.laneURL(r, instance.ID),
		Lane:      buildLaneFragment(snapshot),
		Scores:    buildScoresFragment(snapshot),
		Players:   buildPlayersFragment(snapshot),
	}))
}

func (h *GameHandler) laneState(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildLaneState(instance.Snapshot()))
}

func (h *GameHandler) laneFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	render(w, r, components.LaneFragment(buildLaneFragment(instance.Snapshot())))
}

func (h *GameHandler) scoresFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	render(w, r, components.ScoresFragment(buildScoresFragment(instance.Snapshot())))
}

func (h *GameHandler) playersFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	render(w, r, components.PlayersFragment(buildPlayersFragment(instance.Snapshot())))
}

func (h *GameHandler) addPlayer(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if _, err := instance.AddPlayer(r.FormValue("name")); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	h.store.PublishAll(instance.ID)
	h.done(w, r, instance.ID)
}

func (h *GameHandler) renamePlayer(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if err := instance.RenamePlayer(chi.URLParam(r, "playerID"), r.FormValue("name")); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	h.store.Publish(instance.ID, game.EventPlayers, game.EventScores, game.EventLane)
	h.done(w, r, instance.ID)
}

func (h *GameHandler) removePlayer(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := instance.RemovePlayer(chi.URLParam(r, "playerID")); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	h.store.PublishAll(instance.ID)
	h.done(w, r, instance.ID)
}

func (h *GameHandler) resetGame(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	instance.Reset()
	h.store.WakeThrowWatchdog(instance.ID)
	h.store.PublishAll(instance.ID)
	h.done(w, r, instance.ID)
}

func (h *GameHandler) throw(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var ev game.ThrowEvent
	if err := decodeEvent(w, r, &ev, true); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid throw event")
		return
	}
	if err := instance.Throw(ev, time.Now().UTC()); err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	h.store.EnsureThrowWatchdog(instance.ID)
	h.store.Publish(instance.ID, game.EventLane)
	writeJSON(w, http.StatusAccepted, buildLaneState(instance.Snapshot()))
}

func (h *GameHandler) rollEnd(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var ev game.RollEndEvent
	if err := decodeEvent(w, r, &ev, false); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid roll event")
		return
	}
	out, err := instance.RollEnd(ev)
	h.store.WakeThrowWatchdog(instance.ID)
	if err != nil {
		log.Printf("roll end rejected game=%s knocked=%d err=%v", instance.ID, ev.Knocked, err)
		h.store.Publish(instance.ID, game.EventLane)
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	log.Printf("roll game=%s player=%d frame=%d recorded=%d complete=%t", instance.ID, out.Player, out.Frame, out.Recorded, out.GameComplete)
	h.store.PublishAll(instance.ID)
	writeJSON(w, http.StatusOK, viewmodel.RollResult{
		Recorded:      out.Recorded,
		Clamped:       out.Clamped,
		FrameComplete: out.FrameComplete,
		Lane:          buildLaneState(instance.Snapshot()),
	})
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	hub := h.store.Broadcaster(instance.ID)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendSnapshot := func(includeLane bool, includePlayers bool, includeScores bool) {
		snapshot := instance.Snapshot()
		if includeLane {
			state, _ := json.Marshal(buildLaneState(snapshot))
			writeSSE(w, "lane", string(state))
			writeSSE(w, "hud", renderToString(r, components.LaneFragment(buildLaneFragment(snapshot))))
		}
		if includePlayers {
			writeSSE(w, "players", renderToString(r, components.PlayersFragment(buildPlayersFragment(snapshot))))
		}
		if includeScores {
			writeSSE(w, "scores", renderToString(r, components.ScoresFragment(buildScoresFragment(snapshot))))
		}
		flusher.Flush()
	}

	sendSnapshot(true, true, true)

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			switch event.Name {
			case game.EventLane:
				sendSnapshot(true, false, false)
			case game.EventPlayers:
				sendSnapshot(false, true, false)
			case game.EventScores:
				sendSnapshot(false, false, true)
			}
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

// done finishes a form post: htmx callers get 204, plain forms go back to the lane.
func (h *GameHandler) done(w http.ResponseWriter, r *http.Request, gameID string) {
	if r.Header.Get("Hx-Request") == "true" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/game/"+gameID, http.StatusSeeOther)
}

func (h *GameHandler) laneURL(r *http.Request, gameID string) string {
	if baseURL := strings.TrimSpace(h.opts.BaseURL); baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/game/" + gameID
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/game/" + gameID
}

// decodeEvent reads a JSON event body. An empty body is allowed when optional.
func decodeEvent(w http.ResponseWriter, r *http.Request, target any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrRolling),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoPlayers),
		errors.Is(err, game.ErrRosterFull),
		errors.Is(err, game.ErrFrameClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func buildLaneState(snapshot game.Snapshot) viewmodel.LaneState {
	return viewmodel.LaneState{
		GameID:       snapshot.ID,
		ResetSignal:  snapshot.Signal,
		Version:      snapshot.Version,
		RackPolicy:   snapshot.Turn.Rack.String(),
		LegalMaxPins: snapshot.LegalMaxPins,
		ActivePlayer: snapshot.Turn.Player,
		ActiveFrame:  snapshot.Turn.Frame,
		Rolling:      snapshot.Rolling,
		Complete:     snapshot.Complete,
	}
}

func buildLaneFragment(snapshot game.Snapshot) viewmodel.LaneFragment {
	ball := 1
	if snapshot.Turn.Player < len(snapshot.Players) {
		ball = len(snapshot.Players[snapshot.Turn.Player].Frames[snapshot.Turn.Frame].Marks) + 1
	}
	return viewmodel.LaneFragment{
		GameID:       snapshot.ID,
		Signal:       snapshot.Signal,
		ActiveName:   snapshot.ActiveName,
		FrameNumber:  snapshot.Turn.Frame + 1,
		BallNumber:   ball,
		Rack:         snapshot.Turn.Rack.String(),
		LegalMaxPins: snapshot.LegalMaxPins,
		Rolling:      snapshot.Rolling,
		Complete:     snapshot.Complete,
		NoPlayers:    len(snapshot.Players) == 0,
		WinnerName:   snapshot.WinnerName,
	}
}

func buildScoresFragment(snapshot game.Snapshot) viewmodel.ScoresFragment {
	rows := make([]viewmodel.ScoreRow, 0, len(snapshot.Players))
	for _, player := range snapshot.Players {
		row := viewmodel.ScoreRow{
			Name:   player.Name,
			Active: player.Active,
			Total:  player.Total,
			Frames: make([]viewmodel.FrameBox, 0, len(player.Frames)),
		}
		for i, frame := range player.Frames {
			running := ""
			if frame.Running != nil {
				running = strconv.Itoa(*frame.Running)
			}
			row.Frames = append(row.Frames, viewmodel.FrameBox{
				Number:  i + 1,
				Marks:   frame.Marks,
				Running: running,
				Current: player.Active && i == snapshot.Turn.Frame,
			})
		}
		rows = append(rows, row)
	}
	return viewmodel.ScoresFragment{
		GameID:     snapshot.ID,
		Rows:       rows,
		Complete:   snapshot.Complete,
		WinnerName: snapshot.WinnerName,
	}
}

func buildPlayersFragment(snapshot game.Snapshot) viewmodel.PlayersFragment {
	players := make([]viewmodel.PlayerEntry, 0, len(snapshot.Players))
	for i, player := range snapshot.Players {
		players = append(players, viewmodel.PlayerEntry{
			ID:     player.ID,
			Name:   player.Name,
			Seat:   i + 1,
			Active: player.Active,
		})
	}
	return viewmodel.PlayersFragment{
		GameID:     snapshot.ID,
		Players:    players,
		CanAdd:     len(snapshot.Players) < snapshot.MaxPlayers,
		MaxPlayers: snapshot.MaxPlayers,
	}
}
