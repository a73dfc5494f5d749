package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"tenpin/internal/game"
	"tenpin/internal/viewmodel"
)

func newTestRouter(store *game.Store) http.Handler {
	r := chi.NewRouter()
	NewHomeHandler(store, 4).RegisterRoutes(r)
	NewGameHandler(store, Options{BaseURL: "https://lane.example/", RequestTimeout: 5 * time.Second}).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var (
	jsonBody = map[string]string{"Content-Type": "application/json"}
	formBody = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
)

func TestCreateGameRedirects(t *testing.T) {
	store := game.NewStore(4, time.Minute)
	h := newTestRouter(store)

	form := url.Values{"players": {"alice", "", "bob"}}
	rec := do(t, h, http.MethodPost, "/games", form.Encode(), formBody)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	id := strings.TrimPrefix(loc, "/game/")
	g, ok := store.GetGame(id)
	if !ok {
		t.Fatalf("redirected to %q, game not found", loc)
	}
	snap := g.Snapshot()
	if len(snap.Players) != 2 || snap.Players[0].Name != "alice" || snap.Players[1].Name != "bob" {
		t.Errorf("unexpected roster %+v", snap.Players)
	}

	page := do(t, h, http.MethodGet, loc, "", nil)
	if page.Code != http.StatusOK {
		t.Fatalf("game page status %d", page.Code)
	}
	if !strings.Contains(page.Body.String(), "https://lane.example/game/"+id) {
		t.Error("game page should carry the lane link built from BaseURL")
	}
}

func TestUnknownGame(t *testing.T) {
	h := newTestRouter(game.NewStore(4, time.Minute))
	for _, target := range []string{"/game/nope", "/game/nope/lane", "/game/nope/scores"} {
		if rec := do(t, h, http.MethodGet, target, "", nil); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: status %d, want 404", target, rec.Code)
		}
	}
}

func TestLaneState(t *testing.T) {
	store := game.NewStore(4, time.Minute)
	g := store.CreateGame("alice", "bob")
	h := newTestRouter(store)

	rec := do(t, h, http.MethodGet, "/game/"+g.ID+"/lane", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var state viewmodel.LaneState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.GameID != g.ID || state.RackPolicy != "full" || state.LegalMaxPins != 10 {
		t.Errorf("unexpected lane state %+v", state)
	}
	if state.ResetSignal != g.Signal() {
		t.Errorf("resetSignal %d, want %d", state.ResetSignal, g.Signal())
	}
}

func TestThrowGuard(t *testing.T) {
	store := game.NewStore(4, time.Minute)
	g := store.CreateGame("alice")
	h := newTestRouter(store)
	target := "/game/" + g.ID + "/throw"

	rec := do(t, h, http.MethodPost, target, `{"speed":7.5,"curve":0.2}`, jsonBody)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("first throw status %d, want 202", rec.Code)
	}
	var state viewmodel.LaneState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !state.Rolling {
		t.Error("lane should report rolling after a throw")
	}

	if rec := do(t, h, http.MethodPost, target, "", jsonBody); rec.Code != http.StatusConflict {
		t.Errorf("second throw status %d, want 409", rec.Code)
	}
	store.DeleteGame(g.ID)
}

func TestThrowWithoutPlayers(t *testing.T) {
	store := game.NewStore(4, time.Minute)
	g := store.CreateGame()
	h := newTestRouter(store)

	if rec := do(t, h, http.MethodPost, "/game/"+g.ID+"/throw", "{}", jsonBody); rec.Code != http.StatusConflict {
		t.Errorf("status %d, want 409", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/game/"+g.ID+"/rollend", `{"knocked":3}`, jsonBody); rec.Code != http.StatusConflict {
		t.Errorf("rollend status %d, want 409", rec.Code)
	}
}

func TestRollEndClampsAndAdvances(t *testing.T) {
	store := game.NewStore(4, time.Minute)
	g := store.CreateGame("alice", "bob")
	h := newTestRouter(store)
	target := "/game/" + g.ID + "/rollend"

	rec := do(t, h, http.MethodPost, target, `{"knocked":14,"remaining":0}`, jsonBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var result viewmodel.RollResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Recorded != 10 || !result.Clamped || !result.FrameComplete {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Lane.ActivePlayer != 1 || result.Lane.ActiveFrame != 0 || result.Lane.RackPolicy != "full" {
		t.Errorf("turn should pass to bob on a full rack, got %+v", result.Lane)
	}

	rec = do(t, h, http.MethodPost, target, `{"knocked":6,"remaining":4}`, jsonBody)
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.FrameComplete || result.Lane.RackPolicy != "carry_over" || result.Lane.LegalMaxPins != 4 {
		t.Errorf("bob's second ball should use the leave, got %+v", result)
	}

	scores := do(t, h, http.MethodGet, "/game/"+g.ID+"/scores", "", nil)
	body := scores.Body.String()
	if !strings.Contains(body, `id="scores"`) || !strings.Contains(body, "alice") || !strings.Contains(body, "X") {
		t.Errorf("score grid missing strike for alice: %s", body)
	}
}

func TestRollEndRejectsBadBody(t *testing.T) {
	store := game.NewStore(4, time.Minute)
	g := store.CreateGame("alice")
	h := newTestRouter(store)

	for _, body := range []string{"", "not json", `{"pins":3}`} {
		if rec := do(t, h, http.MethodPost, "/game/"+g.ID+"/rollend", body, jsonBody); rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status %d, want 400", body, rec.Code)
		}
	}
}

func TestRosterRoutes(t *testing.T) {
	store := game.NewStore(2, time.Minute)
	g := store.CreateGame("alice")
	h := newTestRouter(store)
	base := "/game/" + g.ID + "/players"

	rec := do(t, h, http.MethodPost, base, url.Values{"name": {"bob"}}.Encode(), formBody)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("add status %d, want 303", rec.Code)
	}
	rec = do(t, h, http.MethodPost, base, url.Values{"name": {"carol"}}.Encode(), formBody)
	if rec.Code != http.StatusConflict {
		t.Errorf("add past the limit status %d, want 409", rec.Code)
	}

	bob := g.Snapshot().Players[1].ID
	htmx := map[string]string{"Content-Type": "application/x-www-form-urlencoded", "Hx-Request": "true"}
	rec = do(t, h, http.MethodPost, base+"/"+bob+"/name", url.Values{"name": {"robert"}}.Encode(), htmx)
	if rec.Code != http.StatusNoContent {
		t.Errorf("rename status %d, want 204", rec.Code)
	}
	if name, _ := g.PlayerName(bob); name != "robert" {
		t.Errorf("name %q, want robert", name)
	}

	if rec := do(t, h, http.MethodPost, base+"/missing/remove", "", formBody); rec.Code != http.StatusNotFound {
		t.Errorf("remove unknown status %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, base+"/"+bob+"/remove", "", formBody); rec.Code != http.StatusSeeOther {
		t.Errorf("remove status %d, want 303", rec.Code)
	}
	if n := len(g.Snapshot().Players); n != 1 {
		t.Errorf("roster size %d, want 1", n)
	}

	players := do(t, h, http.MethodGet, base, "", nil)
	if !strings.Contains(players.Body.String(), `id="players"`) {
		t.Error("players fragment missing container")
	}
}

func TestResetBumpsSignal(t *testing.T) {
	store := game.NewStore(4, time.Minute)
	g := store.CreateGame("alice")
	h := newTestRouter(store)

	do(t, h, http.MethodPost, "/game/"+g.ID+"/rollend", `{"knocked":4,"remaining":6}`, jsonBody)
	before := g.Signal()
	rec := do(t, h, http.MethodPost, "/game/"+g.ID+"/reset", "", formBody)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	snap := g.Snapshot()
	if snap.Signal <= before {
		t.Errorf("signal %d should move past %d", snap.Signal, before)
	}
	if snap.Turn.Frame != 0 || snap.LegalMaxPins != 10 || len(snap.Players[0].Frames[0].Marks) != 0 {
		t.Errorf("reset should clear frames, got %+v", snap.Turn)
	}
}

func TestStreamSendsInitialState(t *testing.T) {
	store := game.NewStore(4, time.Minute)
	g := store.CreateGame("alice")
	h := newTestRouter(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/game/"+g.ID+"/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"event: lane\n", "event: hud\n", "event: scores\n", "event: players\n", `"resetSignal"`} {
		if !strings.Contains(body, want) {
			t.Errorf("stream missing %q", want)
		}
	}
}
