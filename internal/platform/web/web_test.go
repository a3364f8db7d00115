package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/miniplay/internal/core"
	_ "github.com/vovakirdan/miniplay/internal/games/reflex"
	_ "github.com/vovakirdan/miniplay/internal/games/t2048"
	"github.com/vovakirdan/miniplay/internal/profile"
	"github.com/vovakirdan/miniplay/internal/score"
	"github.com/vovakirdan/miniplay/internal/storage"
)

type fakeHistory struct {
	rounds []storage.Round
	err    error
}

func (h fakeHistory) RecentRounds(gameID string, limit int) ([]storage.Round, error) {
	var out []storage.Round
	for _, r := range h.rounds {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out, h.err
}

func newTestServer(t *testing.T, hist History) (*Server, *score.MemoryKV) {
	t.Helper()
	kv := score.NewMemoryKV()
	s := NewServer(Options{
		Book:    score.NewBook(kv, nil, nil),
		History: hist,
		KV:      kv,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 120},
	})
	return s, kv
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Routes(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decode[map[string]any](t, rec)["status"]; got != "ok" {
		t.Errorf("status field = %v, want ok", got)
	}
}

func TestListGames(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Routes()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"2048", "flappy", "memory", "reflex", "snake"}},
		{"category", "?category=reflex", []string{"reflex", "snake"}},
		{"search", "?q=TILES", []string{"2048"}},
		{"category and search", "?category=puzzle&q=snake", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/games"+tc.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			games := decode[[]gameView](t, rec)
			var ids []string
			for _, g := range games {
				ids = append(ids, g.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tc.want, ",") {
				t.Errorf("ids = %v, want %v", ids, tc.want)
			}
		})
	}
}

func TestGetGame(t *testing.T) {
	s, kv := newTestServer(t, nil)
	if err := kv.Set(score.Key2048, "512"); err != nil {
		t.Fatal(err)
	}
	h := s.Routes()

	rec := do(t, h, http.MethodGet, "/api/games/2048", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	g := decode[gameView](t, rec)
	if !g.Playable || g.Best == nil || *g.Best != 512 || g.Unit != "pts" {
		t.Errorf("game = %+v, want playable with best 512 pts", g)
	}

	if rec := do(t, h, http.MethodGet, "/api/games/tetris", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown game status = %d, want 404", rec.Code)
	}
}

func TestScores(t *testing.T) {
	hist := fakeHistory{rounds: []storage.Round{
		{ID: "r1", GameID: "reflex", Metric: 250, Won: true, CreatedAt: time.Now()},
		{ID: "r2", GameID: "snake", Metric: 30},
	}}
	s, _ := newTestServer(t, hist)
	if _, err := s.book.Record("reflex", core.Outcome{Metric: 250, Won: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.book.Record("memory", core.Outcome{Metric: 40, Moves: 12, Won: true}); err != nil {
		t.Fatal(err)
	}
	h := s.Routes()

	rec := do(t, h, http.MethodGet, "/api/scores/reflex", "")
	got := decode[scoresView](t, rec)
	if got.Best == nil || *got.Best != 250 || got.Unit != "ms" {
		t.Errorf("reflex scores = %+v, want best 250 ms", got)
	}
	if len(got.Recent) != 1 || got.Recent[0].ID != "r1" {
		t.Errorf("recent = %+v, want r1 only", got.Recent)
	}

	mem := decode[scoresView](t, do(t, h, http.MethodGet, "/api/scores/memory", ""))
	if len(mem.Leaderboard) != 1 || mem.Leaderboard[0].Moves != 12 {
		t.Errorf("memory leaderboard = %+v", mem.Leaderboard)
	}

	if rec := do(t, h, http.MethodGet, "/api/scores/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown game status = %d, want 404", rec.Code)
	}
}

func TestScoresHistoryFailure(t *testing.T) {
	s, _ := newTestServer(t, fakeHistory{err: errors.New("disk gone")})
	rec := do(t, s.Routes(), http.MethodGet, "/api/scores/snake", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decode[scoresView](t, rec); got.Best != nil || len(got.Recent) != 0 {
		t.Errorf("scores = %+v, want empty", got)
	}
}

func TestProfile(t *testing.T) {
	s, kv := newTestServer(t, nil)
	h := s.Routes()

	if got := decode[profile.Profile](t, do(t, h, http.MethodGet, "/api/profile", "")); got != profile.Default() {
		t.Errorf("initial profile = %+v, want default", got)
	}

	rec := do(t, h, http.MethodPut, "/api/profile", `{"name":"   ","avatar":"star"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", rec.Code)
	}
	want := profile.Profile{Name: profile.DefaultName, Avatar: "star"}
	if got := decode[profile.Profile](t, rec); got != want {
		t.Errorf("PUT returned %+v, want %+v", got, want)
	}
	if got := profile.Load(kv); got != want {
		t.Errorf("stored profile = %+v, want %+v", got, want)
	}

	bad := []string{`not json`, `{"name":"x","level":3}`}
	for _, body := range bad {
		if rec := do(t, h, http.MethodPut, "/api/profile", body); rec.Code != http.StatusBadRequest {
			t.Errorf("PUT %q status = %d, want 400", body, rec.Code)
		}
	}
}

func TestIntentApply(t *testing.T) {
	x, y := 4, 5
	tests := []struct {
		name    string
		in      Intent
		applied bool
		action  core.Action
	}{
		{"left", Intent{Action: "left"}, true, core.ActionLeft},
		{"restart", Intent{Action: "restart"}, true, core.ActionRestart},
		{"unknown", Intent{Action: "fly"}, false, core.ActionNone},
		{"quit ignored", Intent{Action: "quit"}, false, core.ActionNone},
		{"tap only", Intent{X: &x, Y: &y}, true, core.ActionNone},
		{"half tap", Intent{X: &x}, false, core.ActionNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if got := tc.in.apply(&frame); got != tc.applied {
				t.Errorf("apply = %v, want %v", got, tc.applied)
			}
			if tc.action != core.ActionNone && !frame.Has(tc.action) {
				t.Errorf("frame missing %v", tc.action)
			}
			if tc.name == "tap only" && (!frame.Tapped || frame.Tap != (core.Point{X: 4, Y: 5})) {
				t.Errorf("tap = %+v, %v", frame.Tap, frame.Tapped)
			}
		})
	}
}

func TestPlayWebsocket(t *testing.T) {
	s, _ := newTestServer(t, nil)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/play/2048?seed=7"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() map[string]any {
		t.Helper()
		if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
			t.Fatal(err)
		}
		var f map[string]any
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		return f
	}

	first := read()
	if first["tick"].(float64) < 1 {
		t.Errorf("tick = %v, want >= 1", first["tick"])
	}
	snap, ok := first["snapshot"].(map[string]any)
	if !ok || snap["board"] == nil {
		t.Fatalf("snapshot = %v, want a 2048 board", first["snapshot"])
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Intent{Action: "left"}); err != nil {
		t.Fatal(err)
	}
	last := first
	for range 5 {
		last = read()
	}
	if last["tick"].(float64) <= first["tick"].(float64) {
		t.Error("session stopped streaming after a malformed message")
	}
}

func TestPlayUsesServerSeed(t *testing.T) {
	kv := score.NewMemoryKV()
	s := NewServer(Options{
		Book:    score.NewBook(kv, nil, nil),
		KV:      kv,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 120, Seed: 11},
	})
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	firstBoard := func() any {
		t.Helper()
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/play/2048"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()
		if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
			t.Fatal(err)
		}
		var f struct {
			Snapshot struct {
				Board any `json:"board"`
			} `json:"snapshot"`
		}
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		return f.Snapshot.Board
	}

	a, b := firstBoard(), firstBoard()
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if a == nil || string(ja) != string(jb) {
		t.Errorf("sessions with the server seed dealt different boards:\n%s\n%s", ja, jb)
	}
}

func TestPlayUnknownGame(t *testing.T) {
	s, _ := newTestServer(t, nil)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/play/tetris"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial to an unknown game should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("response = %v, want 404", resp)
	}
}
