package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/miniplay/internal/catalog"
	"github.com/vovakirdan/miniplay/internal/profile"
	"github.com/vovakirdan/miniplay/internal/registry"
	"github.com/vovakirdan/miniplay/internal/score"
)

const (
	recentRounds   = 20
	maxProfileBody = 4 << 10
)

// gameView is a catalog entry as served by the API.
type gameView struct {
	catalog.Entry
	Playable bool   `json:"playable"`
	Best     *int   `json:"best,omitempty"`
	Unit     string `json:"unit"`
}

func (s *Server) view(e catalog.Entry) gameView {
	v := gameView{
		Entry:    e,
		Playable: registry.Exists(e.ID),
		Unit:     score.Unit(e.ID),
	}
	if best, ok := s.book.Best(e.ID); ok {
		v.Best = &best
	}
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"games":  len(registry.List()),
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// handleListGames serves GET /api/games?category=&q=.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries := catalog.Search(catalog.Filter(q.Get("category")), q.Get("q"))

	out := make([]gameView, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.view(e))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	e, ok := catalog.Lookup(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	s.writeJSON(w, http.StatusOK, s.view(e))
}

type roundView struct {
	ID     string    `json:"id"`
	Metric int       `json:"metric"`
	Moves  int       `json:"moves"`
	Won    bool      `json:"won"`
	At     time.Time `json:"at"`
}

type scoresView struct {
	Game        string        `json:"game"`
	Unit        string        `json:"unit"`
	Best        *int          `json:"best,omitempty"`
	Leaderboard []score.Entry `json:"leaderboard,omitempty"`
	Recent      []roundView   `json:"recent"`
}

// handleScores serves GET /api/scores/{id}.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := catalog.Lookup(id); !ok {
		s.writeError(w, http.StatusNotFound, "unknown game")
		return
	}

	out := scoresView{Game: id, Unit: score.Unit(id), Recent: []roundView{}}
	if best, ok := s.book.Best(id); ok {
		out.Best = &best
	}
	if id == "memory" {
		out.Leaderboard = s.book.Leaderboard()
	}

	if s.history != nil {
		rounds, err := s.history.RecentRounds(id, recentRounds)
		if err != nil {
			s.logger.Warn("cannot read round history", "game", id, "error", err)
		}
		for _, rd := range rounds {
			out.Recent = append(out.Recent, roundView{
				ID:     rd.ID,
				Metric: rd.Metric,
				Moves:  rd.Moves,
				Won:    rd.Won,
				At:     rd.CreatedAt,
			})
		}
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, profile.Load(s.kv))
}

// handlePutProfile replaces the profile. Empty or unknown fields fall back
// to the defaults.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProfileBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid profile: "+err.Error())
		return
	}

	stored, err := profile.Save(s.kv, p)
	if err != nil {
		s.logger.Error("cannot save profile", "error", err)
		s.writeError(w, http.StatusInternalServerError, "cannot save profile")
		return
	}
	s.writeJSON(w, http.StatusOK, stored)
}
