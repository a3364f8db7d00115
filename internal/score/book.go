package score

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/storage"
)

// History receives every finished round. *storage.Store implements it.
type History interface {
	SaveRound(r storage.Round) (string, error)
}

// Result reports what recording an outcome changed.
type Result struct {
	Improved bool   // the stored best (or leaderboard head) changed
	Rank     int    // leaderboard rank for ranked games, 0 otherwise
	RoundID  string // history row ID, empty without history
}

// Book routes finished rounds to each game's record.
// It is safe for concurrent use by several sessions.
type Book struct {
	mu       sync.Mutex // serializes read-compare-write of records
	trackers map[string]*Tracker
	memory   *Ranked
	history  History
	logger   *log.Logger

	// Now stamps leaderboard entries; tests may replace it.
	Now func() time.Time
}

// NewBook wires the standard records for all games over kv.
// history may be nil.
func NewBook(kv KV, history History, logger *log.Logger) *Book {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Book{
		trackers: map[string]*Tracker{
			"2048":   NewTracker(kv, Key2048, HigherIsBetter, logger),
			"flappy": NewTracker(kv, KeyFlappy, HigherIsBetter, logger),
			"snake":  NewTracker(kv, KeySnake, HigherIsBetter, logger),
			"reflex": NewTracker(kv, KeyReflex, LowerIsBetter, logger),
		},
		memory:  NewRanked(kv, KeyMemory, DefaultRankedCap, logger),
		history: history,
		logger:  logger,
		Now:     time.Now,
	}
}

// Record stores a finished round of gameID.
// History failures are logged; record failures are returned.
func (b *Book) Record(gameID string, o core.Outcome) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var res Result

	if b.history != nil {
		id, err := b.history.SaveRound(storage.Round{
			GameID: gameID,
			Metric: o.Metric,
			Moves:  o.Moves,
			Won:    o.Won,
		})
		if err != nil {
			b.logger.Warn("cannot save round history", "game", gameID, "error", err)
		}
		res.RoundID = id
	}

	if gameID == "memory" {
		rank, err := b.memory.Insert(Entry{Duration: o.Metric, Moves: o.Moves, Date: b.Now()})
		if err != nil {
			return res, err
		}
		res.Rank = rank
		res.Improved = rank == 1
		return res, nil
	}

	t, ok := b.trackers[gameID]
	if !ok {
		return res, nil
	}
	improved, err := t.Submit(o.Metric)
	if err != nil {
		return res, err
	}
	res.Improved = improved
	if improved {
		b.logger.Info("new best", "game", gameID, "value", o.Metric)
	}
	return res, nil
}

// Best returns the stored best for gameID. For memory match it is the
// shortest recorded duration.
func (b *Book) Best(gameID string) (int, bool) {
	if gameID == "memory" {
		entries := b.memory.Load()
		if len(entries) == 0 {
			return 0, false
		}
		return entries[0].Duration, true
	}
	if t, ok := b.trackers[gameID]; ok {
		return t.Load()
	}
	return 0, false
}

// Direction reports which way the record of gameID improves. Memory match
// ranks shorter durations first.
func (b *Book) Direction(gameID string) Direction {
	if t, ok := b.trackers[gameID]; ok {
		return t.Direction()
	}
	if gameID == "memory" {
		return LowerIsBetter
	}
	return HigherIsBetter
}

// Leaderboard returns the memory match ranked list.
func (b *Book) Leaderboard() []Entry {
	return b.memory.Load()
}

// Unit names the metric of gameID for display.
func Unit(gameID string) string {
	switch gameID {
	case "reflex":
		return "ms"
	case "memory":
		return "s"
	default:
		return "pts"
	}
}
