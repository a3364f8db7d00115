package score

import (
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultRankedCap is the leaderboard length.
const DefaultRankedCap = 5

// Entry is one leaderboard row. Duration is whole seconds.
type Entry struct {
	Duration int       `json:"time"`
	Moves    int       `json:"moves"`
	Date     time.Time `json:"date"`
}

// Ranked is a capped list sorted ascending by duration, stored as JSON.
// Equal durations keep insertion order; moves are not a tiebreak.
type Ranked struct {
	kv     KV
	key    string
	cap    int
	logger *log.Logger
}

// NewRanked creates a ranked list with the given capacity.
func NewRanked(kv KV, key string, capacity int, logger *log.Logger) *Ranked {
	if capacity <= 0 {
		capacity = DefaultRankedCap
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Ranked{kv: kv, key: key, cap: capacity, logger: logger}
}

// Load returns the stored list, or nil when absent or malformed.
func (r *Ranked) Load() []Entry {
	raw, found, err := r.kv.Get(r.key)
	if err != nil {
		r.logger.Warn("cannot read leaderboard", "key", r.key, "error", err)
		return nil
	}
	if !found {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.logger.Warn("ignoring malformed leaderboard", "key", r.key, "error", err)
		return nil
	}
	return entries
}

// Insert adds e, re-sorts, trims to capacity and persists.
// It returns the 1-based rank of e, or 0 if it fell off the list.
func (r *Ranked) Insert(e Entry) (rank int, err error) {
	entries := r.Load()
	pos := 0
	for _, existing := range entries {
		if existing.Duration <= e.Duration {
			pos++
		}
	}

	entries = append(entries, e)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Duration < entries[j].Duration
	})
	if len(entries) > r.cap {
		entries = entries[:r.cap]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return 0, err
	}
	if err := r.kv.Set(r.key, string(data)); err != nil {
		return 0, err
	}

	if pos >= r.cap {
		return 0, nil
	}
	return pos + 1, nil
}
