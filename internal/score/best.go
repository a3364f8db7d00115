package score

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Direction says which way a metric improves.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Better reports whether candidate improves on current.
func (d Direction) Better(candidate, current int) bool {
	if d == LowerIsBetter {
		return candidate < current
	}
	return candidate > current
}

// Tracker persists a single best value under one key.
type Tracker struct {
	kv        KV
	key       string
	direction Direction
	logger    *log.Logger
}

// NewTracker creates a tracker. A nil logger discards warnings.
func NewTracker(kv KV, key string, dir Direction, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{kv: kv, key: key, direction: dir, logger: logger}
}

// Direction returns which way the metric improves.
func (t *Tracker) Direction() Direction {
	return t.direction
}

// Load returns the stored best. Absent, unreadable and malformed records all
// mean there is no prior best; read problems are logged, never returned.
func (t *Tracker) Load() (best int, ok bool) {
	raw, found, err := t.kv.Get(t.key)
	if err != nil {
		t.logger.Warn("cannot read best score", "key", t.key, "error", err)
		return 0, false
	}
	if !found {
		return 0, false
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		t.logger.Warn("ignoring malformed best score", "key", t.key, "value", raw)
		return 0, false
	}
	return v, true
}

// Submit records value if it improves on the stored best.
// For higher-is-better metrics, zero never counts as an improvement over
// "no record", matching a fresh best of 0.
func (t *Tracker) Submit(value int) (improved bool, err error) {
	if value < 0 {
		return false, nil
	}

	best, ok := t.Load()
	switch {
	case !ok && t.direction == HigherIsBetter:
		improved = value > 0
	case !ok:
		improved = true
	default:
		improved = t.direction.Better(value, best)
	}
	if !improved {
		return false, nil
	}

	if err := t.kv.Set(t.key, strconv.Itoa(value)); err != nil {
		return false, err
	}
	return true, nil
}
