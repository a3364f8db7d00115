// Package memory implements the memory match card game: flip two cards at a
// time and clear the board by finding every pair.
package memory

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/miniplay/internal/config"
	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/registry"
)

// Cols is the number of card columns on the board.
const Cols = 4

// Effect is the immediate result of a reveal.
type Effect int

const (
	Ignored    Effect = iota // not applied
	Revealed                 // first card of a pair turned over
	Matched                  // second card matches; resolution pending
	Mismatched               // second card differs; resolution pending
)

func (e Effect) String() string {
	switch e {
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return "ignored"
	}
}

// Card is one card of the deck. Two cards share each Key.
type Card struct {
	Key      int
	Revealed bool
	Matched  bool
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the memory match game.
type Game struct {
	cfg      config.MemoryConfig
	fixedCfg bool

	rng    *rand.Rand
	timers core.Timers
	dt     time.Duration
	tick   uint64

	cards   []Card
	pending []int // face-up cards awaiting resolution, at most two
	cursor  int
	moves   int
	seconds int
	matched int // pairs found

	started   bool
	completed bool
	paused    bool

	screenW int
	screenH int

	// outcome is set when the last pair resolves and handed out by the next Step.
	outcome *core.Outcome
}

// New creates a memory game that loads its config on every Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a memory game with a fixed config.
func NewWithConfig(cfg config.MemoryConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("memory", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "memory"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Memory Match"
}

// Reset returns to an idle round. Resolutions and timer ticks scheduled by
// the previous round are discarded.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedCfg {
		loaded, err := config.LoadMemory(configPath)
		if err != nil {
			loaded = config.DefaultMemoryConfig()
		}
		g.cfg = loaded
	}
	if g.cfg.Pairs <= 0 {
		g.cfg.Pairs = config.DefaultMemoryConfig().Pairs
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.timers.Reset()
	g.dt = cfg.TickDuration()
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.cards = nil
	g.pending = nil
	g.cursor = 0
	g.moves = 0
	g.seconds = 0
	g.matched = 0
	g.started = false
	g.completed = false
	g.paused = false
	g.outcome = nil
}

// Resize recenters the grid on the new screen.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
}

// Start deals a fresh shuffled deck and starts the round clock.
// A round already in progress is left alone.
func (g *Game) Start() {
	if g.started && !g.completed {
		return
	}
	if g.completed {
		g.timers.Reset()
	}

	g.cards = g.deal()
	g.pending = nil
	g.cursor = 0
	g.moves = 0
	g.seconds = 0
	g.matched = 0
	g.started = true
	g.completed = false
	g.outcome = nil

	if g.cfg.TimerEnabled {
		g.scheduleSecond()
	}
}

// deal builds the pairs and Fisher-Yates shuffles them with the round RNG.
func (g *Game) deal() []Card {
	cards := make([]Card, 0, g.cfg.Pairs*2)
	for key := range g.cfg.Pairs {
		cards = append(cards, Card{Key: key}, Card{Key: key})
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards
}

func (g *Game) scheduleSecond() {
	g.timers.After(time.Second, func() {
		if g.completed {
			return
		}
		g.seconds++
		g.scheduleSecond()
	})
}

// Reveal turns card index face up. It is ignored before the round starts,
// while two cards are pending, for out-of-range indices and for cards
// already face up.
func (g *Game) Reveal(index int) Effect {
	if !g.started || g.completed || g.paused || len(g.pending) >= 2 {
		return Ignored
	}
	if index < 0 || index >= len(g.cards) {
		return Ignored
	}
	card := &g.cards[index]
	if card.Revealed || card.Matched {
		return Ignored
	}

	card.Revealed = true
	g.pending = append(g.pending, index)
	if len(g.pending) == 1 {
		return Revealed
	}

	g.moves++
	a, b := g.pending[0], g.pending[1]
	if g.cards[a].Key == g.cards[b].Key {
		g.timers.After(time.Duration(g.cfg.MatchDelayMS)*time.Millisecond, func() {
			g.resolveMatch(a, b)
		})
		return Matched
	}

	g.timers.After(time.Duration(g.cfg.MismatchDelayMS)*time.Millisecond, func() {
		g.resolveMismatch(a, b)
	})
	return Mismatched
}

func (g *Game) resolveMatch(a, b int) {
	g.cards[a].Matched = true
	g.cards[b].Matched = true
	g.pending = nil
	g.matched++

	if g.matched == g.cfg.Pairs {
		g.completed = true
		g.outcome = &core.Outcome{Metric: g.seconds, Moves: g.moves, Won: true}
	}
}

func (g *Game) resolveMismatch(a, b int) {
	g.cards[a].Revealed = false
	g.cards[b].Revealed = false
	g.pending = nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionPause) && g.started && !g.completed {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if !g.started || g.completed {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) || in.Tapped {
			g.Start()
		}
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	switch {
	case in.Tapped:
		if idx, ok := g.cardAt(in.Tap); ok {
			g.cursor = idx
			g.Reveal(idx)
		}
	case in.Has(core.ActionJump) || in.Has(core.ActionConfirm):
		g.Reveal(g.cursor)
	}

	g.timers.Advance(g.dt)

	res := core.StepResult{State: g.State()}
	if g.outcome != nil {
		res.Outcome = g.outcome
		g.outcome = nil
	}
	return res
}

// moveCursor moves the keyboard cursor, clamped to the board.
func (g *Game) moveCursor(in core.InputFrame) {
	if len(g.cards) == 0 {
		return
	}
	rows := (len(g.cards) + Cols - 1) / Cols
	col, row := g.cursor%Cols, g.cursor/Cols

	switch {
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	}

	col = core.Clamp(col, 0, Cols-1)
	row = core.Clamp(row, 0, rows-1)
	g.cursor = core.Clamp(row*Cols+col, 0, len(g.cards)-1)
}

// Cards returns a copy of the deck.
func (g *Game) Cards() []Card {
	return append([]Card(nil), g.cards...)
}

// Moves returns the number of completed pair attempts.
func (g *Game) Moves() int {
	return g.moves
}

// Seconds returns the whole seconds counted while the round is active.
func (g *Game) Seconds() int {
	return g.seconds
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.matched,
		GameOver: g.completed,
		Won:      g.completed,
		Paused:   g.paused,
	}
}
