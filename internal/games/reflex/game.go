// Package reflex implements a reaction timer: wait for the target, then hit
// it as fast as possible.
package reflex

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/miniplay/internal/config"
	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/registry"
)

// Phase is the round state.
type Phase int

const (
	PhaseIdle     Phase = iota // waiting for the player to start
	PhaseWaiting               // delay running, no target yet
	PhaseArmed                 // target visible, clock running
	PhaseResolved              // reaction recorded
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseArmed:
		return "armed"
	case PhaseResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the reflex timer.
type Game struct {
	cfg      config.ReflexConfig
	fixedCfg bool

	rng    *rand.Rand
	timers core.Timers
	dt     time.Duration
	tick   uint64

	phase     Phase
	delay     time.Duration // scheduled time from start to activation
	target    core.Rect     // playfield cells
	armedAt   time.Duration
	reaction  int // milliseconds
	attempts  int
	earlyTaps int

	screenW int
	screenH int

	outcome *core.Outcome
}

// New creates a reflex game that loads its config on every Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a reflex game with a fixed config.
func NewWithConfig(cfg config.ReflexConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("reflex", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "reflex"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Quick Reflex"
}

// Reset returns to Idle and discards a pending activation.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedCfg {
		loaded, err := config.LoadReflex(configPath)
		if err != nil {
			loaded = config.DefaultReflexConfig()
		}
		g.cfg = loaded
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.dt = cfg.TickDuration()
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.attempts = 0
	g.idle()
}

// Resize recenters the playfield; a pending activation keeps its schedule.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
}

func (g *Game) idle() {
	g.timers.Reset()
	g.phase = PhaseIdle
	g.delay = 0
	g.target = core.Rect{}
	g.armedAt = 0
	g.reaction = 0
	g.earlyTaps = 0
	g.outcome = nil
}

// Start moves Idle to Waiting and schedules activation after a delay uniform
// in [delay_min, delay_max) milliseconds.
func (g *Game) Start() bool {
	if g.phase != PhaseIdle {
		return false
	}

	minMS, maxMS := g.cfg.DelayMinMS, g.cfg.DelayMaxMS
	ms := minMS
	if maxMS > minMS {
		ms += g.rng.Intn(maxMS - minMS)
	}
	g.delay = time.Duration(ms) * time.Millisecond
	g.phase = PhaseWaiting
	g.attempts++
	g.timers.After(g.delay, g.arm)
	return true
}

// arm places the target uniformly inside the playfield and starts the clock.
func (g *Game) arm() {
	if g.phase != PhaseWaiting {
		return
	}
	pw, ph := g.cfg.Playfield.Width, g.cfg.Playfield.Height
	tw, th := g.cfg.Target.Width, g.cfg.Target.Height

	x, y := 0, 0
	if pw > tw {
		x = g.rng.Intn(pw - tw + 1)
	}
	if ph > th {
		y = g.rng.Intn(ph - th + 1)
	}
	g.target = core.NewRect(x, y, tw, th)
	g.armedAt = g.timers.Now()
	g.phase = PhaseArmed
}

// Hit registers a target hit. Only honored while Armed; returns whether it
// resolved the round.
func (g *Game) Hit() bool {
	if g.phase != PhaseArmed {
		if g.phase == PhaseWaiting {
			g.earlyTaps++
		}
		return false
	}

	g.reaction = int((g.timers.Now() - g.armedAt) / time.Millisecond)
	g.phase = PhaseResolved
	g.outcome = &core.Outcome{Metric: g.reaction, Moves: g.earlyTaps, Won: true}
	return true
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Activation lands before this tick's input so a press on the same tick
	// measures zero reaction rather than missing.
	g.timers.Advance(g.dt)

	key := in.Has(core.ActionJump) || in.Has(core.ActionConfirm)

	switch g.phase {
	case PhaseIdle:
		if key || (in.Tapped && g.inPlayfield(in.Tap)) {
			g.Start()
		}
	case PhaseWaiting:
		if key || in.Tapped {
			g.Hit()
		}
	case PhaseArmed:
		if key || (in.Tapped && g.onTarget(in.Tap)) {
			g.Hit()
		}
	case PhaseResolved:
		if key || in.Tapped {
			g.idle()
		}
	}

	res := core.StepResult{State: g.State()}
	if g.outcome != nil {
		res.Outcome = g.outcome
		g.outcome = nil
	}
	return res
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Target returns the target rectangle in playfield cells.
func (g *Game) Target() core.Rect {
	return g.target
}

// Reaction returns the last reaction time in milliseconds.
func (g *Game) Reaction() int {
	return g.reaction
}

// Rating describes a reaction time.
func Rating(ms int) string {
	switch {
	case ms < 200:
		return "Excellent! Lightning fast!"
	case ms < 300:
		return "Very good!"
	case ms < 400:
		return "Good"
	default:
		return "Keep training!"
	}
}

// State returns the current game state. A resolved round reports its
// reaction as the score.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.reaction,
		GameOver: g.phase == PhaseResolved,
		Won:      g.phase == PhaseResolved,
	}
}
