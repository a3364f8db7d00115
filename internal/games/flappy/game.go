// Package flappy implements a Flappy Bird-style game.
// The player controls a box that must navigate through gaps in vertical pipes.
// Physics runs in playfield units; the renderer scales them to terminal cells.
package flappy

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/miniplay/internal/config"
	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar    = '■'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg      config.FlappyConfig
	fixedCfg bool

	playerY   float64      // Player vertical position (top of box)
	playerVel float64      // Player vertical velocity, units per tick
	pipes     *PipeManager // Obstacle manager
	timers    core.Timers  // Spawn schedule
	dt        time.Duration
	score     int
	started   bool // first jump received
	gameOver  bool
	paused    bool
	runtime   core.RuntimeConfig
	tickCount int // Ticks since the round started
}

// New creates a Flappy game that loads its config on every Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Flappy game with a fixed config.
func NewWithConfig(cfg config.FlappyConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Cube"
}

// Reset initializes or restarts the game. Spawns scheduled by the previous
// round never fire.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedCfg {
		loaded, err := config.LoadFlappy(configPath)
		if err != nil {
			loaded = config.DefaultFlappyConfig()
		}
		g.cfg = loaded
	}

	g.runtime = cfg
	g.dt = cfg.TickDuration()
	g.timers.Reset()
	g.playerY = (float64(g.cfg.Playfield.Height) - g.cfg.Player.Height) / 2
	g.playerVel = 0
	g.score = 0
	g.started = false
	g.gameOver = false
	g.paused = false
	g.tickCount = 0

	rng := rand.New(rand.NewSource(cfg.Seed))
	if g.pipes == nil {
		g.pipes = NewPipeManager(rng, g.cfg)
	} else {
		g.pipes.cfg = g.cfg
		g.pipes.Reset(rng)
	}
}

// Resize records the new screen size without touching the round.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
}

// scheduleSpawn arms the next pipe spawn one interval from now.
func (g *Game) scheduleSpawn() {
	interval := time.Duration(g.cfg.Obstacles.SpawnIntervalMS) * time.Millisecond
	if interval <= 0 {
		return
	}
	g.timers.After(interval, func() {
		g.pipes.Spawn()
		g.scheduleSpawn()
	})
}

// Jump applies the upward impulse, starting the round if it is idle.
// Ignored after death.
func (g *Game) Jump() {
	if g.gameOver {
		return
	}
	if !g.started {
		g.started = true
		g.scheduleSpawn()
	}
	g.playerVel = g.cfg.Physics.JumpImpulse
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.started {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) || in.Has(core.ActionUp) || in.Has(core.ActionConfirm) || in.Tapped {
		g.Jump()
	}
	if !g.started {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	g.playerVel += g.cfg.Physics.Gravity
	g.playerY += g.playerVel

	g.score += g.pipes.Advance(g.cfg.Player.X)
	g.timers.Advance(g.dt)

	if g.collided() {
		g.gameOver = true
		return core.StepResult{
			State:   g.State(),
			Outcome: &core.Outcome{Metric: g.score, Moves: g.tickCount},
		}
	}

	return core.StepResult{State: g.State()}
}

// collided reports whether the player left the playfield or hit a pipe.
func (g *Game) collided() bool {
	height := float64(g.cfg.Playfield.Height)
	if g.playerY <= 0 || g.playerY+g.cfg.Player.Height >= height {
		return true
	}
	return g.pipes.CheckCollision(g.playerRect())
}

// playerRect returns the player's collision box.
func (g *Game) playerRect() core.RectF {
	return core.RectF{
		X: g.cfg.Player.X,
		Y: g.playerY,
		W: g.cfg.Player.Width,
		H: g.cfg.Player.Height,
	}
}

// viewport maps playfield units onto a screen region.
type viewport struct {
	originX, originY int
	width, height    int
	sx, sy           float64 // cells per unit
}

func (g *Game) viewport(dst *core.Screen) viewport {
	// Row 0 is the HUD and the last row is ground.
	h := max(dst.Height()-2, 1)
	// Terminal cells are about twice as tall as wide.
	w := int(math.Round(float64(h) * float64(g.cfg.Playfield.Width) / float64(g.cfg.Playfield.Height) * 2))
	w = core.Clamp(w, 1, dst.Width())
	return viewport{
		originX: (dst.Width() - w) / 2,
		originY: 1,
		width:   w,
		height:  h,
		sx:      float64(w) / float64(g.cfg.Playfield.Width),
		sy:      float64(h) / float64(g.cfg.Playfield.Height),
	}
}

// fill paints the playfield box r using the viewport scale.
func (v viewport) fill(dst *core.Screen, r core.RectF, ch rune, c core.Color) {
	x0 := max(int(math.Floor(r.X*v.sx)), 0)
	x1 := min(int(math.Ceil(r.Right()*v.sx)), v.width)
	y0 := max(int(math.Floor(r.Y*v.sy)), 0)
	y1 := min(int(math.Ceil(r.Bottom()*v.sy)), v.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColor(v.originX+x, v.originY+y, ch, c)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := g.viewport(dst)

	dst.DrawVLine(v.originX-1, v.originY, v.height, '│')
	dst.DrawVLine(v.originX+v.width, v.originY, v.height, '│')
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar)

	obs := g.cfg.Obstacles
	height := float64(g.cfg.Playfield.Height)
	for _, p := range g.pipes.Pipes() {
		top := p.TopRect(obs.PipeWidth)
		bottom := p.BottomRect(obs.PipeWidth, obs.GapHeight, height)
		v.fill(dst, top, PipeChar, core.ColorGreen)
		v.fill(dst, bottom, PipeChar, core.ColorGreen)
		v.fill(dst, core.RectF{X: top.X, Y: top.Bottom() - 1/v.sy, W: top.W, H: 1 / v.sy}, PipeCapTop, core.ColorBrightGreen)
		v.fill(dst, core.RectF{X: bottom.X, Y: bottom.Y, W: bottom.W, H: 1 / v.sy}, PipeCapBottom, core.ColorBrightGreen)
	}

	v.fill(dst, g.playerRect(), PlayerChar, core.ColorBrightYellow)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))

	switch {
	case g.gameOver:
		dst.DrawPanel("GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.paused:
		dst.DrawPanel("PAUSED", "Press P to resume")
	case !g.started:
		dst.DrawPanel("FLAPPY CUBE", "Press Space to flap")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}
