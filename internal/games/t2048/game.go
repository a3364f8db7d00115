// Package t2048 implements the 2048 sliding-tile puzzle.
package t2048

import (
	"math/rand"

	"github.com/vovakirdan/miniplay/internal/config"
	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the 2048 puzzle game.
type Game struct {
	cfg      config.T2048Config
	fixedCfg bool

	rng   *rand.Rand
	tick  uint64
	score int
	moves int
	board Board

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// New creates a 2048 game that loads its config on every Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a 2048 game with a fixed config.
func NewWithConfig(cfg config.T2048Config) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "2048"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedCfg {
		loaded, err := config.LoadT2048(configPath)
		if err != nil {
			loaded = config.DefaultT2048Config()
		}
		g.cfg = loaded
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.moves = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.won = false
	g.paused = false
	g.board = Board{}

	for range max(g.cfg.StartTiles, 0) {
		g.spawnTile()
	}

	g.checkScreenSize()
}

// Resize relayouts the board for a new screen size; the round continues.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
	g.checkScreenSize()
}

// spawnTile spawns a new tile (2 or 4) in a random empty cell.
// A full board gets nothing.
func (g *Game) spawnTile() {
	emptyCells := EmptyCells(g.board)
	if len(emptyCells) == 0 {
		return
	}

	cell := emptyCells[g.rng.Intn(len(emptyCells))]

	value := 2
	if g.rng.Float64() < g.cfg.Spawn4Prob {
		value = 4
	}

	g.board[cell.Y][cell.X] = value
}

// checkScreenSize pauses the game when the HUD and grid do not fit.
func (g *Game) checkScreenSize() {
	minW := BoardSize*cellWidth + 1
	minH := hudHeight + 1 + BoardSize*cellHeight + 1
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	var dir Direction
	switch {
	case in.Has(core.ActionUp):
		dir = DirUp
	case in.Has(core.ActionDown):
		dir = DirDown
	case in.Has(core.ActionLeft):
		dir = DirLeft
	case in.Has(core.ActionRight):
		dir = DirRight
	default:
		return core.StepResult{State: g.State()}
	}

	if !g.Move(dir) || !g.gameOver {
		return core.StepResult{State: g.State()}
	}

	return core.StepResult{
		State: g.State(),
		Outcome: &core.Outcome{
			Metric: g.score,
			Moves:  g.moves,
			Won:    g.won,
		},
	}
}

// Move slides the board in dir. An unchanged board is a no-op: no tile
// spawns and the move is not counted. Returns whether the board changed.
func (g *Game) Move(dir Direction) bool {
	if g.gameOver {
		return false
	}

	newBoard, scoreGained, changed := Slide(g.board, dir)
	if !changed {
		return false
	}

	g.board = newBoard
	g.score += scoreGained
	g.moves++
	g.spawnTile()

	if Reached(g.board, g.cfg.Target) {
		g.won = true
		g.gameOver = true
		return true
	}
	if IsGameOver(g.board) {
		g.gameOver = true
	}
	return true
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall,
	}
}
