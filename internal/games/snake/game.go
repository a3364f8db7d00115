// Package snake implements the classic snake game on a fixed walled grid.
package snake

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/miniplay/internal/config"
	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point is a grid cell.
type Point = core.Point

// Game implements the Snake game.
type Game struct {
	cfg      config.SnakeConfig
	fixedCfg bool

	rng      *rand.Rand
	tick     uint64
	score    int
	interval time.Duration
	dt       time.Duration
	elapsed  time.Duration // simulated time since the last move

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move

	food    Point
	hasFood bool

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	started  bool
	gameOver bool
	paused   bool
	tooSmall bool
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a Snake game that loads its config on every Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Snake game with a fixed config.
func NewWithConfig(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedCfg {
		loaded, err := config.LoadSnake(configPath)
		if err != nil {
			loaded = config.DefaultSnakeConfig()
		}
		g.cfg = loaded
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.dt = cfg.TickDuration()
	g.interval = time.Duration(g.cfg.MoveIntervalMS) * time.Millisecond
	g.elapsed = 0
	g.started = false
	g.gameOver = false
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.initSnake()
	g.spawnFood()
}

// Resize records the screen size and pauses while the grid does not fit.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
	g.tooSmall = width < g.cfg.GridWidth*cellWidth+2 || height < g.cfg.GridHeight+hudHeight+2
}

// initSnake places the three-segment snake heading right.
func (g *Game) initSnake() {
	cx, cy := g.cfg.GridWidth/2, g.cfg.GridHeight/2
	g.snake = []Point{
		{X: cx, Y: cy}, // Head
		{X: cx - 1, Y: cy},
		{X: cx - 2, Y: cy},
	}
	g.direction = DirRight
	g.nextDir = DirRight
}

// spawnFood places food on a random cell not covered by the snake.
// A board the snake fills completely gets no food.
func (g *Game) spawnFood() {
	if len(g.snake) >= g.cfg.GridWidth*g.cfg.GridHeight {
		g.hasFood = false
		return
	}

	for {
		p := Point{X: g.rng.Intn(g.cfg.GridWidth), Y: g.rng.Intn(g.cfg.GridHeight)}
		if !g.isSnakeAt(p) {
			g.food = p
			g.hasFood = true
			return
		}
	}
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionPause) && g.started && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)
	if !g.started {
		return core.StepResult{State: g.State()}
	}

	g.elapsed += g.dt
	for g.interval > 0 && g.elapsed >= g.interval {
		g.elapsed -= g.interval
		if _, over := g.Tick(); over {
			return core.StepResult{
				State:   g.State(),
				Outcome: &core.Outcome{Metric: g.score, Moves: len(g.snake)},
			}
		}
	}

	return core.StepResult{State: g.State()}
}

// processInput buffers a direction change and starts the round on the
// first steering or confirm input.
func (g *Game) processInput(input core.InputFrame) {
	newDir := g.nextDir
	steered := true

	switch {
	case input.Has(core.ActionUp):
		newDir = DirUp
	case input.Has(core.ActionDown):
		newDir = DirDown
	case input.Has(core.ActionLeft):
		newDir = DirLeft
	case input.Has(core.ActionRight):
		newDir = DirRight
	default:
		steered = false
	}

	if steered || input.Has(core.ActionConfirm) || input.Has(core.ActionJump) {
		g.started = true
	}

	g.Turn(newDir)
}

// Turn buffers d for the next move unless it reverses the current direction.
func (g *Game) Turn(d Direction) bool {
	if isOpposite(d, g.direction) {
		return false
	}
	g.nextDir = d
	return true
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// Tick moves the snake one cell in the buffered direction. Leaving the grid
// or entering any current segment, tail included, ends the round.
func (g *Game) Tick() (ate, over bool) {
	if g.gameOver || len(g.snake) == 0 {
		return false, g.gameOver
	}

	g.direction = g.nextDir

	head := g.snake[0]
	newHead := head
	switch g.direction {
	case DirUp:
		newHead.Y--
	case DirDown:
		newHead.Y++
	case DirLeft:
		newHead.X--
	case DirRight:
		newHead.X++
	}

	if newHead.X < 0 || newHead.X >= g.cfg.GridWidth ||
		newHead.Y < 0 || newHead.Y >= g.cfg.GridHeight || g.isSnakeAt(newHead) {
		g.gameOver = true
		return false, true
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if g.hasFood && newHead == g.food {
		g.score += g.cfg.FoodPoints
		g.spawnFood()
		return true, false
	}

	g.snake = g.snake[:len(g.snake)-1]
	return false, false
}

// Body returns a copy of the snake, head first.
func (g *Game) Body() []Point {
	return append([]Point(nil), g.snake...)
}

// Food returns the food cell and whether food is on the board.
func (g *Game) Food() (Point, bool) {
	return g.food, g.hasFood
}

const (
	hudHeight = 2
	cellWidth = 2 // terminal cells per grid column
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		dst.DrawPanel("Window too small", "Resize to continue")
		return
	}

	boardW := g.cfg.GridWidth*cellWidth + 2
	boardH := g.cfg.GridHeight + 2
	originX := (dst.Width() - boardW) / 2
	originY := hudHeight
	dst.DrawBoxColor(core.NewRect(originX, originY, boardW, boardH), core.ColorGray)

	cell := func(p Point, r rune, c core.Color) {
		x := originX + 1 + p.X*cellWidth
		y := originY + 1 + p.Y
		for i := range cellWidth {
			dst.SetColor(x+i, y, r, c)
		}
	}

	if g.hasFood {
		cell(g.food, '●', core.ColorBrightRed)
	}
	for i, seg := range g.snake {
		if i == 0 {
			cell(seg, '█', core.ColorBrightGreen)
		} else {
			cell(seg, '▓', core.ColorGreen)
		}
	}

	switch {
	case g.gameOver:
		dst.DrawPanel("Game Over", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.paused:
		dst.DrawPanel("Paused", "Press P to continue")
	case !g.started:
		dst.DrawPanel("SNAKE", "Press an arrow key to start")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Snake  Score: %d  Length: %d", g.score, len(g.snake)))
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d\n", g.tick, g.score)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", len(g.snake), g.direction)
	if len(g.snake) > 0 {
		fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", g.snake[0].X, g.snake[0].Y, g.food.X, g.food.Y)
	}
	fmt.Fprintf(&b, "GameOver: %v, Paused: %v\n", g.gameOver, g.paused)
	return b.String()
}
