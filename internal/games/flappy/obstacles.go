package flappy

import (
	"math/rand"

	"github.com/vovakirdan/miniplay/internal/config"
	"github.com/vovakirdan/miniplay/internal/core"
)

// Pipe is a vertical obstacle pair with a gap for the player to pass through.
// Positions are playfield units.
type Pipe struct {
	X      float64 `json:"x"`      // left edge
	GapY   float64 `json:"gap_y"`  // top of the gap
	Passed bool    `json:"passed"` // scored already
}

// TopRect returns the collision rectangle of the upper half.
func (p Pipe) TopRect(pipeWidth float64) core.RectF {
	return core.RectF{X: p.X, Y: 0, W: pipeWidth, H: p.GapY}
}

// BottomRect returns the collision rectangle of the lower half.
func (p Pipe) BottomRect(pipeWidth, gapHeight, height float64) core.RectF {
	bottomY := p.GapY + gapHeight
	return core.RectF{X: p.X, Y: bottomY, W: pipeWidth, H: height - bottomY}
}

// PipeManager handles spawning, movement and removal of pipes. Pipes are kept
// in spawn order, so the oldest is always at the front.
type PipeManager struct {
	pipes []Pipe
	rng   *rand.Rand
	cfg   config.FlappyConfig
}

// NewPipeManager creates a pipe manager drawing gap positions from rng.
func NewPipeManager(rng *rand.Rand, cfg config.FlappyConfig) *PipeManager {
	return &PipeManager{
		pipes: make([]Pipe, 0, 8),
		rng:   rng,
		cfg:   cfg,
	}
}

// Reset clears all pipes and swaps the random source.
func (pm *PipeManager) Reset(rng *rand.Rand) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rng
}

// Spawn adds a pipe at the right edge of the playfield. The gap top is
// uniform in [margin, height-gap-margin].
func (pm *PipeManager) Spawn() Pipe {
	obs := pm.cfg.Obstacles
	height := float64(pm.cfg.Playfield.Height)

	span := height - obs.GapHeight - 2*obs.Margin
	gapY := obs.Margin
	if span > 0 {
		gapY += pm.rng.Float64() * span
	}

	p := Pipe{X: float64(pm.cfg.Playfield.Width), GapY: gapY}
	pm.pipes = append(pm.pipes, p)
	return p
}

// Advance moves every pipe left by one tick of pipe speed, marks pipes whose
// leading edge reached playerX and drops pipes that left the playfield.
// Returns the number of pipes scored this tick.
func (pm *PipeManager) Advance(playerX float64) int {
	passed := 0
	for i := range pm.pipes {
		pm.pipes[i].X -= pm.cfg.Physics.PipeSpeed
		if !pm.pipes[i].Passed && pm.pipes[i].X <= playerX {
			pm.pipes[i].Passed = true
			passed++
		}
	}

	width := pm.cfg.Obstacles.PipeWidth
	drop := 0
	for drop < len(pm.pipes) && pm.pipes[drop].X+width < 0 {
		drop++
	}
	if drop > 0 {
		pm.pipes = append(pm.pipes[:0], pm.pipes[drop:]...)
	}

	return passed
}

// Pipes returns the current list of pipes.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests if the given box overlaps either half of any pipe.
func (pm *PipeManager) CheckCollision(player core.RectF) bool {
	obs := pm.cfg.Obstacles
	height := float64(pm.cfg.Playfield.Height)
	for _, p := range pm.pipes {
		if player.Intersects(p.TopRect(obs.PipeWidth)) ||
			player.Intersects(p.BottomRect(obs.PipeWidth, obs.GapHeight, height)) {
			return true
		}
	}
	return false
}
