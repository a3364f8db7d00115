package flappy

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/miniplay/internal/config"
	"github.com/vovakirdan/miniplay/internal/core"
)

const midY = 280

func newGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultFlappyConfig())
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	})
	return g
}

func jump() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

// hover steps n ticks while pinning the player mid-air, so only pipes move.
func hover(g *Game, n int) {
	for range n {
		g.playerY = midY
		g.playerVel = 0
		g.Step(core.NewInputFrame())
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newGame(12345)
		for i := range 400 {
			in := core.NewInputFrame()
			if i%30 == 0 {
				in.Set(core.ActionJump)
			}
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Score != s2.Score || s1.Tick != s2.Tick || s1.PlayerY != s2.PlayerY {
		t.Errorf("Determinism failed: %+v vs %+v", s1, s2)
	}
	if len(s1.Pipes) != len(s2.Pipes) {
		t.Fatalf("pipe counts differ: %d vs %d", len(s1.Pipes), len(s2.Pipes))
	}
	for i := range s1.Pipes {
		if s1.Pipes[i] != s2.Pipes[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, s1.Pipes[i], s2.Pipes[i])
		}
	}
}

func TestIdleUntilFirstJump(t *testing.T) {
	g := newGame(1)
	y := g.playerY

	for range 120 {
		g.Step(core.NewInputFrame())
	}

	if g.playerY != y || g.tickCount != 0 || len(g.pipes.Pipes()) != 0 {
		t.Errorf("idle round moved: y=%f ticks=%d pipes=%d", g.playerY, g.tickCount, len(g.pipes.Pipes()))
	}
	if g.State().GameOver {
		t.Error("idle round should not end")
	}
}

func TestJumpPhysics(t *testing.T) {
	g := newGame(1)
	initialY := g.playerY

	g.Step(jump())

	if !g.started {
		t.Fatal("first jump should start the round")
	}
	if g.playerVel != -9.5 {
		t.Errorf("velocity = %f, want -9.5", g.playerVel)
	}
	if g.playerY != initialY-9.5 {
		t.Errorf("y = %f, want %f", g.playerY, initialY-9.5)
	}

	// A jump overrides the current velocity rather than adding to it.
	g.playerVel = 7
	g.Step(jump())
	if g.playerVel != -9.5 {
		t.Errorf("velocity after second jump = %f, want -9.5", g.playerVel)
	}
}

func TestGameGravity(t *testing.T) {
	g := newGame(1)
	g.Step(jump())

	g.playerY = 200
	g.playerVel = 0
	g.Step(core.NewInputFrame())

	if g.playerVel != 0.5 || g.playerY != 200.5 {
		t.Errorf("after one tick y=%f vel=%f, want 200.5 and 0.5", g.playerY, g.playerVel)
	}
}

func TestPipeSpawnInterval(t *testing.T) {
	g := newGame(7)
	g.Step(jump())

	// 1500ms of simulated time elapses during the 91st tick.
	hover(g, 88)
	if n := len(g.pipes.Pipes()); n != 0 {
		t.Fatalf("pipes before the first interval = %d, want 0", n)
	}

	hover(g, 2)
	pipes := g.pipes.Pipes()
	if len(pipes) != 1 {
		t.Fatalf("pipes after the first interval = %d, want 1", len(pipes))
	}
	if pipes[0].X != 400 {
		t.Errorf("new pipe X = %f, want playfield width 400", pipes[0].X)
	}

	// The spawn re-arms itself; clear the first pipe so it cannot hit the player.
	g.pipes.pipes = g.pipes.pipes[:0]
	hover(g, 90)
	if n := len(g.pipes.Pipes()); n != 0 {
		t.Fatalf("second pipe spawned early")
	}
	hover(g, 1)
	if n := len(g.pipes.Pipes()); n != 1 {
		t.Errorf("pipes after the second interval = %d, want 1", n)
	}
}

func TestRestartDiscardsPendingSpawn(t *testing.T) {
	g := newGame(3)
	g.Step(jump())
	hover(g, 60)

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
	g.Step(jump())
	hover(g, 60)

	if n := len(g.pipes.Pipes()); n != 0 {
		t.Errorf("spawn from the previous round leaked: %d pipes", n)
	}
}

func TestGapBounds(t *testing.T) {
	g := newGame(99)
	cfg := config.DefaultFlappyConfig()
	minY := cfg.Obstacles.Margin
	maxY := float64(cfg.Playfield.Height) - cfg.Obstacles.GapHeight - cfg.Obstacles.Margin

	for range 500 {
		p := g.pipes.Spawn()
		if p.GapY < minY || p.GapY > maxY {
			t.Fatalf("gap top %f outside [%f, %f]", p.GapY, minY, maxY)
		}
	}
}

func TestScoringOncePerPipe(t *testing.T) {
	g := newGame(5)
	g.Step(jump())

	// Gap 250..400 surrounds the player box 280..320.
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 103, GapY: 250})
	hover(g, 1)
	if g.score != 1 {
		t.Fatalf("score = %d, want 1 once the leading edge reaches the player", g.score)
	}

	hover(g, 30)
	if g.score != 1 {
		t.Errorf("score = %d, want 1; a pipe scores only once", g.score)
	}
	if g.State().GameOver {
		t.Error("passing through the gap should not be fatal")
	}
}

func TestPipesDroppedOffscreen(t *testing.T) {
	g := newGame(5)
	g.pipes.pipes = append(g.pipes.pipes,
		Pipe{X: -58, GapY: 100, Passed: true},
		Pipe{X: 300, GapY: 100},
	)

	g.pipes.Advance(100)

	pipes := g.pipes.Pipes()
	if len(pipes) != 1 || pipes[0].X != 297 {
		t.Errorf("pipes = %+v, want only the on-screen pipe", pipes)
	}
}

func TestBoundsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		vel  float64
	}{
		{"ceiling", 0.4, -1.5},
		{"floor", 559, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(1)
			g.Step(jump())
			g.playerY = tc.y
			g.playerVel = tc.vel

			res := g.Step(core.NewInputFrame())
			if !res.State.GameOver {
				t.Fatalf("y=%f should be fatal", g.playerY)
			}
			if res.Outcome == nil {
				t.Error("Outcome should be set on the fatal tick")
			}
		})
	}
}

func TestPipeCollision(t *testing.T) {
	g := newGame(1)
	g.Step(jump())

	// Gap 50..200 leaves the player at 280 inside the lower half.
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 110, GapY: 50})
	g.playerY = midY
	g.playerVel = 0

	result := g.Step(core.NewInputFrame())
	if !result.State.GameOver {
		t.Error("Game should be over when player hits pipe")
	}
}

func TestInputIgnoredAfterDeath(t *testing.T) {
	g := newGame(1)
	g.Step(jump())
	g.playerY = 600
	g.Step(core.NewInputFrame())

	y := g.playerY
	g.Step(jump())
	if g.playerY != y {
		t.Error("jump after death should be ignored")
	}
}

func TestGamePause(t *testing.T) {
	g := newGame(1)
	g.Step(jump())

	pauseInput := core.NewInputFrame()
	pauseInput.Set(core.ActionPause)
	g.Step(pauseInput)

	if !g.paused {
		t.Fatal("Game should be paused")
	}

	yBefore := g.playerY
	g.Step(core.NewInputFrame())
	if g.playerY != yBefore {
		t.Errorf("Player position should not change while paused, was %f, now %f", yBefore, g.playerY)
	}

	g.Step(pauseInput)
	if g.paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameRender(t *testing.T) {
	g := newGame(1)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if screen.Get(0, 23) != GroundChar {
		t.Errorf("Ground should be drawn at bottom, got %q", screen.Get(0, 23))
	}
	if !strings.Contains(screen.String(), "FLAPPY CUBE") {
		t.Error("idle round should show the start panel")
	}

	v := g.viewport(screen)
	if math.Abs(v.sx-v.sy*2) > 0.05 {
		t.Errorf("viewport scale sx=%f sy=%f should keep the playfield aspect", v.sx, v.sy)
	}
}
