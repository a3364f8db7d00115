package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StateReady       GameStateType = "ready"
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and
// remote rendering.
type Snapshot struct {
	Tick       uint64        `json:"tick"`
	GridWidth  int           `json:"grid_width"`
	GridHeight int           `json:"grid_height"`
	Score      int           `json:"score"`
	Body       []Point       `json:"body"`
	Dir        string        `json:"dir"`
	Food       *Point        `json:"food,omitempty"`
	State      GameStateType `json:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case !g.started:
		state = StateReady
	}

	var food *Point
	if g.hasFood {
		f := g.food
		food = &f
	}

	return Snapshot{
		Tick:       g.tick,
		GridWidth:  g.cfg.GridWidth,
		GridHeight: g.cfg.GridHeight,
		Score:      g.score,
		Body:       g.Body(),
		Dir:        g.direction.String(),
		Food:       food,
		State:      state,
	}
}

// Observe implements registry.Game.
func (g *Game) Observe() any {
	return g.Snapshot()
}
