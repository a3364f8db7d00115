package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and
// remote rendering.
type Snapshot struct {
	Tick    uint64                    `json:"tick"`
	Target  int                       `json:"target"`
	Score   int                       `json:"score"`
	Moves   int                       `json:"moves"`
	Board   [BoardSize][BoardSize]int `json:"board"`
	MaxTile int                       `json:"max_tile"`
	State   GameStateType             `json:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:    g.tick,
		Target:  g.cfg.Target,
		Score:   g.score,
		Moves:   g.moves,
		Board:   g.board,
		MaxTile: MaxTile(g.board),
		State:   state,
	}
}

// Observe implements registry.Game.
func (g *Game) Observe() any {
	return g.Snapshot()
}
