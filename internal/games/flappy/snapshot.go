package flappy

import "github.com/vovakirdan/miniplay/internal/config"

// Snapshot is the read-only view of a round used by remote renderers.
type Snapshot struct {
	Tick      int              `json:"tick"`
	Score     int              `json:"score"`
	PlayerY   float64          `json:"player_y"`
	PlayerVel float64          `json:"player_vel"`
	Pipes     []Pipe           `json:"pipes"`
	Playfield config.Playfield `json:"playfield"`
	Started   bool             `json:"started"`
	GameOver  bool             `json:"game_over"`
	Paused    bool             `json:"paused"`
}

// Snapshot returns the current round state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tickCount,
		Score:     g.score,
		PlayerY:   g.playerY,
		PlayerVel: g.playerVel,
		Pipes:     append([]Pipe(nil), g.pipes.Pipes()...),
		Playfield: g.cfg.Playfield,
		Started:   g.started,
		GameOver:  g.gameOver,
		Paused:    g.paused,
	}
}

// Observe implements registry.Game.
func (g *Game) Observe() any {
	return g.Snapshot()
}
