package core

import "time"

// RuntimeConfig contains configuration passed to games at the start of a round.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration is the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState is the coarse status the platform needs from a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the round has ended (win, loss or completion)
	Won      bool // Whether the round ended in a win
	Paused   bool // Whether the game is paused
}

// Outcome describes a finished round for score bookkeeping.
// Metric is the value compared against the stored best: points, reaction
// milliseconds or elapsed seconds depending on the game.
type Outcome struct {
	Metric int
	Moves  int
	Won    bool
}

// StepResult is returned by Game.Step() after each simulation tick.
// Outcome is non-nil only on the tick where a round ends.
type StepResult struct {
	State   GameState
	Outcome *Outcome
}
