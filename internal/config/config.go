// Package config provides YAML-based game configuration with embedded defaults.
//
// Each game reads its tunables (physics constants, delays, grid sizes) from
// <game>.yaml. Playfield geometry lives here too, so game logic never measures
// rendered output to find its bounds.
package config

// T2048Config tunes the grid-merge puzzle.
type T2048Config struct {
	Target     int     `yaml:"target"`      // tile value that wins the round
	StartTiles int     `yaml:"start_tiles"` // tiles placed at round start
	Spawn4Prob float64 `yaml:"spawn4_prob"` // probability a spawned tile is a 4
}

// FlappyConfig contains all configuration for the obstacle avoider.
// Distances are playfield units; velocities are units per tick.
type FlappyConfig struct {
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Player    FlappyPlayer    `yaml:"player"`
	Playfield Playfield       `yaml:"playfield"`
}

// FlappyPhysics defines the point-mass integration constants.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	PipeSpeed   float64 `yaml:"pipe_speed"`
}

// FlappyObstacles defines pipe-pair parameters.
type FlappyObstacles struct {
	PipeWidth       float64 `yaml:"pipe_width"`
	GapHeight       float64 `yaml:"gap_height"`
	Margin          float64 `yaml:"margin"`            // minimum distance of the gap from either edge
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"` // wall-clock spawn period
}

// FlappyPlayer defines the player box.
type FlappyPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Playfield is the logical size of a game area.
type Playfield struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// MemoryConfig tunes the memory match game.
type MemoryConfig struct {
	Pairs           int  `yaml:"pairs"`
	MatchDelayMS    int  `yaml:"match_delay_ms"`
	MismatchDelayMS int  `yaml:"mismatch_delay_ms"`
	TimerEnabled    bool `yaml:"timer_enabled"`
}

// ReflexConfig tunes the reflex timer.
type ReflexConfig struct {
	DelayMinMS int       `yaml:"delay_min_ms"`
	DelayMaxMS int       `yaml:"delay_max_ms"` // exclusive
	Playfield  Playfield `yaml:"playfield"`
	Target     Playfield `yaml:"target"`
}

// SnakeConfig tunes the snake game.
type SnakeConfig struct {
	GridWidth      int `yaml:"grid_width"`
	GridHeight     int `yaml:"grid_height"`
	MoveIntervalMS int `yaml:"move_interval_ms"`
	FoodPoints     int `yaml:"food_points"`
}
