package config

import (
	_ "embed"
)

//go:embed defaults/2048.yaml
var default2048YAML []byte

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

//go:embed defaults/reflex.yaml
var defaultReflexYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultT2048Config returns the default grid-merge configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Target:     2048,
		StartTiles: 2,
		Spawn4Prob: 0.1,
	}
}

// DefaultFlappyConfig returns the default obstacle avoider configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:     0.5,
			JumpImpulse: -10,
			PipeSpeed:   3,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:       60,
			GapHeight:       150,
			Margin:          50,
			SpawnIntervalMS: 1500,
		},
		Player: FlappyPlayer{
			X:      100,
			Width:  40,
			Height: 40,
		},
		Playfield: Playfield{
			Width:  400,
			Height: 600,
		},
	}
}

// DefaultMemoryConfig returns the default memory match configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Pairs:           8,
		MatchDelayMS:    500,
		MismatchDelayMS: 1000,
		TimerEnabled:    true,
	}
}

// DefaultReflexConfig returns the default reflex timer configuration.
func DefaultReflexConfig() ReflexConfig {
	return ReflexConfig{
		DelayMinMS: 1000,
		DelayMaxMS: 5000,
		Playfield:  Playfield{Width: 60, Height: 16},
		Target:     Playfield{Width: 6, Height: 3},
	}
}

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		GridWidth:      20,
		GridHeight:     20,
		MoveIntervalMS: 150,
		FoodPoints:     10,
	}
}
