package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir is the per-user configuration directory, relative to the home directory.
const Dir = ".miniplay/configs"

// LoadT2048 loads the grid-merge configuration.
// Search order: customPath -> ~/.miniplay/configs/2048.yaml -> ./configs/2048.yaml -> embedded default
func LoadT2048(customPath string) (T2048Config, error) {
	return load("2048.yaml", customPath, default2048YAML, DefaultT2048Config())
}

// LoadFlappy loads the obstacle avoider configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load("flappy.yaml", customPath, defaultFlappyYAML, DefaultFlappyConfig())
}

// LoadMemory loads the memory match configuration.
func LoadMemory(customPath string) (MemoryConfig, error) {
	return load("memory.yaml", customPath, defaultMemoryYAML, DefaultMemoryConfig())
}

// LoadReflex loads the reflex timer configuration.
func LoadReflex(customPath string) (ReflexConfig, error) {
	return load("reflex.yaml", customPath, defaultReflexYAML, DefaultReflexConfig())
}

// LoadSnake loads the snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake.yaml", customPath, defaultSnakeYAML, DefaultSnakeConfig())
}

// load resolves one game's config. Fields missing from a YAML file keep the
// value from fallback, so partial user overrides are valid.
// Only an explicit customPath produces an error; the implicit locations are
// best-effort and fall through on any read or parse failure.
func load[T any](filename, customPath string, embedded []byte, fallback T) (T, error) {
	if customPath != "" {
		cfg := fallback
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userPath := userConfigPath(filename); userPath != "" {
		candidates = append([]string{userPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := fallback
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback, nil
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, filename)
}
