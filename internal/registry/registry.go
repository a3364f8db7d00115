// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vovakirdan/miniplay/internal/core"
)

// Game is the contract every mini-game implements so a platform scheduler can drive it.
// Games contain pure logic; the platform owns input mapping, timing, rendering and persistence.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "snake", "2048").
	// Used for CLI commands, catalog lookup and score keys.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new round. Any delayed transition scheduled by the
	// previous round is invalidated.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick of cfg.TickDuration().
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current coarse game state.
	State() core.GameState

	// Observe returns a read-only, JSON-serializable snapshot of the round.
	Observe() any
}

// Resizer is implemented by games whose layout follows the screen size.
// The platform calls Resize on a terminal resize instead of starting a new
// round.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

type entry struct {
	title   string
	factory Factory
}

var (
	mu    sync.RWMutex
	games = make(map[string]entry)
)

// Register adds a game factory to the registry. It panics on a duplicate ID
// or a factory whose game reports a different ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := games[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	g := f()
	if g.ID() != id {
		panic(fmt.Sprintf("registry: factory for %q builds %q", id, g.ID()))
	}
	games[id] = entry{title: g.Title(), factory: f}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(games))
	for _, id := range slices.Sorted(maps.Keys(games)) {
		result = append(result, GameInfo{ID: id, Title: games[id].title})
	}
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := games[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := games[id]
	return ok
}
