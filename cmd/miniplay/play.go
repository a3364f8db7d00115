package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/miniplay/internal/platform/tui"
	"github.com/vovakirdan/miniplay/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move, steer, slide or pick a card
  Space        - Flap, reveal, hit
  Enter        - Start a round
  Mouse click  - Tap (cards, reflex target)
  P            - Pause
  R            - Restart
  Esc/B/Q      - Quit
  Ctrl+S       - Save a screenshot

Examples:
  miniplay play 2048
  miniplay play flappy --seed 42
  miniplay play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'miniplay list' to see available games", gameID)
	}
	if err := applyConfig(gameID); err != nil {
		return err
	}

	logger, closeLog, err := terminalLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, services(store, logger).Book, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
