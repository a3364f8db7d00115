package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/miniplay/internal/platform/tui"
	"github.com/vovakirdan/miniplay/internal/profile"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the catalog menu",
	Long: `Start MiniPlay in interactive menu mode.

After a game you return to the menu to pick another.

Controls:
  Up/Down/j/k      - Navigate
  Left/Right/h/l   - Switch category
  /                - Search
  Enter/Space      - Play
  Tab              - Scores
  E                - Edit profile
  Q                - Quit

Examples:
  miniplay menu
  miniplay menu --fps 30
  miniplay menu --db ./miniplay.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyConfig(""); err != nil {
		return err
	}

	logger, closeLog, err := terminalLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	svc := services(store, logger)
	player := profile.Default()
	if svc.KV != nil {
		player = profile.Load(svc.KV)
	}

	if err := tui.RunSession(svc, runtimeConfig(), player); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
