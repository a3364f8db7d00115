package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/miniplay/internal/catalog"
	"github.com/vovakirdan/miniplay/internal/score"
)

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show records and recent rounds for a game",
	Long: `Display the best result, the Memory Match leaderboard and the most
recent rounds for the specified game.

Examples:
  miniplay scores reflex
  miniplay scores memory --recent 20
  miniplay scores snake --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent rounds to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the round history of the game (records are kept)")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	entry, ok := catalog.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q; run 'miniplay list' to see available games", gameID)
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(gameID); err != nil {
			return fmt.Errorf("clearing rounds: %w", err)
		}
		fmt.Printf("Round history of %s cleared.\n", entry.Title)
		return nil
	}

	book := score.NewBook(store, store, logger.WithPrefix("score"))
	unit := score.Unit(gameID)

	fmt.Printf("Records - %s\n", entry.Title)
	fmt.Println()

	if best, ok := book.Best(gameID); ok {
		fmt.Printf("Best: %d %s\n", best, unit)
	} else {
		fmt.Println("No record yet.")
	}

	if gameID == "memory" {
		board := book.Leaderboard()
		if len(board) > 0 {
			fmt.Println()
			fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "Rank", "Time", "Moves", "Date")
			fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "----", "----", "-----", "----")
			for i, e := range board {
				fmt.Printf("  %-4d  %-8s  %-6d  %s\n", i+1, fmt.Sprintf("%ds", e.Duration), e.Moves, e.Date.Local().Format("2006-01-02 15:04"))
			}
		}
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}
	if stats.Rounds == 0 {
		fmt.Println()
		fmt.Printf("Play 'miniplay play %s' to record the first round!\n", gameID)
		return nil
	}

	fmt.Println()
	fmt.Printf("Rounds: %d  Wins: %d  Range: %d-%d %s  Avg: %.1f\n",
		stats.Rounds, stats.Wins, stats.MinMetric, stats.MaxMetric, unit, stats.AvgMetric)

	rounds, err := store.RecentRounds(gameID, flagRecent)
	if err != nil {
		return fmt.Errorf("reading rounds: %w", err)
	}

	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-4s  %s\n", "Result", "Moves", "Won", "Date")
	fmt.Printf("  %-10s  %-6s  %-4s  %s\n", "------", "-----", "---", "----")
	for _, r := range rounds {
		won := "no"
		if r.Won {
			won = "yes"
		}
		result := fmt.Sprintf("%d %s", r.Metric, unit)
		fmt.Printf("  %-10s  %-6d  %-4s  %s\n", result, r.Moves, won, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
