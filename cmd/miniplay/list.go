package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/miniplay/internal/catalog"
	"github.com/vovakirdan/miniplay/internal/registry"
)

var (
	flagCategory string
	flagSearch   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game catalog",
	Long: `Shows the games in the catalog, optionally filtered by category and a
case-insensitive search over titles and descriptions.

Examples:
  miniplay list
  miniplay list --category puzzle
  miniplay list --search tiles`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagCategory, "category", catalog.CategoryAll, "Category filter (all, puzzle, skill, memory, reflex)")
	listCmd.Flags().StringVar(&flagSearch, "search", "", "Search titles and descriptions")
}

func runList(_ *cobra.Command, _ []string) error {
	known := false
	for _, c := range catalog.Categories() {
		if c.ID == flagCategory {
			known = true
		}
	}
	if !known && flagCategory != "" {
		return fmt.Errorf("unknown category %q", flagCategory)
	}

	games := catalog.Search(catalog.Filter(flagCategory), flagSearch)
	if len(games) == 0 {
		fmt.Println("No games match.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-14s  %-8s  %s\n", maxIDLen, "ID", "Title", "Category", "Description")
	fmt.Printf("  %-*s  %-14s  %-8s  %s\n", maxIDLen, "--", "-----", "--------", "-----------")
	for _, g := range games {
		id := g.ID
		if !registry.Exists(g.ID) {
			id += "*"
		}
		fmt.Printf("  %-*s  %-14s  %-8s  %s\n", maxIDLen, id, g.Title, g.Category, g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'miniplay play <id>' to play a game.")
	return nil
}
