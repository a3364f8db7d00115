// miniplay is a portal of casual mini-games for the terminal, SSH and the web.
//
// Usage:
//
//	miniplay list              - List available games
//	miniplay play <game>       - Play a game
//	miniplay menu              - Start menu to pick games interactively
//	miniplay scores <game>     - Show records and recent rounds for a game
//	miniplay profile           - Show or edit the player profile
//	miniplay serve             - Start the SSH and HTTP servers
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.miniplay/miniplay.db)
//	--config <path>     - Game config directory, or a single file with play
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs of terminal sessions to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/games/flappy"
	"github.com/vovakirdan/miniplay/internal/games/memory"
	"github.com/vovakirdan/miniplay/internal/games/reflex"
	"github.com/vovakirdan/miniplay/internal/games/snake"
	"github.com/vovakirdan/miniplay/internal/games/t2048"
	"github.com/vovakirdan/miniplay/internal/platform/tui"
	"github.com/vovakirdan/miniplay/internal/score"
	"github.com/vovakirdan/miniplay/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// configSetters points each game at a custom config file.
var configSetters = map[string]func(string){
	"2048":   t2048.SetConfigPath,
	"flappy": flappy.SetConfigPath,
	"memory": memory.SetConfigPath,
	"reflex": reflex.SetConfigPath,
	"snake":  snake.SetConfigPath,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "miniplay",
	Short: "MiniPlay - casual mini-games in your terminal",
	Long: `MiniPlay is a small portal of casual games: 2048, Flappy, Memory Match,
Reflex Timer and Snake. Play locally, over SSH, or from a browser through
the websocket API.

Available commands:
  list     - Show the game catalog
  play     - Play a specific game directly
  menu     - Interactive catalog with categories and search
  scores   - View records and recent rounds
  profile  - Show or edit the player profile
  serve    - Start the SSH and HTTP servers

Examples:
  miniplay list --category reflex
  miniplay play snake
  miniplay menu
  miniplay serve --ssh :2222 --http :8080
  miniplay scores memory`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Game config directory (<game>.yaml files), or one YAML file with play")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for terminal sessions (default: discard)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the root logger writing to w at --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "miniplay",
		Level:           level,
	}), nil
}

// terminalLogger returns a logger that stays off the alt screen: the
// --log-file if given, otherwise a discarding logger. The closer is never nil.
func terminalLogger() (*log.Logger, func() error, error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() error { return nil }, err
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f.Close, nil
}

// applyConfig wires --config into the games. A directory supplies
// <game>.yaml for every game that has one; a file applies to gameID only.
func applyConfig(gameID string) error {
	if flagConfig == "" {
		return nil
	}
	info, err := os.Stat(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot read --config: %w", err)
	}

	if !info.IsDir() {
		set, ok := configSetters[gameID]
		if !ok {
			return fmt.Errorf("--config %s is a file; pass a directory or use it with play", flagConfig)
		}
		set(flagConfig)
		return nil
	}

	for id, set := range configSetters {
		path := filepath.Join(flagConfig, id+".yaml")
		if _, err := os.Stat(path); err == nil {
			set(path)
		}
	}
	return nil
}

// openStore opens the database, or returns nil with a warning so games
// still run without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be saved", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// openStoreStrict opens the database for commands that cannot work without it.
func openStoreStrict() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

// services wires the shared backends over store, which may be nil.
func services(store *storage.Store, logger *log.Logger) tui.Services {
	svc := tui.Services{Logger: logger}
	if store == nil {
		return svc
	}
	svc.Book = score.NewBook(store, store, logger.WithPrefix("score"))
	svc.Rounds = store
	svc.KV = store
	return svc
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
