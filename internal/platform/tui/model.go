package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/registry"
	"github.com/vovakirdan/miniplay/internal/score"
)

// Model is the Bubble Tea model that drives one game.
// It is the single scheduler for that game: input only sets intents in the
// frame consumed by the next tick.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	book       *score.Book
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	gen        uint64
	logger     *log.Logger

	fixedSeed   bool   // --seed given: every round replays the same sequence
	status      string // result of the last recorded round
	screenshots bool

	quitting   bool
	backToMenu bool
	inSession  bool // Back returns to the menu instead of quitting
}

// NewModel creates a new Bubble Tea model for the given game.
// book may be nil, in which case rounds are not persisted.
func NewModel(game registry.Game, book *score.Book, cfg core.RuntimeConfig, logger *log.Logger) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		book:       book,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gen:        nextLoop(),
		logger:     logger,
		fixedSeed:  fixed,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.gen, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" && m.screenshots {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.inSession {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.restart()
		return m, tickCmd(m.gen, m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Outcome != nil {
		m.record(*result.Outcome)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.gen, m.config.TickRate)
}

// restart begins a new round; pending delayed transitions of the old round
// are discarded by the game's Reset.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.status = ""
	m.inputFrame.Clear()
}

// record stores a finished round exactly once.
func (m *Model) record(o core.Outcome) {
	if m.book == nil {
		return
	}
	res, err := m.book.Record(m.game.ID(), o)
	if err != nil {
		m.logger.Warn("cannot record round", "game", m.game.ID(), "error", err)
		m.status = ""
		return
	}
	switch {
	case res.Rank > 0:
		m.status = fmt.Sprintf("Rank #%d", res.Rank)
	case res.Improved:
		m.status = "New best!"
	default:
		m.status = ""
	}
}

// statusLine formats the best record and the last round result.
func (m Model) statusLine() string {
	if m.book == nil {
		return ""
	}
	best, ok := m.book.Best(m.game.ID())
	if !ok {
		return m.status
	}
	line := fmt.Sprintf("Best: %d %s", best, score.Unit(m.game.ID()))
	if m.status != "" {
		line = m.status + "  " + line
	}
	return line
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".miniplay", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	overlayStatus(m.screen, m.statusLine(), core.ColorGray)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, book *score.Book, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, book, cfg, logger)
	model.screenshots = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
