package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/profile"
	"github.com/vovakirdan/miniplay/internal/registry"
	"github.com/vovakirdan/miniplay/internal/score"
)

// Services are the shared backends a session reads and writes.
// Any field may be nil; the session then runs without that feature.
type Services struct {
	Book   *score.Book
	Rounds RoundLister
	KV     score.KV // profile storage
	Logger *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
	screenProfile
)

// SessionModel manages the full session flow: menu -> game, scoreboard or
// profile -> menu. It is the top-level model for `menu` and SSH sessions.
type SessionModel struct {
	svc      Services
	config   core.RuntimeConfig
	id       string
	player   profile.Profile
	screen   sessionScreen
	menu     MenuModel
	game     Model
	board    ScoreboardModel
	form     ProfileModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc Services, cfg core.RuntimeConfig, player profile.Profile) SessionModel {
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	svc.Logger = svc.Logger.With("session", id[:8])

	return SessionModel{
		svc:    svc,
		config: cfg,
		id:     id,
		player: player.Normalize(),
		menu:   NewMenuModel(player, cfg),
	}
}

// ID returns the session identifier.
func (m SessionModel) ID() string {
	return m.id
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session. Child models signal transitions
// with tea.Quit; the session swallows that command and switches screens.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenProfile:
		return m.updateProfile(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		id := m.menu.Selected().ID
		game, err := registry.Create(id)
		if err != nil {
			m.svc.Logger.Error("cannot create game", "game", id, "error", err)
			m.menu.resume(m.player, m.config)
			return m, nil
		}
		m.svc.Logger.Info("game started", "game", id)
		m.game = NewModel(game, m.svc.Book, m.config, m.svc.Logger)
		m.game.inSession = true
		m.screen = screenGame
		return m, m.game.Init()

	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.svc.Book, m.svc.Rounds, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScoreboard
		return m, m.board.Init()

	case m.menu.WantsProfile():
		m.form = NewProfileModel(m.svc.KV, m.player, m.config.ScreenW)
		m.screen = screenProfile
		return m, m.form.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.toMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.toMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.form.Update(msg)
	if form, ok := next.(ProfileModel); ok {
		m.form = form
	}

	if m.form.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.form.Done() {
		m.player = m.form.Profile()
		m.toMenu()
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) toMenu() {
	m.screen = screenMenu
	m.menu.resume(m.player, m.config)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.board.View()
	case screenProfile:
		return m.form.View()
	default:
		return m.menu.View()
	}
}

// Player returns the session's current profile.
func (m SessionModel) Player() profile.Profile {
	return m.player
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(svc Services, cfg core.RuntimeConfig, player profile.Profile) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg, player),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
