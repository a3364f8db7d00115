package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/miniplay/internal/registry"
	"github.com/vovakirdan/miniplay/internal/score"
	"github.com/vovakirdan/miniplay/internal/storage"
)

const (
	minWidthForList = 80 // below this the game list collapses into "< title >"
	gameListWidth   = 20
	maxRounds       = 50
)

// RoundLister reads the round history. *storage.Store implements it.
type RoundLister interface {
	RecentRounds(gameID string, limit int) ([]storage.Round, error)
}

// scoreboardKeys are the scoreboard bindings; they double as the help view.
type scoreboardKeys struct {
	Up, Down           key.Binding
	NextGame, PrevGame key.Binding
	Back, Quit         key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev game")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// panelStyle frames the game list and the table.
var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
// Memory match shows its ranked list; other games show their recent rounds.
type ScoreboardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	book        *score.Book
	rounds      RoundLister
	rows        []table.Row
	table       table.Model
	help        help.Model
	keys        scoreboardKeys
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showList    bool
}

// NewScoreboardModel creates a new scoreboard model. book and rounds may be nil.
func NewScoreboardModel(book *score.Book, rounds RoundLister, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		games:    registry.List(),
		book:     book,
		rounds:   rounds,
		keys:     newScoreboardKeys(),
		help:     h,
		width:    width,
		height:   height,
		showList: width >= minWidthForList,
	}
	m.load()
	return m
}

func (m ScoreboardModel) currentID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// columns returns the table layout for the current game.
func (m ScoreboardModel) columns() []table.Column {
	if m.currentID() == "memory" {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Time", Width: 8},
			{Title: "Moves", Width: 7},
			{Title: "Date", Width: 14},
		}
	}
	return []table.Column{
		{Title: "Result", Width: 10},
		{Title: "Moves", Width: 7},
		{Title: "Won", Width: 5},
		{Title: "Date", Width: 14},
	}
}

func (m ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the rows for the current game and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.rows = m.loadRows(m.currentID())
	m.table = m.createTable()
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) loadRows(gameID string) []table.Row {
	if gameID == "" {
		return nil
	}

	if gameID == "memory" {
		if m.book == nil {
			return nil
		}
		entries := m.book.Leaderboard()
		rows := make([]table.Row, len(entries))
		for i, e := range entries {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%ds", e.Duration),
				fmt.Sprintf("%d", e.Moves),
				e.Date.Local().Format("Jan 02 15:04"),
			}
		}
		return rows
	}

	if m.rounds == nil {
		return nil
	}
	rounds, err := m.rounds.RecentRounds(gameID, maxRounds)
	if err != nil {
		return nil
	}
	unit := score.Unit(gameID)
	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		won := ""
		if r.Won {
			won = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d %s", r.Metric, unit),
			fmt.Sprintf("%d", r.Moves),
			won,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) cycleGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.load()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.cycleGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.cycleGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showList = m.width >= minWidthForList
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "SCORES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("SCORES - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render(m.bestLine()), m.width))
	b.WriteString("\n\n")

	if m.showList {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) bestLine() string {
	id := m.currentID()
	if m.book == nil || id == "" {
		return "Scores are not being saved."
	}
	best, ok := m.book.Best(id)
	if !ok {
		return "No best yet."
	}
	line := fmt.Sprintf("Best: %d %s", best, score.Unit(id))
	if m.book.Direction(id) == score.LowerIsBetter {
		line += " (lower is better)"
	}
	return line
}

// renderWideLayout puts the game list beside the table.
func (m ScoreboardModel) renderWideLayout() string {
	var list strings.Builder
	list.WriteString("Games\n")
	list.WriteString(strings.Repeat("-", gameListWidth-4))
	for i, g := range m.games {
		line := "  " + g.Title
		if i == m.gameCursor {
			line = selectedStyle.Render("> " + g.Title)
		}
		list.WriteString("\n")
		list.WriteString(line)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(gameListWidth).Render(list.String()), "  ", panelStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout shows only the current game between arrows.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder
	if len(m.games) > 0 {
		b.WriteString(centerText(activeTab.Render(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText(panelStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		return subtleStyle.Italic(true).Padding(2, 4).
			Render("No rounds recorded yet.\nPlay a game to set a record!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to leave.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
