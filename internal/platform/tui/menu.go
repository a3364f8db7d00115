package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/miniplay/internal/catalog"
	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/profile"
	"github.com/vovakirdan/miniplay/internal/registry"
)

// MenuModel is the Bubble Tea model for the launch surface: category tabs,
// a search box and the filtered game list.
type MenuModel struct {
	categories []catalog.Category
	tab        int
	items      []catalog.Entry
	cursor     int
	search     textinput.Model
	searching  bool
	player     profile.Profile

	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	quitting       bool
	selected       *catalog.Entry // Set when user selects a game
	openScoreboard bool
	openProfile    bool
}

// NewMenuModel creates a new menu model showing the player's profile.
func NewMenuModel(player profile.Profile, cfg core.RuntimeConfig) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "search games..."
	ti.Prompt = "/ "
	ti.CharLimit = 32
	ti.Width = 24

	m := MenuModel{
		categories: catalog.Categories(),
		search:     ti,
		player:     player.Normalize(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
	m.refresh()
	return m
}

// refresh recomputes the visible list from the active tab and query.
// Entries without a registered game are hidden.
func (m *MenuModel) refresh() {
	category := catalog.CategoryAll
	if m.tab < len(m.categories) {
		category = m.categories[m.tab].ID
	}

	found := catalog.Search(catalog.Filter(category), m.search.Value())
	items := make([]catalog.Entry, 0, len(found))
	for _, e := range found {
		if registry.Exists(e.ID) {
			items = append(items, e)
		}
	}
	m.items = items
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleSearchKey routes keys to the search box; the list stays navigable.
func (m MenuModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m.selectCurrent()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.moveCursor(-1)

	case MenuActionDown:
		m.moveCursor(1)

	case MenuActionPrevTab:
		if len(m.categories) > 0 {
			m.tab = (m.tab - 1 + len(m.categories)) % len(m.categories)
			m.refresh()
		}

	case MenuActionNextTab:
		if len(m.categories) > 0 {
			m.tab = (m.tab + 1) % len(m.categories)
			m.refresh()
		}

	case MenuActionSelect:
		return m.selectCurrent()

	case MenuActionBack:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refresh()
		}

	case MenuActionSearch:
		m.searching = true
		return m, m.search.Focus()

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionProfile:
		m.openProfile = true
		return m, tea.Quit
	}

	return m, nil
}

// resume clears the last request so the menu can be shown again with its
// tab, query and cursor intact.
func (m *MenuModel) resume(player profile.Profile, cfg core.RuntimeConfig) {
	m.player = player.Normalize()
	m.config = cfg
	m.width = cfg.ScreenW
	m.height = cfg.ScreenH
	m.selected = nil
	m.openScoreboard = false
	m.openProfile = false
	m.quitting = false
}

func (m *MenuModel) moveCursor(delta int) {
	m.cursor = core.Clamp(m.cursor+delta, 0, max(len(m.items)-1, 0))
}

func (m MenuModel) selectCurrent() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	selected := m.items[m.cursor]
	m.selected = &selected
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  M I N I P L A Y  "), m.width))
	b.WriteString("\n")
	greeting := fmt.Sprintf("%s %s", profile.Glyph(m.player.Avatar), m.player.Name)
	b.WriteString(centerText(subtleStyle.Render(greeting), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.categories))
	for i, c := range m.categories {
		if i == m.tab {
			tabs[i] = activeTab.Render(c.Label)
		} else {
			tabs[i] = inactiveTab.Render(c.Label)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(centerText(m.search.View(), m.width))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		b.WriteString(centerText(subtleStyle.Render("No games match."), m.width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		line := fmt.Sprintf("  %s  %-14s", item.Icon, item.Title)
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> %s  %-14s", item.Icon, item.Title))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(subtleStyle.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate | Left/Right: Category | /: Search | Enter: Play | Tab: Scores | E: Profile | Q: Quit"
	b.WriteString(centerText(subtleStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Items returns the currently visible entries.
func (m MenuModel) Items() []catalog.Entry {
	return m.items
}

// Selected returns the selected entry, or nil if none selected.
func (m MenuModel) Selected() *catalog.Entry {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// WantsProfile returns true if user requested the profile editor.
func (m MenuModel) WantsProfile() bool {
	return m.openProfile
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring styled text by its
// printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
