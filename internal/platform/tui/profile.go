package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/miniplay/internal/profile"
	"github.com/vovakirdan/miniplay/internal/score"
)

// ProfileModel edits the player name and avatar.
type ProfileModel struct {
	kv     score.KV
	name   textinput.Model
	avatar int
	saved  profile.Profile
	err    error
	width  int

	done     bool
	quitting bool
}

// NewProfileModel creates a profile editor for the stored profile. kv may be
// nil, in which case changes last only for the session.
func NewProfileModel(kv score.KV, current profile.Profile, width int) ProfileModel {
	current = current.Normalize()

	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.CharLimit = profile.MaxNameLen
	ti.Width = profile.MaxNameLen
	ti.SetValue(current.Name)
	ti.Focus()

	avatar := 0
	for i, a := range profile.Avatars {
		if a.ID == current.Avatar {
			avatar = i
		}
	}

	return ProfileModel{
		kv:     kv,
		name:   ti,
		avatar: avatar,
		saved:  current,
		width:  width,
	}
}

// Init starts the cursor blink.
func (m ProfileModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.done = true
			return m, tea.Quit
		case "tab", "right":
			m.avatar = (m.avatar + 1) % len(profile.Avatars)
			return m, nil
		case "shift+tab", "left":
			m.avatar = (m.avatar - 1 + len(profile.Avatars)) % len(profile.Avatars)
			return m, nil
		case "enter":
			return m.save()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m ProfileModel) save() (tea.Model, tea.Cmd) {
	p := profile.Profile{
		Name:   m.name.Value(),
		Avatar: profile.Avatars[m.avatar].ID,
	}.Normalize()

	if m.kv != nil {
		stored, err := profile.Save(m.kv, p)
		if err != nil {
			m.err = err
			return m, nil
		}
		p = stored
	}

	m.saved = p
	m.done = true
	return m, tea.Quit
}

// View renders the form.
func (m ProfileModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("PROFILE"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.name.View(), m.width))
	b.WriteString("\n\n")

	glyphs := make([]string, len(profile.Avatars))
	for i, a := range profile.Avatars {
		if i == m.avatar {
			glyphs[i] = activeTab.Render(a.Glyph)
		} else {
			glyphs[i] = inactiveTab.Render(a.Glyph)
		}
	}
	b.WriteString(centerText("Avatar: "+strings.Join(glyphs, ""), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render(profile.Avatars[m.avatar].ID), m.width))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(centerText(errorStyle.Render("Could not save: "+m.err.Error()), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(subtleStyle.Render("Left/Right: Avatar | Enter: Save | Esc: Cancel"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Profile returns the last saved profile.
func (m ProfileModel) Profile() profile.Profile {
	return m.saved
}

// Done returns true once the form was saved or cancelled.
func (m ProfileModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProfileModel) IsQuitting() bool {
	return m.quitting
}
