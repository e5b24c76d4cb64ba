package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	label  string
	screen Screen // empty means quit
}

var landingMenu = []menuItem{
	{label: "Sign up with Student ID", screen: ScreenSignup},
	{label: "Tutorials", screen: ScreenTutorials},
	{label: "Account settings", screen: ScreenSettings},
	{label: "Forgot password", screen: ScreenRecovery},
	{label: "Quit"},
}

// menuKeyMap is shared by the menu-driven screens
type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select}
}

// FullHelp returns keybindings for the expanded help view
func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}}
}

var menuKeys = menuKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
}

// LandingModel is the home screen
type LandingModel struct {
	frame
	cursor int
}

// NewLandingModel creates the home screen
func NewLandingModel(d *deps) LandingModel {
	return LandingModel{frame: newFrame(ScreenLanding, d)}
}

// Init initializes the screen
func (m LandingModel) Init() tea.Cmd { return nil }

// Keys returns the screen's key bindings
func (m LandingModel) Keys() help.KeyMap { return menuKeys }

// CapturingInput reports whether printable keys belong to a text field
func (m LandingModel) CapturingInput() bool { return false }

// Close releases the screen's resources
func (m LandingModel) Close() { m.release() }

// Update handles menu navigation
func (m LandingModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, menuKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, menuKeys.Down):
		if m.cursor < len(landingMenu)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, menuKeys.Select):
		item := landingMenu[m.cursor]
		if item.screen == "" {
			m.Close()
			return m, tea.Quit
		}
		return m, transition(item.screen, nil)
	}
	return m, nil
}

// View renders the hero, the profile status and the menu
func (m LandingModel) View() string {
	mt := m.metrics()
	var b strings.Builder

	hero := lipgloss.NewStyle().
		Padding(mt.Gap, mt.Padding).
		Render(TitleStyle.Render(AppName))
	b.WriteString(hero)
	b.WriteString("\n")

	body := lipgloss.NewStyle().PaddingLeft(mt.Padding).Width(mt.ContentWidth + mt.Padding)
	if !mt.Compact {
		b.WriteString(body.Render(SubtitleStyle.Render(Tagline)))
		b.WriteString("\n\n")
	}

	profile := m.deps.registry.Profile
	switch {
	case profile.Verified() && profile.Student != nil:
		b.WriteString(body.Render(RenderField("Signed in as", profile.Student.FullName)))
	case profile.Verified():
		b.WriteString(body.Render(RenderField("Student ID", profile.StudentID)))
	default:
		b.WriteString(body.Render(LabelStyle.Render("Not verified yet")))
	}
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	for i, item := range landingMenu {
		b.WriteString(body.Render(RenderMenuItem(item.label, i == m.cursor)))
		b.WriteString("\n")
	}
	return b.String()
}
