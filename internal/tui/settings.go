package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/campuspass/internal/urls"
)

type settingsAction int

const (
	actionToggleNotifications settingsAction = iota
	actionUpdateEmail
	actionResetPassword
	actionTutorials
	actionSignOut
)

var settingsMenu = []struct {
	action settingsAction
	label  string
}{
	{actionToggleNotifications, "Notifications"},
	{actionUpdateEmail, "Update email"},
	{actionResetPassword, "Reset password"},
	{actionTutorials, "View tutorials"},
	{actionSignOut, "Sign out"},
}

var signOutKeys = confirmKeyMap{
	Yes: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "sign out")),
	No:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "cancel")),
}

// SettingsModel shows the profile and account actions
type SettingsModel struct {
	frame
	cursor         int
	confirmSignOut bool
	notice         string
}

// NewSettingsModel creates the account settings screen
func NewSettingsModel(d *deps) SettingsModel {
	return SettingsModel{frame: newFrame(ScreenSettings, d)}
}

// Init initializes the screen
func (m SettingsModel) Init() tea.Cmd { return nil }

// Keys returns the screen's key bindings
func (m SettingsModel) Keys() help.KeyMap {
	if m.confirmSignOut {
		return signOutKeys
	}
	return menuKeys
}

// CapturingInput reports whether printable keys belong to a text field
func (m SettingsModel) CapturingInput() bool { return false }

// Close releases the screen's resources
func (m SettingsModel) Close() { m.release() }

// Update handles the menu and the sign-out confirmation
func (m SettingsModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirmSignOut {
		switch {
		case key.Matches(keyMsg, signOutKeys.Yes):
			m.confirmSignOut = false
			m.deps.registry.SignOut()
			m.notice = "Signed out"
			if err := m.deps.save(); err != nil {
				m.notice = "Signed out, but the profile could not be saved: " + err.Error()
			}
		case key.Matches(keyMsg, signOutKeys.No):
			m.confirmSignOut = false
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, menuKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, menuKeys.Down):
		if m.cursor < len(settingsMenu)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, menuKeys.Select):
		return m.activate(settingsMenu[m.cursor].action)
	}
	return m, nil
}

func (m SettingsModel) activate(action settingsAction) (screen, tea.Cmd) {
	m.notice = ""
	switch action {
	case actionToggleNotifications:
		reg := m.deps.registry
		reg.SetNotifications(!reg.Preferences.Notifications)
		if err := m.deps.save(); err != nil {
			m.notice = "Could not save preferences: " + err.Error()
		}
	case actionUpdateEmail:
		return m, transition(ScreenEmail, nil)
	case actionResetPassword:
		return m, transition(ScreenRecovery, nil)
	case actionTutorials:
		return m, transition(ScreenTutorials, nil)
	case actionSignOut:
		m.confirmSignOut = true
	}
	return m, nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// View renders the profile, menu and links
func (m SettingsModel) View() string {
	mt := m.metrics()
	pad := lipgloss.NewStyle().PaddingLeft(mt.Padding)
	var b strings.Builder

	b.WriteString(pad.Render(TitleStyle.Render("Account settings")))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	reg := m.deps.registry
	p := reg.Profile
	email := p.Email
	if email == "" {
		email = "not set"
	}
	lines := []string{RenderField("Email", email)}
	if p.Student != nil {
		lines = append(lines,
			RenderField("Name", p.Student.FullName),
			RenderField("Student ID", p.StudentID),
			RenderField("Level", p.Student.SchLevel))
	} else {
		lines = append(lines, RenderField("Student ID", "not verified"))
	}
	if !mt.Compact {
		lines = append(lines, RenderField("User ID", p.UserID))
	}
	b.WriteString(pad.Render(InfoBoxStyle.Width(mt.ContentWidth).Render(strings.Join(lines, "\n"))))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	for i, item := range settingsMenu {
		label := item.label
		if item.action == actionToggleNotifications {
			label += ": " + onOff(reg.Preferences.Notifications)
		}
		b.WriteString(pad.Render(RenderMenuItem(label, i == m.cursor)))
		b.WriteString("\n")
	}

	switch {
	case m.confirmSignOut:
		b.WriteString("\n")
		b.WriteString(pad.Render(InlineErrorStyle.Render("Sign out and forget this profile? (y/n)")))
		b.WriteString("\n")
	case m.notice != "":
		b.WriteString("\n")
		b.WriteString(pad.Render(LabelStyle.Render(m.notice)))
		b.WriteString("\n")
	}

	if !mt.Compact {
		b.WriteString("\n")
		for _, l := range urls.SettingsLinks {
			b.WriteString(pad.Render(LabelStyle.Render(l.Label+": ") + SubtitleStyle.Render(l.URL)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
