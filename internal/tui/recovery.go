package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/campuspass/internal/studentapi"
)

// RecoveryModel requests a password reset link
type RecoveryModel struct {
	frame
	input   textinput.Model
	spinner spinner.Model
	call    call

	sentTo string
	notice string
}

// NewRecoveryModel creates the password recovery screen
func NewRecoveryModel(d *deps) RecoveryModel {
	return RecoveryModel{
		frame:   newFrame(ScreenRecovery, d),
		input:   newEmailInput(d.registry.Profile.Email),
		spinner: newSpinner(),
	}
}

// Init initializes the screen
func (m RecoveryModel) Init() tea.Cmd { return textinput.Blink }

var recoveryKeys = emailKeyMap{
	Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send link")),
}

// Keys returns the screen's key bindings
func (m RecoveryModel) Keys() help.KeyMap {
	if m.sentTo != "" {
		return doneKeys
	}
	return recoveryKeys
}

// CapturingInput reports whether printable keys belong to a text field
func (m RecoveryModel) CapturingInput() bool { return m.sentTo == "" }

// Close releases the screen's resources
func (m RecoveryModel) Close() {
	m.call.abandon()
	m.release()
}

// Update handles address entry and the reset result
func (m RecoveryModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case callResultMsg:
		if !m.call.accept(msg) {
			return m, nil
		}
		if msg.err != nil {
			m.notice = studentapi.ShortMessage(msg.err)
			return m, nil
		}
		if sent, _ := msg.value.(bool); !sent {
			m.notice = "The reset link could not be sent. Try again shortly."
			return m, nil
		}
		m.sentTo = strings.TrimSpace(m.input.Value())
		m.input.Blur()
		return m, nil

	case spinner.TickMsg:
		if !m.call.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.call.busy() {
			return m, nil
		}
		if m.sentTo != "" {
			if key.Matches(msg, doneKeys.Continue) {
				return m, transition(ScreenLanding, nil)
			}
			return m, nil
		}
		if key.Matches(msg, recoveryKeys.Send) {
			email := m.input.Value()
			if err := studentapi.ValidateEmail(email); err != nil {
				m.notice = studentapi.ShortMessage(err)
				return m, nil
			}
			m.notice = ""
			client := m.deps.client
			addr := strings.TrimSpace(email)
			cmd := m.call.start(func(ctx context.Context) (any, error) {
				return client.RequestPasswordReset(ctx, addr)
			})
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the address form or the "check your inbox" state
func (m RecoveryModel) View() string {
	mt := m.metrics()
	pad := lipgloss.NewStyle().PaddingLeft(mt.Padding)
	var b strings.Builder

	b.WriteString(pad.Render(TitleStyle.Render("Forgot password")))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	if m.sentTo != "" {
		b.WriteString(pad.Render(RenderSuccess("Check your inbox", mt.ContentWidth)))
		b.WriteString("\n")
		b.WriteString(pad.Width(mt.ContentWidth + mt.Padding).Render(
			LabelStyle.Render("If " + m.sentTo + " has an account, a reset link is on its way.")))
		return b.String()
	}

	if !mt.Compact {
		b.WriteString(pad.Width(mt.ContentWidth + mt.Padding).Render(
			SubtitleStyle.Render("Enter the email on your account and we'll send a reset link.")))
		b.WriteString(strings.Repeat("\n", mt.Gap+1))
	}
	m.input.Width = mt.ContentWidth - 2
	b.WriteString(pad.Render(m.input.View()))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	switch {
	case m.call.busy():
		b.WriteString(pad.Render(m.spinner.View() + " Sending..."))
	case m.notice != "":
		b.WriteString(pad.Render(InlineErrorStyle.Render(m.notice)))
	}
	return b.String()
}
