package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/campuspass/internal/studentapi"
)

type emailStep int

const (
	emailStepAddress emailStep = iota
	emailStepCode
	emailStepDone
)

// emailKeyMap defines key bindings for the address step
type emailKeyMap struct {
	Send key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k emailKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Send} }

// FullHelp returns keybindings for the expanded help view
func (k emailKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Send}} }

var emailKeys = emailKeyMap{
	Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send code")),
}

// otpKeyMap adds resend to the code bindings
type otpKeyMap struct {
	codeKeyMap
	Resend key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k otpKeyMap) ShortHelp() []key.Binding {
	return append(k.codeKeyMap.ShortHelp(), k.Resend)
}

// FullHelp returns keybindings for the expanded help view
func (k otpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{append(k.codeKeyMap.ShortHelp(), k.Resend)}
}

var otpKeys = otpKeyMap{
	codeKeyMap: codeKeys,
	Resend:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "resend")),
}

// sendResult and confirmResult tag call results so one call slot serves
// both requests.
type sendResult struct{ sent bool }
type confirmResult struct{ ok bool }

func newEmailInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "you@university.edu"
	ti.Prompt = "› "
	ti.CharLimit = 254
	ti.SetValue(value)
	ti.Focus()
	return ti
}

// EmailModel changes the profile email after proving ownership with a code
type EmailModel struct {
	frame
	step    emailStep
	input   textinput.Model
	code    CodeInput
	spinner spinner.Model
	call    call

	email  string // address the code was sent to
	notice string
	info   string
}

// NewEmailModel creates the email update screen
func NewEmailModel(d *deps) EmailModel {
	return EmailModel{
		frame:   newFrame(ScreenEmail, d),
		input:   newEmailInput(d.registry.Profile.Email),
		code:    NewCodeInput(studentapi.OTPLength),
		spinner: newSpinner(),
	}
}

// Init initializes the screen
func (m EmailModel) Init() tea.Cmd { return textinput.Blink }

// Keys returns the screen's key bindings
func (m EmailModel) Keys() help.KeyMap {
	switch m.step {
	case emailStepCode:
		return otpKeys
	case emailStepDone:
		return doneKeys
	default:
		return emailKeys
	}
}

// CapturingInput reports whether printable keys belong to a text field
func (m EmailModel) CapturingInput() bool { return m.step != emailStepDone }

// Close releases the screen's resources
func (m EmailModel) Close() {
	m.call.abandon()
	m.release()
}

func (m EmailModel) send(email string) (EmailModel, tea.Cmd) {
	if err := studentapi.ValidateEmail(email); err != nil {
		m.notice = studentapi.ShortMessage(err)
		return m, nil
	}
	m.notice, m.info = "", ""
	m.email = strings.TrimSpace(email)

	client := m.deps.client
	addr := m.email
	cmd := m.call.start(func(ctx context.Context) (any, error) {
		sent, err := client.SendVerification(ctx, addr)
		return sendResult{sent: sent}, err
	})
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m EmailModel) confirm() (EmailModel, tea.Cmd) {
	code := m.code.Value()
	if !m.code.Complete() || len(code) != studentapi.OTPLength {
		m.notice = fmt.Sprintf("Enter all %d digits", studentapi.OTPLength)
		return m, nil
	}
	m.notice, m.info = "", ""

	client := m.deps.client
	userID := m.deps.registry.Profile.UserID
	addr := m.email
	cmd := m.call.start(func(ctx context.Context) (any, error) {
		ok, err := client.ConfirmEmail(ctx, userID, addr, code)
		return confirmResult{ok: ok}, err
	})
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// Update handles both steps and their call results
func (m EmailModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case callResultMsg:
		if !m.call.accept(msg) {
			return m, nil
		}
		return m.handleResult(msg)

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
		switch m.step {
		case emailStepAddress:
			if key.Matches(msg, emailKeys.Send) {
				return m.send(m.input.Value())
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case emailStepCode:
			switch {
			case key.Matches(msg, otpKeys.Submit):
				return m.confirm()
			case key.Matches(msg, otpKeys.Resend):
				return m.send(m.email)
			}
			var cmd tea.Cmd
			m.code, cmd = m.code.Update(msg)
			return m, cmd

		case emailStepDone:
			if key.Matches(msg, doneKeys.Continue) {
				return m, transition(ScreenSettings, nil)
			}
		}
	}
	return m, nil
}

func (m EmailModel) handleResult(msg callResultMsg) (screen, tea.Cmd) {
	if msg.err != nil {
		m.notice = studentapi.ShortMessage(msg.err)
		return m, nil
	}

	switch v := msg.value.(type) {
	case sendResult:
		if !v.sent {
			m.notice = "The code could not be sent. Try again shortly."
			return m, nil
		}
		m.step = emailStepCode
		m.code = m.code.Reset()
		m.input.Blur()
		m.info = "Code sent to " + m.email
	case confirmResult:
		if !v.ok {
			m.notice = "That code is not valid or has expired"
			m.code = m.code.Reset()
			return m, nil
		}
		m.deps.registry.SetEmail(m.email)
		if err := m.deps.save(); err != nil {
			m.notice = "Email confirmed, but the profile could not be saved: " + err.Error()
		}
		m.step = emailStepDone
	}
	return m, nil
}

// View renders the current step
func (m EmailModel) View() string {
	mt := m.metrics()
	pad := lipgloss.NewStyle().PaddingLeft(mt.Padding)
	var b strings.Builder

	b.WriteString(pad.Render(TitleStyle.Render("Update email")))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	switch m.step {
	case emailStepAddress:
		if current := m.deps.registry.Profile.Email; current != "" {
			b.WriteString(pad.Render(RenderField("Current", current)))
			b.WriteString("\n")
		}
		m.input.Width = mt.ContentWidth - 2
		b.WriteString(pad.Render(m.input.View()))
	case emailStepCode:
		b.WriteString(pad.Width(mt.ContentWidth + mt.Padding).Render(
			SubtitleStyle.Render(fmt.Sprintf("Enter the %d-digit code sent to %s.", studentapi.OTPLength, m.email))))
		b.WriteString(strings.Repeat("\n", mt.Gap+1))
		b.WriteString(pad.Render(m.code.View(mt.SlotWidth, mt.ContentWidth)))
	case emailStepDone:
		b.WriteString(pad.Render(RenderSuccess("Email updated to "+m.email, mt.ContentWidth)))
	}
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	switch {
	case m.call.busy():
		b.WriteString(pad.Render(m.spinner.View() + " Please wait..."))
	case m.notice != "":
		b.WriteString(pad.Render(InlineErrorStyle.Render(m.notice)))
	case m.info != "":
		b.WriteString(pad.Render(LabelStyle.Render(m.info)))
	}
	return b.String()
}
