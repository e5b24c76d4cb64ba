package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/campuspass/internal/config"
	"github.com/muurk/campuspass/internal/studentapi"
)

// codeKeyMap is shared by the screens with a code input
type codeKeyMap struct {
	Move   key.Binding
	Delete key.Binding
	Submit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k codeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Delete, k.Submit}
}

// FullHelp returns keybindings for the expanded help view
func (k codeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Move, k.Delete, k.Submit}}
}

var codeKeys = codeKeyMap{
	Move:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "move")),
	Delete: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
}

// doneKeyMap is shown once a flow has finished
type doneKeyMap struct {
	Continue key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k doneKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Continue} }

// FullHelp returns keybindings for the expanded help view
func (k doneKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Continue}} }

var doneKeys = doneKeyMap{
	Continue: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return s
}

func studentRecord(s *studentapi.Student) *config.StudentRecord {
	if s == nil {
		return nil
	}
	return &config.StudentRecord{
		FullName:   s.FullName,
		StudentID:  s.StudentID,
		SchLevel:   s.SchLevel,
		Gender:     s.Gender,
		IsEnrolled: s.IsEnrolled,
	}
}

// SignupModel collects and verifies an 8-digit student ID
type SignupModel struct {
	frame
	code    CodeInput
	spinner spinner.Model
	call    call

	notice  string // inline validation or service message
	success string // set once verified
}

// NewSignupModel creates the student ID screen
func NewSignupModel(d *deps) SignupModel {
	return SignupModel{
		frame:   newFrame(ScreenSignup, d),
		code:    NewCodeInput(studentapi.StudentIDLength),
		spinner: newSpinner(),
	}
}

// Init initializes the screen
func (m SignupModel) Init() tea.Cmd { return nil }

// Keys returns the screen's key bindings
func (m SignupModel) Keys() help.KeyMap {
	if m.success != "" {
		return doneKeys
	}
	return codeKeys
}

// CapturingInput reports whether printable keys belong to a text field
func (m SignupModel) CapturingInput() bool { return m.success == "" }

// Busy reports whether a verification is outstanding
func (m SignupModel) Busy() bool { return m.call.busy() }

// Close releases the screen's resources
func (m SignupModel) Close() {
	m.call.abandon()
	m.release()
}

func (m SignupModel) submit() (SignupModel, tea.Cmd) {
	value := m.code.Value()
	if !m.code.Complete() || len(value) != studentapi.StudentIDLength {
		m.notice = fmt.Sprintf("Enter all %d digits", studentapi.StudentIDLength)
		return m, nil
	}

	m.notice = ""
	client := m.deps.client
	userID := m.deps.registry.Profile.UserID
	cmd := m.call.start(func(ctx context.Context) (any, error) {
		return client.Verify(ctx, userID, value, studentapi.RoleStudent)
	})
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// Update handles code entry and the verification result
func (m SignupModel) Update(msg tea.Msg) (screen, tea.Cmd) {
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
		if m.success != "" {
			if key.Matches(msg, doneKeys.Continue) {
				return m, transition(ScreenLanding, nil)
			}
			return m, nil
		}
		if m.call.busy() {
			return m, nil
		}
		if key.Matches(msg, codeKeys.Submit) {
			return m.submit()
		}
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SignupModel) handleResult(msg callResultMsg) (screen, tea.Cmd) {
	if msg.err != nil {
		m.notice = studentapi.ShortMessage(msg.err)
		return m, nil
	}

	result, _ := msg.value.(*studentapi.VerifyResult)
	switch result.Outcome() {
	case studentapi.OutcomeVerified:
		reg := m.deps.registry
		reg.SetVerifiedStudent(m.code.Value(), studentRecord(result.Student))
		if err := m.deps.save(); err != nil {
			m.notice = "Verified, but the profile could not be saved: " + err.Error()
		}
		m.success = "Student ID verified"
		if result.Student != nil {
			m.success = "Welcome, " + result.Student.FullName
		}
		return m, nil

	case studentapi.OutcomeNeedsConfirmation:
		return m, transition(ScreenConfirm, result.Student)

	default:
		m.notice = "Verification failed"
		if result != nil && result.Message != "" {
			m.notice = result.Message
		}
		return m, nil
	}
}

// View renders the code boxes and any status
func (m SignupModel) View() string {
	mt := m.metrics()
	pad := lipgloss.NewStyle().PaddingLeft(mt.Padding)
	var b strings.Builder

	b.WriteString(pad.Render(TitleStyle.Render("Sign up with Student ID")))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	if m.success != "" {
		b.WriteString(pad.Render(RenderSuccess(m.success, mt.ContentWidth)))
		return b.String()
	}

	if !mt.Compact {
		b.WriteString(pad.Width(mt.ContentWidth + mt.Padding).Render(
			SubtitleStyle.Render("Enter the 8-digit number printed on your student ID card.")))
		b.WriteString(strings.Repeat("\n", mt.Gap+1))
	}

	b.WriteString(pad.Render(m.code.View(mt.SlotWidth, mt.ContentWidth)))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	switch {
	case m.call.busy():
		b.WriteString(pad.Render(m.spinner.View() + " Verifying..."))
	case m.notice != "":
		b.WriteString(pad.Render(InlineErrorStyle.Render(m.notice)))
	}
	return b.String()
}
