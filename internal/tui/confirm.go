package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/campuspass/internal/studentapi"
)

// confirmKeyMap defines key bindings for the confirm screen
type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k confirmKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Yes, k.No} }

// FullHelp returns keybindings for the expanded help view
func (k confirmKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Yes, k.No}} }

var confirmKeys = confirmKeyMap{
	Yes: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "this is me")),
	No:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "not me")),
}

// ConfirmModel asks the user to accept the student record found for their ID
type ConfirmModel struct {
	frame
	student *studentapi.Student
	spinner spinner.Model
	call    call

	notice string
	done   bool
}

// NewConfirmModel creates the confirm screen for student
func NewConfirmModel(d *deps, student *studentapi.Student) ConfirmModel {
	return ConfirmModel{
		frame:   newFrame(ScreenConfirm, d),
		student: student,
		spinner: newSpinner(),
	}
}

// Init initializes the screen
func (m ConfirmModel) Init() tea.Cmd { return nil }

// Keys returns the screen's key bindings
func (m ConfirmModel) Keys() help.KeyMap {
	if m.done {
		return doneKeys
	}
	return confirmKeys
}

// CapturingInput reports whether printable keys belong to a text field
func (m ConfirmModel) CapturingInput() bool { return false }

// Close releases the screen's resources
func (m ConfirmModel) Close() {
	m.call.abandon()
	m.release()
}

// Update handles the y/n decision and the confirmation result
func (m ConfirmModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case callResultMsg:
		if !m.call.accept(msg) {
			return m, nil
		}
		if msg.err != nil {
			m.notice = studentapi.ShortMessage(msg.err)
			return m, nil
		}
		result, _ := msg.value.(*studentapi.ConfirmResult)
		if result == nil || !result.Success {
			m.notice = "Could not confirm this student ID"
			if result != nil && result.Message != "" {
				m.notice = result.Message
			}
			return m, nil
		}
		record := m.student
		if result.Student != nil {
			record = result.Student
		}
		m.deps.registry.SetVerifiedStudent(record.StudentID, studentRecord(record))
		if err := m.deps.save(); err != nil {
			m.notice = "Confirmed, but the profile could not be saved: " + err.Error()
		}
		m.done = true
		return m, nil

	case spinner.TickMsg:
		if !m.call.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.done {
			if key.Matches(msg, doneKeys.Continue) {
				return m, transition(ScreenLanding, nil)
			}
			return m, nil
		}
		if m.call.busy() {
			return m, nil
		}
		switch {
		case key.Matches(msg, confirmKeys.Yes):
			m.notice = ""
			client := m.deps.client
			userID := m.deps.registry.Profile.UserID
			studentID := m.student.StudentID
			cmd := m.call.start(func(ctx context.Context) (any, error) {
				return client.Confirm(ctx, userID, studentID)
			})
			return m, tea.Batch(cmd, m.spinner.Tick)
		case key.Matches(msg, confirmKeys.No):
			return m, goBack
		}
	}
	return m, nil
}

func enrollment(enrolled bool) string {
	if enrolled {
		return "Enrolled"
	}
	return "Not enrolled"
}

// View renders the student record
func (m ConfirmModel) View() string {
	mt := m.metrics()
	pad := lipgloss.NewStyle().PaddingLeft(mt.Padding)
	var b strings.Builder

	b.WriteString(pad.Render(TitleStyle.Render("Is this you?")))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	s := m.student
	details := strings.Join([]string{
		RenderField("Name", s.FullName),
		RenderField("Student ID", s.StudentID),
		RenderField("Level", s.SchLevel),
		RenderField("Gender", s.Gender),
		RenderField("Status", enrollment(s.IsEnrolled)),
	}, "\n")
	b.WriteString(pad.Render(InfoBoxStyle.Width(mt.ContentWidth).Render(details)))
	b.WriteString(strings.Repeat("\n", mt.Gap+1))

	switch {
	case m.done:
		b.WriteString(pad.Render(RenderSuccess("Student ID linked to your account", mt.ContentWidth)))
	case m.call.busy():
		b.WriteString(pad.Render(m.spinner.View() + " Confirming..."))
	case m.notice != "":
		b.WriteString(pad.Render(InlineErrorStyle.Render(m.notice)))
	default:
		b.WriteString(pad.Render(LabelStyle.Render("Press y to confirm or n to go back.")))
	}
	return b.String()
}
