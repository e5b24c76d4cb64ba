package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/tutorials"
	"go.uber.org/zap"
)

// tutorialItem wraps a Tutorial for use with bubbles/list
type tutorialItem struct {
	tutorial tutorials.Tutorial
	done     bool
}

// FilterValue implements list.Item
func (i tutorialItem) FilterValue() string { return i.tutorial.Title }

// tutorialDelegate renders one tutorial per two lines
type tutorialDelegate struct{}

func (d tutorialDelegate) Height() int                             { return 2 }
func (d tutorialDelegate) Spacing() int                            { return 1 }
func (d tutorialDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d tutorialDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(tutorialItem)
	if !ok {
		return
	}
	mark := "  "
	if ti.done {
		mark = "✓ "
	}
	title := RenderMenuItem(mark+ti.tutorial.Title, index == m.Index())
	_, _ = fmt.Fprintf(w, "%s\n%s", title, MenuItemStyle.Render("    "+SubtitleStyle.Render(ti.tutorial.Summary)))
}

// readerKeyMap defines key bindings while reading a tutorial
type readerKeyMap struct {
	Scroll key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k readerKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Scroll, k.Back} }

// FullHelp returns keybindings for the expanded help view
func (k readerKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Scroll, k.Back}} }

var readerKeys = readerKeyMap{
	Scroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
	Back:   key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "list")),
}

// TutorialsModel lists the embedded tutorials and shows one at a time
type TutorialsModel struct {
	frame
	all     []tutorials.Tutorial
	list    list.Model
	reader  viewport.Model
	reading *tutorials.Tutorial
	notice  string
}

// NewTutorialsModel creates the tutorials screen
func NewTutorialsModel(d *deps) TutorialsModel {
	m := TutorialsModel{
		frame: newFrame(ScreenTutorials, d),
		all:   tutorials.All(),
	}

	l := list.New(m.items(), tutorialDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.KeyMap.Quit.SetEnabled(false)
	m.list = l
	m.reader = viewport.New(0, 0)
	m.resize()
	return m
}

func (m TutorialsModel) items() []list.Item {
	items := make([]list.Item, len(m.all))
	for i, t := range m.all {
		items[i] = tutorialItem{tutorial: t, done: m.deps.registry.TutorialComplete(t.ID)}
	}
	return items
}

// bodyHeight is the rows left for the list or reader after the title, the
// container chrome and the footer.
func (m TutorialsModel) bodyHeight() int {
	h := m.sub.Viewport().Rows - 12
	if h < 4 {
		h = 4
	}
	return h
}

func (m *TutorialsModel) resize() {
	mt := m.metrics()
	m.list.SetSize(mt.ContentWidth, m.bodyHeight())
	m.reader.Width = mt.ContentWidth
	m.reader.Height = m.bodyHeight()
	if m.reading != nil {
		m.reader.SetContent(m.render(*m.reading, mt.ContentWidth))
	}
}

// render turns markdown into styled text wrapped at width.
func (m TutorialsModel) render(t tutorials.Tutorial, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.Warn("Markdown renderer unavailable", zap.Error(err))
		return t.Body
	}
	out, err := r.Render(t.Body)
	if err != nil {
		logging.Warn("Failed to render tutorial", zap.String("id", t.ID), zap.Error(err))
		return t.Body
	}
	return out
}

// Init initializes the screen
func (m TutorialsModel) Init() tea.Cmd { return nil }

// Keys returns the screen's key bindings
func (m TutorialsModel) Keys() help.KeyMap {
	if m.reading != nil {
		return readerKeys
	}
	return menuKeys
}

// CapturingInput reports whether printable keys belong to a text field
func (m TutorialsModel) CapturingInput() bool { return false }

// Close releases the screen's resources
func (m TutorialsModel) Close() { m.release() }

// Reading returns the ID of the open tutorial, or "".
func (m TutorialsModel) Reading() string {
	if m.reading == nil {
		return ""
	}
	return m.reading.ID
}

// Update handles list navigation, opening tutorials and scrolling
func (m TutorialsModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize()
		return m, nil
	}

	if m.reading == nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, menuKeys.Select) {
			if item, ok := m.list.SelectedItem().(tutorialItem); ok {
				return m.open(item.tutorial)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, readerKeys.Back) {
		m.reading = nil
		m.list.SetItems(m.items())
		return m, nil
	}

	var cmd tea.Cmd
	m.reader, cmd = m.reader.Update(msg)
	m.markIfFinished()
	return m, cmd
}

func (m TutorialsModel) open(t tutorials.Tutorial) (screen, tea.Cmd) {
	m.reading = &t
	m.notice = ""
	m.resize()
	m.reader.GotoTop()
	m.markIfFinished()
	return m, nil
}

// markIfFinished records the open tutorial once its end is on screen.
func (m *TutorialsModel) markIfFinished() {
	if m.reading == nil || !m.reader.AtBottom() {
		return
	}
	reg := m.deps.registry
	if reg.TutorialComplete(m.reading.ID) {
		return
	}
	reg.MarkTutorialComplete(m.reading.ID)
	if err := m.deps.save(); err != nil {
		m.notice = "Progress could not be saved: " + err.Error()
		return
	}
	m.notice = "Marked as complete"
}

// View renders the list or the open tutorial
func (m TutorialsModel) View() string {
	mt := m.metrics()
	pad := lipgloss.NewStyle().PaddingLeft(mt.Padding)
	var b strings.Builder

	title := "Tutorials"
	if m.reading != nil {
		title = m.reading.Title
	}
	b.WriteString(pad.Render(TitleStyle.Render(title)))
	b.WriteString("\n\n")

	if m.reading == nil {
		b.WriteString(pad.Render(m.list.View()))
		return b.String()
	}

	b.WriteString(pad.Render(m.reader.View()))
	b.WriteString("\n")
	status := fmt.Sprintf("%3.0f%%", m.reader.ScrollPercent()*100)
	if m.notice != "" {
		status += "  " + m.notice
	}
	b.WriteString(pad.Render(LabelStyle.Render(status)))
	return b.String()
}
