package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muurk/campuspass/internal/config"
	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/responsive"
	"github.com/muurk/campuspass/internal/studentapi"
	"go.uber.org/zap"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenLanding   Screen = "landing"
	ScreenSettings  Screen = "settings"
	ScreenTutorials Screen = "tutorials"
	ScreenEmail     Screen = "email"
	ScreenRecovery  Screen = "recovery"
	ScreenSignup    Screen = "signup"
	ScreenConfirm   Screen = "confirm"
)

// Messages for screen transitions
type screenTransitionMsg struct {
	screen Screen
	data   interface{}
}

type goBackMsg struct{}

func transition(screen Screen, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return screenTransitionMsg{screen: screen, data: data}
	}
}

func goBack() tea.Msg { return goBackMsg{} }

// Collaborator is the set of backend calls the screens make.
// *studentapi.Client implements it.
type Collaborator interface {
	Verify(ctx context.Context, userID, studentID, role string) (*studentapi.VerifyResult, error)
	Confirm(ctx context.Context, userID, studentID string) (*studentapi.ConfirmResult, error)
	SendVerification(ctx context.Context, email string) (bool, error)
	ConfirmEmail(ctx context.Context, userID, email, code string) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) (bool, error)
}

// Options configures NewAppModel.
type Options struct {
	Client   Collaborator
	Registry *config.Registry
	Monitor  *responsive.Monitor

	// Terminal cell to viewport unit conversion. Zero uses the defaults.
	UnitsPerColumn float64
	UnitsPerRow    float64
}

// deps is what every screen shares.
type deps struct {
	client   Collaborator
	registry *config.Registry
	monitor  *responsive.Monitor
}

// save persists the registry; failures are logged and returned for display.
func (d *deps) save() error {
	if err := d.registry.Save(); err != nil {
		logging.Error("Failed to save profile", zap.Error(err))
		return err
	}
	return nil
}

// screen is implemented by every screen model.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	Name() Screen
	Keys() help.KeyMap

	// CapturingInput reports whether printable keys belong to a text field.
	CapturingInput() bool

	// Close releases the viewport subscription and abandons in-flight calls.
	Close()
}

// frame is the part every screen embeds: its name, the shared
// dependencies and its own viewport subscription.
type frame struct {
	name Screen
	deps *deps
	sub  *responsive.Subscription
}

func newFrame(name Screen, d *deps) frame {
	return frame{name: name, deps: d, sub: d.monitor.Subscribe(nil)}
}

// Name returns the screen identifier
func (f frame) Name() Screen { return f.name }

// metrics resolves the screen's layout for the latest viewport.
func (f frame) metrics() Metrics {
	return Layout(f.name, f.sub.Viewport())
}

func (f frame) release() { f.sub.Close() }

// appKeyMap holds bindings that work on every screen
type appKeyMap struct {
	Back key.Binding
	Quit key.Binding
}

var appKeys = appKeyMap{
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
	Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// screenKeys merges a screen's bindings with the global ones for help.
type screenKeys struct {
	screen help.KeyMap
	global []key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k screenKeys) ShortHelp() []key.Binding {
	return append(append([]key.Binding(nil), k.screen.ShortHelp()...), k.global...)
}

// FullHelp returns keybindings for the expanded help view
func (k screenKeys) FullHelp() [][]key.Binding {
	return append(k.screen.FullHelp(), k.global)
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen  Screen
	PreviousScreen Screen

	active screen
	footer Footer
	deps   *deps

	unitsPerColumn float64
	unitsPerRow    float64

	// UI state
	Width  int
	Height int

	Help help.Model
}

// NewAppModel creates a new application model starting at the specified screen
func NewAppModel(opts Options, start Screen) AppModel {
	monitor := opts.Monitor
	if monitor == nil {
		monitor = responsive.NewMonitor(responsive.FromCells(80, 24, opts.UnitsPerColumn, opts.UnitsPerRow))
	}
	registry := opts.Registry
	if registry == nil {
		registry = config.NewRegistry()
	}
	m := AppModel{
		CurrentScreen:  start,
		deps:           &deps{client: opts.Client, registry: registry, monitor: monitor},
		unitsPerColumn: opts.UnitsPerColumn,
		unitsPerRow:    opts.UnitsPerRow,
		Help:           help.New(),
	}
	m.active = m.newScreen(start, nil)
	m.CurrentScreen = m.active.Name()
	m.footer = Footer{Active: tabFor(m.CurrentScreen)}

	vp := monitor.Current()
	m.Width, m.Height = vp.Columns, vp.Rows
	return m
}

// Monitor returns the viewport monitor the screens subscribe to.
func (m AppModel) Monitor() *responsive.Monitor {
	return m.deps.monitor
}

// Registry returns the profile registry.
func (m AppModel) Registry() *config.Registry {
	return m.deps.registry
}

// Close releases the active screen. Call it after the program exits.
func (m AppModel) Close() {
	if m.active != nil {
		m.active.Close()
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.active.Init()
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.deps.monitor.Publish(responsive.FromCells(msg.Width, msg.Height, m.unitsPerColumn, m.unitsPerRow))
		// Screens with their own scroll areas resize them here, after the publish.
		return m.updateCurrentScreen(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, appKeys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, appKeys.Back) && m.CurrentScreen != ScreenLanding:
			return m.transitionTo(ScreenLanding, nil)
		}
		var cmd tea.Cmd
		if m.footer, cmd = m.footer.Update(msg, m.active.CapturingInput()); cmd != nil {
			return m, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		if m.footer, cmd = m.footer.Update(msg, m.active.CapturingInput()); cmd != nil {
			return m, cmd
		}

	case screenTransitionMsg:
		return m.transitionTo(msg.screen, msg.data)

	case goBackMsg:
		return m.goBack()
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

// newScreen builds the model for screen. data carries screen-specific
// input, such as the student record for the confirm screen.
func (m AppModel) newScreen(s Screen, data interface{}) screen {
	switch s {
	case ScreenSettings:
		return NewSettingsModel(m.deps)
	case ScreenTutorials:
		return NewTutorialsModel(m.deps)
	case ScreenEmail:
		return NewEmailModel(m.deps)
	case ScreenRecovery:
		return NewRecoveryModel(m.deps)
	case ScreenSignup:
		return NewSignupModel(m.deps)
	case ScreenConfirm:
		if student, ok := data.(*studentapi.Student); ok && student != nil {
			return NewConfirmModel(m.deps, student)
		}
		logging.Warn("Confirm screen opened without a student record")
		return NewSignupModel(m.deps)
	default:
		return NewLandingModel(m.deps)
	}
}

// transitionTo transitions to a new screen, tearing down the current one
func (m AppModel) transitionTo(s Screen, data interface{}) (tea.Model, tea.Cmd) {
	vp := m.deps.monitor.Current()
	logging.LogScreenChange(string(m.CurrentScreen), string(s), vp.Width, vp.Label().String())

	m.active.Close()

	next := m.newScreen(s, data)
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = next.Name()
	m.active = next
	m.footer.Active = tabFor(m.CurrentScreen)

	return m, next.Init()
}

// goBack returns to the previous screen, or home when there is none
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	target := m.PreviousScreen
	if target == "" || target == m.CurrentScreen || target == ScreenConfirm {
		target = ScreenLanding
	}
	if m.CurrentScreen == ScreenConfirm {
		target = ScreenSignup
	}
	return m.transitionTo(target, nil)
}

// View renders the current screen inside the application container
func (m AppModel) View() string {
	width, height := m.Width, m.Height
	if width <= 0 || height <= 0 {
		vp := m.deps.monitor.Current()
		width, height = vp.Columns, vp.Rows
	}
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}

	label := m.deps.monitor.Current().Label()
	compact := label == responsive.SmallMobile

	keys := screenKeys{screen: m.active.Keys(), global: []key.Binding{appKeys.Back, appKeys.Quit}}
	m.Help.Width = width - 6
	footer := m.footer.View(compact) + "\n" + m.Help.View(keys)

	return zone.Scan(RenderApplicationContainer(
		BuildHeaderContent(label.String()),
		m.active.View(),
		footer,
		width,
		height,
	))
}
