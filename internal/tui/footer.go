package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Tab is a footer navigation destination.
type Tab int

const (
	TabHome Tab = iota
	TabTutorials
	TabSettings
)

type tabSpec struct {
	key    string
	label  string
	glyph  string
	zoneID string
	screen Screen
}

var tabs = []tabSpec{
	TabHome:      {key: "1", label: "Home", glyph: "⌂", zoneID: "footer-tab-home", screen: ScreenLanding},
	TabTutorials: {key: "2", label: "Tutorials", glyph: "?", zoneID: "footer-tab-tutorials", screen: ScreenTutorials},
	TabSettings:  {key: "3", label: "Settings", glyph: "⚙", zoneID: "footer-tab-settings", screen: ScreenSettings},
}

// tabFor returns the tab a screen belongs to.
func tabFor(screen Screen) Tab {
	switch screen {
	case ScreenTutorials:
		return TabTutorials
	case ScreenSettings, ScreenEmail:
		return TabSettings
	default:
		return TabHome
	}
}

// Footer is the navigation bar shared by every screen.
type Footer struct {
	Active Tab
}

// Update maps number keys and clicks to a screen change. Number keys are
// ignored while the screen is taking text input, so digits reach the field.
func (f Footer) Update(msg tea.Msg, capturingInput bool) (Footer, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if capturingInput {
			return f, nil
		}
		for i, t := range tabs {
			if msg.String() == t.key {
				return f.selectTab(Tab(i))
			}
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return f, nil
		}
		for i, t := range tabs {
			if z := zone.Get(t.zoneID); z != nil && z.InBounds(msg) {
				return f.selectTab(Tab(i))
			}
		}
	}
	return f, nil
}

func (f Footer) selectTab(t Tab) (Footer, tea.Cmd) {
	f.Active = t
	screen := tabs[t].screen
	return f, func() tea.Msg {
		return screenTransitionMsg{screen: screen}
	}
}

// View renders the tabs. Compact viewports get glyphs instead of words.
func (f Footer) View(compact bool) string {
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := t.key + " " + t.label
		if compact {
			label = t.glyph
		}
		style := TabStyle
		if Tab(i) == f.Active {
			style = ActiveTabStyle
		}
		parts[i] = zone.Mark(t.zoneID, style.Render(label))
	}
	return strings.Join(parts, " ")
}
