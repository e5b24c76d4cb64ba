package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/campuspass/internal/version"
)

// Application branding constants
const (
	AppName = "CAMPUSPASS"
	Tagline = "Your student account, in one place"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// MinContentWidth is the narrowest content column any screen renders into.
const MinContentWidth = 20

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#2563EB") // Blue
	SecondaryColor = lipgloss.Color("#16A34A") // Green
	AccentColor    = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#DC2626") // Red

	TextColor   = lipgloss.Color("#F8FAFC")
	SubtleColor = lipgloss.Color("#64748B")
	BorderColor = lipgloss.Color("#2563EB")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 1)

	SuccessBoxStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)

	InfoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	InlineErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	SlotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Align(lipgloss.Center)

	FocusedSlotStyle = SlotStyle.
				BorderForeground(AccentColor).
				Foreground(AccentColor).
				Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)
)

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render(text)
}

// RenderField renders a "label: value" line.
func RenderField(label, value string) string {
	return LabelStyle.Render(label+": ") + ValueStyle.Render(value)
}

// RenderError renders an error panel
func RenderError(text string, width int) string {
	return ErrorBoxStyle.Width(width).Render("✗ " + text)
}

// RenderSuccess renders a success panel
func RenderSuccess(text string, width int) string {
	return SuccessBoxStyle.Width(width).Render("✓ " + text)
}

// BuildHeaderContent shows the app name, version and current breakpoint.
func BuildHeaderContent(breakpoint string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(breakpoint)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps every screen: header on top, content,
// then the footer (nav tabs and help) pinned below, inside one border that
// fills the terminal.
//
//	func (m Model) View() string {
//	    return RenderApplicationContainer(header, content, footer, m.Width, m.Height)
//	}
func RenderApplicationContainer(header, content, footer string, terminalWidth, terminalHeight int) string {
	inner := terminalWidth - 4
	if inner < MinContentWidth {
		inner = MinContentWidth
	}

	styledHeader := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(inner).
		Padding(0, 1).
		Render(header)

	styledFooter := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(inner).
		Padding(0, 1).
		Render(footer)

	// Content fills whatever the header and footer leave, so the footer
	// stays at the bottom.
	bodyHeight := terminalHeight - 2 - lipgloss.Height(styledHeader) - lipgloss.Height(styledFooter)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	styledContent := lipgloss.NewStyle().
		Width(inner).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(content)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		AlignVertical(lipgloss.Top).
		Render(lipgloss.JoinVertical(lipgloss.Left, styledHeader, styledContent, styledFooter))

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}
