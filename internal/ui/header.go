package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled value in a header or result.
type Field struct {
	Key   string
	Value string
}

// Header is a command banner: title, the command as typed, and parameters.
type Header struct {
	Title   string  // e.g., "VERIFY STUDENT ID"
	Command string  // e.g., "campuspass verify 20231145"
	Params  []Field // e.g., {"Backend", "http://127.0.0.1:8787"}
	Width   int
}

// NewHeader creates a header sized to the terminal
func NewHeader(title, command string, params ...Field) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the rendering width
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	top := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(h.Title)),
		HeaderCommandStyle.Render(h.Command),
	)

	content := top
	if len(h.Params) > 0 {
		divider := lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Render(strings.Repeat("─", width-6))
		content = lipgloss.JoinVertical(lipgloss.Left, top, divider, renderFields(h.Params, "  "))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}

// renderFields aligns keys to the longest one.
func renderFields(fields []Field, indent string) string {
	keyWidth := 0
	for _, f := range fields {
		if n := lipgloss.Width(f.Key) + 1; n > keyWidth {
			keyWidth = n
		}
	}

	lines := make([]string, len(fields))
	for i, f := range fields {
		key := lipgloss.NewStyle().Foreground(MutedColor).Width(keyWidth).Render(f.Key + ":")
		lines[i] = indent + key + " " + ValueStyle.Render(f.Value)
	}
	return strings.Join(lines, "\n")
}
