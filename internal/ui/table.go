package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders rows under headers with a rounded border.
func RenderTable(headers []string, rows [][]string, width int) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(TextColor).Padding(0, 1)
	altStyle := cellStyle.Foreground(MutedColor)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return altStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}
