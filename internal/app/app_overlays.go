package app

import "github.com/charmbracelet/lipgloss"

func (a App) overlayCenter(overlay string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(a.theme.Base),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	gap := max(0, width-lipgloss.Width(overlay)-2)
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
