package ui

import "github.com/charmbracelet/lipgloss"

const (
	accent    = lipgloss.Color("#00796b")
	lightBg   = lipgloss.Color("#e0f7fa")
	lightText = lipgloss.Color("#333333")
	darkBg    = lipgloss.Color("#121212")
	darkText  = lipgloss.Color("#cccccc")
	darkMuted = lipgloss.Color("#888888")
	danger    = lipgloss.Color("#d32f2f")
)

type styles struct {
	screen lipgloss.Style
	title  lipgloss.Style
	task   lipgloss.Style
	done   lipgloss.Style
	cursor lipgloss.Style
	empty  lipgloss.Style
	modal  lipgloss.Style
	help   lipgloss.Style
}

func stylesFor(dark bool) styles {
	bg, fg, title := lightBg, lightText, lipgloss.Color(accent)
	if dark {
		bg, fg, title = darkBg, darkText, lipgloss.Color("#ffffff")
	}

	return styles{
		screen: lipgloss.NewStyle().Background(bg).Foreground(fg).Padding(1, 2),
		title:  lipgloss.NewStyle().Foreground(title).Bold(true),
		task:   lipgloss.NewStyle().Foreground(fg),
		done:   lipgloss.NewStyle().Foreground(darkMuted).Strikethrough(true).Faint(true),
		cursor: lipgloss.NewStyle().Foreground(accent).Bold(true),
		empty:  lipgloss.NewStyle().Foreground(darkMuted).Italic(true),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 1),
		help: lipgloss.NewStyle().Foreground(darkMuted),
	}
}
