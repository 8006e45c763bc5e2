package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)

	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	fadingStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	contentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(4)

	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)
