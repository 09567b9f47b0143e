package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	valueStyle      = lipgloss.NewStyle().Bold(true).Width(6).Align(lipgloss.Right)
	sparkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	statusStyles = map[string]lipgloss.Style{
		"connected":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"disconnected": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"no_data":      lipgloss.NewStyle().Faint(true),
	}
)
