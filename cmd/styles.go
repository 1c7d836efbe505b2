package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used across the CLI commands
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")). // Gold/Amber
			Bold(true).
			Padding(1, 0)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")) // Light Gray

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6347")). // Tomato red
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")) // Sky blue

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFA500")).
			Padding(0, 1)
)

type row struct {
	label string
	value string
}

func field(label string, value interface{}) row {
	return row{label: label, value: fmt.Sprint(value)}
}

// renderCard lays rows out as an aligned label/value box under title.
func renderCard(title string, rows []row) string {
	width := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.label); w > width {
			width = w
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, labelStyle.Render(title))
	for _, r := range rows {
		value := r.value
		if value == "" {
			value = promptStyle.Render("-")
		}
		label := labelStyle.Render(r.label + strings.Repeat(" ", width-lipgloss.Width(r.label)))
		lines = append(lines, label+"  "+value)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
