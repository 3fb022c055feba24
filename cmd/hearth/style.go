package main

import "github.com/charmbracelet/lipgloss"

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleName    = lipgloss.NewStyle().Bold(true)
	styleOutcome = map[string]lipgloss.Style{
		"OK":       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"NO_MATCH": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"FAILED":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

func renderOutcome(outcome string) string {
	if s, ok := styleOutcome[outcome]; ok {
		return s.Render(outcome)
	}
	return outcome
}
