package engine

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the two highlighted display states.
type Styles struct {
	// Paused is applied to the whole clock line while the countdown is
	// paused.
	Paused lipgloss.Style
	// Prompt is the inverted phase of the flashing reset prompt.
	Prompt lipgloss.Style
}

// DefaultStyles uses basic ANSI colors so the display degrades sanely on
// plain terminals.
func DefaultStyles() Styles {
	blue := lipgloss.Color("4")
	return Styles{
		Paused: lipgloss.NewStyle().Bold(true).Foreground(blue),
		Prompt: lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(blue),
	}
}
