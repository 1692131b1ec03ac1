package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// renderLoadingPlaceholder renders an animated loading indicator.
// The frame is selected by the caller's frame counter.
func renderLoadingPlaceholder(width, height, frame int, text string) string {
	glyph := spinnerFrames[frame%len(spinnerFrames)]

	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	out := loadingStyle.Render(glyph + " " + text)
	if width <= 0 || height <= 0 {
		return out
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, out)
}

// spinnerTickMsg triggers a re-render for the loading spinner.
type spinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(_ time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}
