package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorNavy    = lipgloss.Color("#1E1B4B")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorGray    = lipgloss.Color("#9CA3AF")
	ColorBlue    = lipgloss.Color("#93C5FD")
	ColorPurple  = lipgloss.Color("#A78BFA")
	ColorYellow  = lipgloss.Color("#FACC15")
	ColorRed     = lipgloss.Color("#EF4444")
	ColorAmber   = lipgloss.Color("#F59E0B")
	ColorEmerald = lipgloss.Color("#10B981")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	taglineStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(ColorWhite).
				Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	pillStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(0, 2)

	expiredPillStyle = pillStyle.
				Foreground(ColorYellow).
				BorderForeground(ColorRed)

	selectedDateStyle = lipgloss.NewStyle().
				Foreground(ColorNavy).
				Background(ColorBlue).
				Bold(true).
				Padding(0, 1)

	dateStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite)

	warnStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorAmber).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)
)

// countdownBlock renders one zero-padded countdown cell with its caption.
func countdownBlock(value int, caption string, color lipgloss.Color) string {
	box := lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(color).
		Bold(true).
		Padding(1, 3).
		Render(fmt.Sprintf("%02d", value))
	label := lipgloss.NewStyle().
		Foreground(ColorBlue).
		Width(lipgloss.Width(box)).
		Align(lipgloss.Center).
		Render(caption)
	return lipgloss.JoinVertical(lipgloss.Center, box, label)
}
