package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/hackboard/internal/model"
	"github.com/tinytelemetry/hackboard/internal/session"
	"github.com/tinytelemetry/hackboard/internal/teams"
)

const (
	statusInProgress = "Hackathon in Progress"
	statusTimesUp    = "Time's up!"
	emptyTeamsText   = "No teams registered for this date"
)

func (b *Board) View(width, height int) string {
	if b.loading {
		return renderLoadingPlaceholder(width, height, b.frame, "Loading hackathon data...")
	}
	if b.snap.State == session.StateError {
		return b.renderError(width, height)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		b.renderHeader(),
		"",
		b.renderDateSelector(),
		"",
		b.renderCountdown(),
		"",
		b.renderTeams(),
		"",
		renderFooter(b.event()),
	)
	if width > 0 {
		body = lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		b.renderStatusLine(width),
		b.help.View(b.keys),
	)
}

func (b *Board) event() model.EventInfo {
	if b.snap.Document == nil {
		return model.DefaultEventInfo()
	}
	return b.snap.Document.Event
}

func (b *Board) renderHeader() string {
	ev := b.event()
	lines := []string{titleStyle.Render(ev.Title)}
	if ev.Subtitle != "" {
		lines = append(lines, subtitleStyle.Render(ev.Subtitle))
	}
	if ev.Tagline != "" {
		lines = append(lines, taglineStyle.Render(ev.Tagline))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderDateSelector lists every date with its team count and highlights
// the selected one.
func (b *Board) renderDateSelector() string {
	dates := b.dates()
	if len(dates) == 0 {
		return mutedStyle.Render("No dates configured")
	}

	counts := teams.CountByDay(b.snap.Document.Teams)
	items := make([]string, 0, len(dates))
	for i, d := range dates {
		text := fmt.Sprintf("%s (%d)", d.Label, counts[teams.DayKey(d.Value)])
		if i == b.dateIdx {
			items = append(items, selectedDateStyle.Render(text))
		} else {
			items = append(items, dateStyle.Render(text))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		sectionTitleStyle.Render("Select Date"),
		lipgloss.JoinHorizontal(lipgloss.Top, items...),
	)
}

func (b *Board) renderCountdown() string {
	r := b.remaining
	blocks := lipgloss.JoinHorizontal(lipgloss.Top,
		countdownBlock(r.Hours, "Hours", ColorRed),
		"  ",
		countdownBlock(r.Minutes, "Minutes", ColorAmber),
		"  ",
		countdownBlock(r.Seconds, "Seconds", ColorEmerald),
	)

	pill := pillStyle.Render("⚡ " + statusInProgress)
	if b.expired {
		pill = expiredPillStyle.Render(statusTimesUp)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		sectionTitleStyle.Render("Time Remaining"),
		"",
		blocks,
		pill,
	)
}

func (b *Board) renderTeams() string {
	title := sectionTitleStyle.Render("Registered Teams - " + b.SelectedDate())
	count := mutedStyle.Render(fmt.Sprintf("%d teams registered for this date", len(b.visible)))

	if len(b.visible) == 0 {
		return lipgloss.JoinVertical(lipgloss.Center, title, count, "", mutedStyle.Render(emptyTeamsText))
	}
	return lipgloss.JoinVertical(lipgloss.Center, title, count, "", b.table.View())
}

func renderFooter(ev model.EventInfo) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(ColorBlue).Render("🏆 Best of luck to all participants! ✨"),
		mutedStyle.Render("May the best team win the " + ev.Title),
	}
	if ev.Tagline != "" {
		lines = append(lines, mutedStyle.Render(ev.Tagline))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderStatusLine shows session state on the left and the deadline on the right.
func (b *Board) renderStatusLine(width int) string {
	var left string
	switch b.snap.State {
	case session.StateDegraded:
		msg := " ⚠ degraded: deadline is not persisted"
		if b.snap.Err != nil {
			msg += " (" + b.snap.Err.Error() + ")"
		}
		left = warnStyle.Render(msg)
	case session.StateReady:
		if b.expired {
			left = statusBarStyle.Render(" ● finished")
		} else {
			left = statusBarStyle.Render(" ● live")
		}
	default:
		left = statusBarStyle.Render(" " + b.snap.State.String())
	}

	var right string
	if !b.snap.Deadline.At.IsZero() {
		origin := "new"
		if b.snap.Deadline.Restored {
			origin = "restored"
		}
		right = statusBarStyle.Render(fmt.Sprintf("deadline %s (%s) ",
			b.snap.Deadline.At.Local().Format("Jan 2 15:04:05"), origin))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + statusBarStyle.Render(strings.Repeat(" ", gap)) + right
}

func (b *Board) renderError(width, height int) string {
	msg := "unknown error"
	if b.snap.Err != nil {
		msg = b.snap.Err.Error()
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		errorStyle.Render("Failed to load hackathon data"),
		"",
		mutedStyle.Render(msg),
		"",
		subtitleStyle.Render("press r to reload"),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorRed).
		Padding(1, 3).
		Render(content)

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, box) +
		"\n" + b.help.View(b.keys)
}
