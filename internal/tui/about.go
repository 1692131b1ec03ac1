package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/hackboard/internal/model"
	"github.com/tinytelemetry/hackboard/internal/session"
)

// About shows the static event information. It holds no resources.
type About struct {
	sess    *session.Session
	keys    KeyMap
	version string
}

func NewAbout(sess *session.Session, keys KeyMap, version string) *About {
	return &About{sess: sess, keys: keys, version: version}
}

func (a *About) ID() string { return PageAbout }

func (a *About) Init() tea.Cmd { return nil }

func (a *About) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(km, a.keys.ForceQuit), key.Matches(km, a.keys.Quit):
		return tea.Quit, nil
	case key.Matches(km, a.keys.Back):
		return nil, navTo(PageBoard)
	}
	return nil, nil
}

func (a *About) View(width, height int) string {
	ev := model.DefaultEventInfo()
	if a.sess != nil {
		if doc := a.sess.Snapshot().Document; doc != nil {
			ev = doc.Event
		}
	}

	lines := []string{
		titleStyle.Render(ev.Title),
		subtitleStyle.Render(ev.Subtitle),
		"",
		renderFooter(ev),
	}
	if len(ev.Dates) > 0 {
		lines = append(lines, "", sectionTitleStyle.Render("Schedule"))
		for _, d := range ev.Dates {
			lines = append(lines, mutedStyle.Render(d.Label))
		}
	}
	if a.version != "" {
		lines = append(lines, "", mutedStyle.Render("hackboard "+a.version))
	}
	lines = append(lines, "", mutedStyle.Render("esc: back to the board • q: quit"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(1, 4).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
