package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (board, about).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// Closer is implemented by pages that hold resources while visible. The App
// calls Close when navigating away from the page.
type Closer interface {
	Close()
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
}

func navTo(id string) *PageNav { return &PageNav{PageID: id} }
