package tui

import tea "github.com/charmbracelet/bubbletea"

const (
	PageBoard = "board"
	PageAbout = "about"
)

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	var firstID string
	for i, p := range pages {
		pageMap[p.ID()] = p
		if i == 0 {
			firstID = p.ID()
		}
	}
	return &App{
		pages:      pageMap,
		activePage: firstID,
	}
}

// ActivePage returns the ID of the page currently shown.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Sizes go to every page so hidden pages lay out correctly on return.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
		for id, p := range a.pages {
			if id == a.activePage {
				continue
			}
			cmd, _ := p.Update(wsm)
			cmds = append(cmds, cmd)
		}
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, tea.Batch(cmds...)
	}

	cmd, nav := p.Update(msg)
	cmds = append(cmds, cmd)

	if nav != nil && nav.PageID != a.activePage {
		if next, exists := a.pages[nav.PageID]; exists {
			if c, ok := p.(Closer); ok {
				c.Close()
			}
			a.activePage = nav.PageID
			cmds = append(cmds, next.Init())
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

// Close releases every page that holds resources. Call it after the
// program exits.
func (a *App) Close() {
	for _, p := range a.pages {
		if c, ok := p.(Closer); ok {
			c.Close()
		}
	}
}
