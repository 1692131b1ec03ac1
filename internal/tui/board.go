package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tinytelemetry/hackboard/internal/countdown"
	"github.com/tinytelemetry/hackboard/internal/model"
	"github.com/tinytelemetry/hackboard/internal/session"
	"github.com/tinytelemetry/hackboard/internal/teams"
)

// docLoadedMsg carries the session state after a load or reload.
type docLoadedMsg struct {
	snap session.Snapshot
}

// remainingMsg is one value published by the countdown ticker.
type remainingMsg struct {
	gen int
	r   model.Remaining
}

// tickerDoneMsg is sent once the ticker's update channel is closed.
type tickerDoneMsg struct {
	gen    int
	reason countdown.CancelReason
}

// BoardConfig configures the board page.
type BoardConfig struct {
	Session      *session.Session
	TickInterval time.Duration
	FetchTimeout time.Duration
	Keys         KeyMap
	Logger       *zerolog.Logger
}

// Board is the countdown and team listing page.
type Board struct {
	sess         *session.Session
	keys         KeyMap
	help         help.Model
	table        table.Model
	tickInterval time.Duration
	fetchTimeout time.Duration
	log          zerolog.Logger

	snap      session.Snapshot
	requested bool
	loading   bool
	frame     int

	dateIdx int
	visible []model.Team

	remaining model.Remaining
	expired   bool
	ticker    *countdown.Ticker
	gen       int

	width  int
	height int
}

// NewBoard creates the board page. The data source is fetched on Init.
func NewBoard(cfg BoardConfig) *Board {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = model.DefaultTickInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = model.DefaultFetchTimeout
	}
	if cfg.Keys.Quit.Keys() == nil {
		cfg.Keys = DefaultKeyMap()
	}
	logger := log.With().Str("component", "board").Logger()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Board{
		sess:         cfg.Session,
		keys:         cfg.Keys,
		help:         help.New(),
		table:        newTeamTable(),
		tickInterval: cfg.TickInterval,
		fetchTimeout: cfg.FetchTimeout,
		log:          logger,
		loading:      true,
	}
}

func newTeamTable() table.Model {
	t := table.New(
		table.WithColumns(teamColumns(80)),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPurple).
		BorderBottom(true).
		Foreground(ColorBlue).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ColorWhite).
		Background(ColorNavy).
		Bold(false)
	t.SetStyles(s)
	return t
}

func teamColumns(width int) []table.Column {
	nameWidth := width - 30
	if nameWidth < 20 {
		nameWidth = 20
	}
	if nameWidth > 48 {
		nameWidth = 48
	}
	return []table.Column{
		{Title: "S.No.", Width: 6},
		{Title: "Team Name", Width: nameWidth},
		{Title: "Date", Width: 10},
	}
}

func (b *Board) ID() string { return PageBoard }

// Init fetches the data source on first entry and restarts the ticker on
// every later entry.
func (b *Board) Init() tea.Cmd {
	if !b.requested {
		b.requested = true
		return tea.Batch(b.loadCmd(false), spinnerTick())
	}
	if b.loading {
		return spinnerTick()
	}
	if b.snap.State.Running() && b.ticker == nil {
		return b.startTicker()
	}
	return nil
}

// Close stops the countdown ticker. It is safe to call more than once.
func (b *Board) Close() {
	b.stopTicker()
}

func (b *Board) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		b.resizeTable()
		return nil, nil

	case spinnerTickMsg:
		if !b.loading {
			return nil, nil
		}
		b.frame++
		return spinnerTick(), nil

	case docLoadedMsg:
		b.loading = false
		b.snap = msg.snap
		if !b.snap.State.Running() {
			b.stopTicker()
			return nil, nil
		}
		b.clampDate()
		b.refreshRows()
		return b.startTicker(), nil

	case remainingMsg:
		if msg.gen != b.gen || b.ticker == nil {
			return nil, nil
		}
		b.remaining = msg.r
		return waitForRemaining(b.ticker, b.gen), nil

	case tickerDoneMsg:
		if msg.gen != b.gen {
			return nil, nil
		}
		b.ticker = nil
		if msg.reason == countdown.CancelExpired {
			b.expired = true
			b.remaining = model.Remaining{}
		}
		return nil, nil

	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return nil, nil
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, b.keys.ForceQuit), key.Matches(msg, b.keys.Quit):
		b.Close()
		return tea.Quit, nil

	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll

	case key.Matches(msg, b.keys.About):
		// The fetch result is delivered to the active page only.
		if b.loading {
			return nil, nil
		}
		return nil, navTo(PageAbout)

	case key.Matches(msg, b.keys.Reload):
		if b.snap.State == session.StateError && !b.loading {
			b.loading = true
			b.frame = 0
			return tea.Batch(b.loadCmd(true), spinnerTick()), nil
		}

	case key.Matches(msg, b.keys.PrevDate):
		b.shiftDate(-1)

	case key.Matches(msg, b.keys.NextDate):
		b.shiftDate(1)

	case key.Matches(msg, b.keys.Up), key.Matches(msg, b.keys.Down):
		var cmd tea.Cmd
		b.table, cmd = b.table.Update(msg)
		return cmd, nil
	}
	return nil, nil
}

func (b *Board) loadCmd(reload bool) tea.Cmd {
	sess, timeout := b.sess, b.fetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if reload {
			return docLoadedMsg{snap: sess.Reload(ctx)}
		}
		return docLoadedMsg{snap: sess.Load(ctx)}
	}
}

func (b *Board) startTicker() tea.Cmd {
	b.stopTicker()

	logger := b.log
	t, err := b.sess.Start(
		countdown.WithInterval(b.tickInterval),
		countdown.OnCancel(func(r countdown.CancelReason) {
			logger.Debug().Str("reason", r.String()).Msg("countdown ticker cancelled")
		}),
	)
	if err != nil {
		b.log.Warn().Err(err).Msg("countdown not started")
		return nil
	}
	b.ticker = t
	b.expired = false
	return waitForRemaining(t, b.gen)
}

// stopTicker cancels the running ticker and invalidates messages from it
// that are still in flight.
func (b *Board) stopTicker() {
	if b.ticker != nil {
		b.ticker.Stop()
		b.ticker = nil
	}
	b.gen++
}

// waitForRemaining blocks on the ticker's next value.
func waitForRemaining(t *countdown.Ticker, gen int) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-t.Updates()
		if !ok {
			return tickerDoneMsg{gen: gen, reason: t.Reason()}
		}
		return remainingMsg{gen: gen, r: r}
	}
}

func (b *Board) dates() []model.DateOption {
	if b.snap.Document == nil {
		return nil
	}
	return b.snap.Document.Event.Dates
}

// SelectedDate returns the value of the selected date option.
func (b *Board) SelectedDate() string {
	dates := b.dates()
	if len(dates) == 0 {
		return ""
	}
	return dates[b.dateIdx].Value
}

// VisibleTeams returns the teams shown for the selected date.
func (b *Board) VisibleTeams() []model.Team { return b.visible }

// Remaining returns the last countdown value received.
func (b *Board) Remaining() model.Remaining { return b.remaining }

// Expired reports whether the countdown reached zero.
func (b *Board) Expired() bool { return b.expired }

// Ticking reports whether a countdown ticker is running.
func (b *Board) Ticking() bool { return b.ticker != nil }

func (b *Board) clampDate() {
	if n := len(b.dates()); b.dateIdx >= n {
		b.dateIdx = 0
	}
}

func (b *Board) shiftDate(delta int) {
	n := len(b.dates())
	if n == 0 {
		return
	}
	b.dateIdx = ((b.dateIdx+delta)%n + n) % n
	b.refreshRows()
}

func (b *Board) refreshRows() {
	if b.snap.Document == nil {
		b.visible = nil
		b.table.SetRows(nil)
		return
	}
	sel := b.SelectedDate()
	b.visible = teams.Filter(b.snap.Document.Teams, sel)

	rows := make([]table.Row, 0, len(b.visible))
	for i, t := range b.visible {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			t.Name,
			teams.DisplayDate(t, sel),
		})
	}
	b.table.SetRows(rows)
	b.table.GotoTop()
}

// resizeTable fits the team table under the header and countdown.
func (b *Board) resizeTable() {
	const chrome = 26
	h := b.height - chrome
	if h < 3 {
		h = 3
	}
	b.table.SetColumns(teamColumns(b.width))
	b.table.SetHeight(h)
}
