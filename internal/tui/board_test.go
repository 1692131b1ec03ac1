package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/hackboard/internal/countdown"
	"github.com/tinytelemetry/hackboard/internal/model"
	"github.com/tinytelemetry/hackboard/internal/session"
	"github.com/tinytelemetry/hackboard/internal/storage"
)

var t0 = time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC)

type seqLoader struct {
	results []error
	doc     *model.Document
	calls   int
}

func (l *seqLoader) Load(context.Context) (*model.Document, error) {
	i := l.calls
	l.calls++
	if i < len(l.results) && l.results[i] != nil {
		return nil, l.results[i]
	}
	return l.doc, nil
}

func testDoc(timer model.TimerSpec) *model.Document {
	return &model.Document{
		Event: model.DefaultEventInfo(),
		Timer: timer,
		Teams: []model.Team{
			{ID: 1, Name: "Code Crusaders", Date: "25"},
			{ID: 2, Name: "Tech Titans", Date: "25"},
			{ID: 3, Name: "Byte Busters", Date: "26"},
		},
	}
}

func newTestBoard(t *testing.T, loader *seqLoader, store storage.Store) (*Board, *clockwork.FakeClock) {
	t.Helper()
	fc := clockwork.NewFakeClockAt(t0)
	nop := zerolog.Nop()
	eng := countdown.NewEngine(store, countdown.WithClock(fc), countdown.WithLogger(nop))
	b := NewBoard(BoardConfig{
		Session: session.New(loader, eng),
		Logger:  &nop,
	})
	t.Cleanup(b.Close)
	return b, fc
}

// runCmd executes a command with a timeout so a stuck ticker fails the test.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not return")
		return nil
	}
}

// load runs the initial fetch and consumes the first countdown value.
func load(t *testing.T, b *Board) tea.Cmd {
	t.Helper()
	cmd, _ := b.Update(runCmd(t, b.loadCmd(false)))
	if !b.Ticking() {
		return cmd
	}
	next, _ := b.Update(runCmd(t, cmd))
	return next
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardLoadsAndStartsCountdown(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 26})}, storage.NewMemoryStore())

	load(t, b)

	if !b.Ticking() {
		t.Fatal("ticker not running after load")
	}
	if got := b.Remaining(); got != (model.Remaining{Hours: 26}) {
		t.Errorf("remaining = %v, want 26:00:00", got)
	}
	if got := b.SelectedDate(); got != "25/8/25" {
		t.Errorf("selected date = %q, want 25/8/25", got)
	}

	view := b.View(120, 60)
	for _, want := range []string{"26", "Hours", "Minutes", "Seconds", statusInProgress, "Code Crusaders", "25/8/25"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBoardTicksOncePerInterval(t *testing.T) {
	b, fc := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Minutes: 1})}, storage.NewMemoryStore())

	cmd := load(t, b)
	fc.Advance(time.Second)
	cmd, _ = b.Update(runCmd(t, cmd))

	if got := b.Remaining(); got != (model.Remaining{Seconds: 59}) {
		t.Errorf("remaining after 1s = %v, want 00:00:59", got)
	}
	if cmd == nil {
		t.Error("board stopped waiting for ticks")
	}
}

func TestBoardDateCycling(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 1})}, storage.NewMemoryStore())
	load(t, b)

	steps := []struct {
		key   tea.KeyMsg
		date  string
		names []string
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, "26/8/25", []string{"Byte Busters"}},
		{keyRunes("]"), "25/8/25", []string{"Code Crusaders", "Tech Titans"}},
		{tea.KeyMsg{Type: tea.KeyLeft}, "26/8/25", []string{"Byte Busters"}},
		{keyRunes("["), "25/8/25", []string{"Code Crusaders", "Tech Titans"}},
	}
	for i, step := range steps {
		b.Update(step.key)
		if got := b.SelectedDate(); got != step.date {
			t.Fatalf("step %d: date = %q, want %q", i, got, step.date)
		}
		visible := b.VisibleTeams()
		if len(visible) != len(step.names) {
			t.Fatalf("step %d: visible = %d teams, want %d", i, len(visible), len(step.names))
		}
		for j, name := range step.names {
			if visible[j].Name != name {
				t.Errorf("step %d: team %d = %q, want %q", i, j, visible[j].Name, name)
			}
		}
	}
}

func TestBoardEmptyState(t *testing.T) {
	doc := testDoc(model.TimerSpec{Hours: 1})
	doc.Teams = doc.Teams[:2]
	b, _ := newTestBoard(t, &seqLoader{doc: doc}, storage.NewMemoryStore())
	load(t, b)

	b.Update(tea.KeyMsg{Type: tea.KeyRight})

	if got := b.VisibleTeams(); got == nil || len(got) != 0 {
		t.Fatalf("visible = %v, want empty non-nil", got)
	}
	view := b.View(120, 60)
	if !strings.Contains(view, emptyTeamsText) {
		t.Errorf("view missing empty state text")
	}
	if !strings.Contains(view, "0 teams registered for this date") {
		t.Errorf("view missing zero count")
	}
}

func TestBoardExpiryStopsTicks(t *testing.T) {
	b, fc := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Seconds: 2})}, storage.NewMemoryStore())

	cmd := load(t, b)
	if got := b.Remaining(); got != (model.Remaining{Seconds: 2}) {
		t.Fatalf("first value = %v, want 00:00:02", got)
	}

	fc.Advance(time.Second)
	cmd, _ = b.Update(runCmd(t, cmd))
	fc.Advance(time.Second)
	cmd, _ = b.Update(runCmd(t, cmd))
	if !b.Remaining().IsZero() {
		t.Fatalf("remaining = %v, want zero", b.Remaining())
	}

	msg := runCmd(t, cmd)
	done, ok := msg.(tickerDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want tickerDoneMsg", msg)
	}
	if done.reason != countdown.CancelExpired {
		t.Errorf("reason = %v, want expired", done.reason)
	}
	if next, _ := b.Update(msg); next != nil {
		t.Error("board keeps waiting for ticks after expiry")
	}
	if b.Ticking() || !b.Expired() {
		t.Errorf("ticking=%v expired=%v, want false/true", b.Ticking(), b.Expired())
	}
	if !strings.Contains(b.View(120, 60), statusTimesUp) {
		t.Errorf("view missing %q", statusTimesUp)
	}
}

func TestAppPageSwitchClosesTicker(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 26})}, storage.NewMemoryStore())
	app := NewApp(b, NewAbout(b.sess, DefaultKeyMap(), ""))
	load(t, b)

	old := b.ticker
	app.Update(keyRunes("a"))

	if app.ActivePage() != PageAbout {
		t.Fatalf("active page = %q, want about", app.ActivePage())
	}
	if b.Ticking() {
		t.Error("ticker still running after leaving the board")
	}
	select {
	case <-old.Done():
	default:
		t.Fatal("old ticker goroutine still running")
	}
	if old.Reason() != countdown.CancelTeardown {
		t.Errorf("reason = %v, want teardown", old.Reason())
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if app.ActivePage() != PageBoard {
		t.Fatalf("active page = %q, want board", app.ActivePage())
	}
	if !b.Ticking() {
		t.Error("ticker not restarted on re-entry")
	}
}

func TestBoardStaleTickIgnored(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 1})}, storage.NewMemoryStore())
	load(t, b)

	stale := b.gen
	b.Close()
	if cmd, _ := b.Update(remainingMsg{gen: stale, r: model.Remaining{Seconds: 5}}); cmd != nil {
		t.Error("stale tick produced a command")
	}
	if got := b.Remaining(); got != (model.Remaining{Hours: 1}) {
		t.Errorf("remaining = %v, stale tick was applied", got)
	}
}

func TestBoardErrorAndReload(t *testing.T) {
	loader := &seqLoader{
		results: []error{errors.New("datasource: load: status 503")},
		doc:     testDoc(model.TimerSpec{Hours: 2}),
	}
	b, _ := newTestBoard(t, loader, storage.NewMemoryStore())

	load(t, b)
	if b.Ticking() {
		t.Fatal("ticker started after a failed load")
	}
	view := b.View(100, 40)
	if !strings.Contains(view, "press r to reload") || !strings.Contains(view, "503") {
		t.Errorf("error view missing reload hint or cause:\n%s", view)
	}

	cmd, _ := b.Update(keyRunes("r"))
	if cmd == nil || !b.loading {
		t.Fatal("reload key did not start a reload")
	}

	cmd, _ = b.Update(runCmd(t, b.loadCmd(true)))
	if !b.Ticking() {
		t.Fatal("ticker not running after reload")
	}
	b.Update(runCmd(t, cmd))
	if got := b.Remaining(); got != (model.Remaining{Hours: 2}) {
		t.Errorf("remaining = %v, want 02:00:00", got)
	}
}

func TestBoardReloadIgnoredWhenReady(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 1})}, storage.NewMemoryStore())
	load(t, b)

	if cmd, _ := b.Update(keyRunes("r")); cmd != nil {
		t.Error("reload started while the board is ready")
	}
}

func TestBoardDegradedStatus(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 1})}, nil)
	load(t, b)

	if !b.Ticking() {
		t.Fatal("degraded board should still count down")
	}
	if !strings.Contains(b.View(120, 60), "degraded") {
		t.Error("view missing degraded status")
	}
}

func TestBoardQuitStopsTicker(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 1})}, storage.NewMemoryStore())
	load(t, b)

	cmd, _ := b.Update(keyRunes("q"))
	if _, ok := runCmd(t, cmd).(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if b.Ticking() {
		t.Error("ticker still running after quit")
	}
}

func TestBoardLoadingView(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 1})}, storage.NewMemoryStore())

	if !strings.Contains(b.View(80, 24), "Loading") {
		t.Error("initial view is not the loading placeholder")
	}
	cmd, _ := b.Update(spinnerTickMsg{})
	if cmd == nil || b.frame != 1 {
		t.Errorf("spinner did not advance: frame=%d", b.frame)
	}
}

func TestAboutBlockedWhileLoading(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 26})}, storage.NewMemoryStore())
	app := NewApp(b, NewAbout(b.sess, DefaultKeyMap(), ""))
	app.Init()

	app.Update(keyRunes("a"))
	if app.ActivePage() != PageBoard {
		t.Fatalf("active page = %q while loading, want board", app.ActivePage())
	}

	// The fetch result must reach the board.
	app.Update(runCmd(t, b.loadCmd(false)))
	if b.loading || !b.Ticking() {
		t.Fatalf("loading=%v ticking=%v after fetch, want false/true", b.loading, b.Ticking())
	}
	app.Update(runCmd(t, waitForRemaining(b.ticker, b.gen)))
	if got := b.Remaining(); got != (model.Remaining{Hours: 26}) {
		t.Errorf("remaining = %v, want 26:00:00", got)
	}

	app.Update(keyRunes("a"))
	if app.ActivePage() != PageAbout {
		t.Fatalf("active page = %q after load, want about", app.ActivePage())
	}
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.ActivePage() != PageBoard || !b.Ticking() {
		t.Errorf("active=%q ticking=%v after return, want board/true", app.ActivePage(), b.Ticking())
	}
	if strings.Contains(b.View(120, 60), "Loading") {
		t.Error("board still shows the loading placeholder")
	}
}

func TestAppResizeReachesHiddenPages(t *testing.T) {
	b, _ := newTestBoard(t, &seqLoader{doc: testDoc(model.TimerSpec{Hours: 1})}, storage.NewMemoryStore())
	app := NewApp(b, NewAbout(b.sess, DefaultKeyMap(), ""))
	load(t, b)

	app.Update(keyRunes("a"))
	if app.ActivePage() != PageAbout {
		t.Fatalf("active page = %q, want about", app.ActivePage())
	}

	app.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	if b.width != 140 || b.height != 50 {
		t.Errorf("board size = %dx%d, want 140x50", b.width, b.height)
	}
}
