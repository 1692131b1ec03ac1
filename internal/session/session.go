// Package session drives one client run: fetch the document, resolve the
// deadline, then hand out countdown tickers.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tinytelemetry/hackboard/internal/countdown"
	"github.com/tinytelemetry/hackboard/internal/datasource"
	"github.com/tinytelemetry/hackboard/internal/model"
)

// ErrNotReady is returned by Start before a successful Load.
var ErrNotReady = errors.New("session: not ready")

// State is the visible lifecycle of a session.
type State int

const (
	StateLoading State = iota
	StateReady
	StateDegraded // running, but the deadline is not persisted
	StateError    // terminal until Reload
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Running reports whether the countdown may run in this state.
func (s State) Running() bool {
	return s == StateReady || s == StateDegraded
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	State    State
	Document *model.Document
	Deadline countdown.Deadline
	Err      error
}

// Session is safe for use from the UI loop and from load commands.
type Session struct {
	loader datasource.Loader
	engine *countdown.Engine
	log    zerolog.Logger

	mu       sync.Mutex
	state    State
	doc      *model.Document
	deadline countdown.Deadline
	err      error
}

// New creates a session in the loading state.
func New(loader datasource.Loader, engine *countdown.Engine) *Session {
	return &Session{
		loader: loader,
		engine: engine,
		log:    log.With().Str("component", "session").Logger(),
		state:  StateLoading,
	}
}

// Load fetches the document and resolves the deadline. A failed fetch or a
// malformed document leaves the session in StateError.
func (s *Session) Load(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.state = StateLoading
	s.err = nil
	s.mu.Unlock()

	doc, err := s.loader.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("data source load failed")
		s.mu.Lock()
		s.state = StateError
		s.err = err
		s.mu.Unlock()
		return s.Snapshot()
	}

	d := s.engine.ResolveDeadline(doc.Timer)

	s.mu.Lock()
	s.doc = doc
	s.deadline = d
	s.state = StateReady
	if d.Degraded {
		s.state = StateDegraded
		s.err = d.StoreErr
	}
	s.mu.Unlock()

	s.log.Info().
		Str("state", s.State().String()).
		Int("teams", len(doc.Teams)).
		Time("deadline", d.At).
		Bool("restored", d.Restored).
		Msg("session loaded")
	return s.Snapshot()
}

// Reload is the manual recovery path after an error.
func (s *Session) Reload(ctx context.Context) Snapshot {
	return s.Load(ctx)
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:    s.state,
		Document: s.doc,
		Deadline: s.deadline,
		Err:      s.err,
	}
}

// Start launches a countdown ticker for the loaded deadline.
func (s *Session) Start(opts ...countdown.TickerOption) (*countdown.Ticker, error) {
	if !s.State().Running() {
		return nil, ErrNotReady
	}
	return s.engine.Start(opts...)
}
