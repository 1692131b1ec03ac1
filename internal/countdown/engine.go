// Package countdown anchors a countdown to an absolute deadline that
// survives restarts, and publishes the time left once per tick.
package countdown

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tinytelemetry/hackboard/internal/model"
	"github.com/tinytelemetry/hackboard/internal/storage"
)

// ErrNoDeadline is returned when the engine is used before ResolveDeadline.
var ErrNoDeadline = errors.New("countdown: deadline not resolved")

// Deadline is the absolute instant the countdown reaches zero.
type Deadline struct {
	At time.Time

	// Restored is true when the value was read back from storage.
	Restored bool

	// Degraded is true when storage could not be read or written; the
	// deadline then only lives for this process. StoreErr holds the cause.
	Degraded bool
	StoreErr error
}

// UnixMilli returns the deadline as epoch milliseconds.
func (d Deadline) UnixMilli() int64 { return d.At.UnixMilli() }

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithKey overrides the storage key holding the deadline.
func WithKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.key = key
		}
	}
}

// WithLogger sets the logger used for storage warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine resolves and caches the deadline, and derives the time left.
// A nil store puts the engine straight into degraded mode.
type Engine struct {
	store storage.Store
	clock clockwork.Clock
	key   string
	log   zerolog.Logger

	mu       sync.Mutex
	deadline *Deadline
}

// NewEngine creates an engine backed by store.
func NewEngine(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		clock: clockwork.NewRealClock(),
		key:   model.DefaultDeadlineKey,
		log:   log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clock returns the clock driving the engine.
func (e *Engine) Clock() clockwork.Clock { return e.clock }

// ResolveDeadline returns the deadline in effect, creating and persisting it
// from initial when the store holds none. Once a deadline exists, initial is
// ignored.
func (e *Engine) ResolveDeadline(initial model.TimerSpec) Deadline {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deadline != nil {
		return *e.deadline
	}

	d := e.resolveLocked(initial)
	e.deadline = &d
	return d
}

func (e *Engine) resolveLocked(initial model.TimerSpec) Deadline {
	if e.store == nil {
		return e.fresh(initial, errors.New("countdown: no storage configured"))
	}

	raw, err := e.store.Get(e.key)
	switch {
	case err == nil:
		ms, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if perr == nil {
			e.log.Debug().Str("key", e.key).Int64("deadline_ms", ms).Msg("restored deadline")
			return Deadline{At: time.UnixMilli(ms), Restored: true}
		}
		e.log.Warn().Str("key", e.key).Str("value", raw).Msg("stored deadline is not a number; replacing it")
	case errors.Is(err, storage.ErrNotFound):
	default:
		e.log.Warn().Err(err).Str("key", e.key).Msg("deadline storage unreadable; countdown resets on restart")
		return e.fresh(initial, err)
	}

	d := e.fresh(initial, nil)
	if err := e.store.Set(e.key, strconv.FormatInt(d.UnixMilli(), 10)); err != nil {
		e.log.Warn().Err(err).Str("key", e.key).Msg("deadline storage unwritable; countdown resets on restart")
		d.Degraded = true
		d.StoreErr = err
		return d
	}
	e.log.Info().Str("key", e.key).Time("deadline", d.At).Msg("stored new deadline")
	return d
}

func (e *Engine) fresh(initial model.TimerSpec, storeErr error) Deadline {
	at := time.UnixMilli(e.clock.Now().UnixMilli() + ToMilliseconds(initial))
	return Deadline{At: at, Degraded: storeErr != nil, StoreErr: storeErr}
}

// Deadline returns the resolved deadline, if any.
func (e *Engine) Deadline() (Deadline, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deadline == nil {
		return Deadline{}, false
	}
	return *e.deadline, true
}

// ComputeRemaining returns the time left at the current clock reading.
func (e *Engine) ComputeRemaining() (model.Remaining, error) {
	d, ok := e.Deadline()
	if !ok {
		return model.Remaining{}, ErrNoDeadline
	}
	return RemainingAt(d.At, e.clock.Now()), nil
}
