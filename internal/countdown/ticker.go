package countdown

import (
	"sync"
	"time"

	"github.com/tinytelemetry/hackboard/internal/model"
)

// CancelReason records why a Ticker stopped.
type CancelReason int

const (
	NotCancelled   CancelReason = iota
	CancelExpired               // countdown reached zero
	CancelTeardown              // Stop was called by the consumer
)

func (r CancelReason) String() string {
	switch r {
	case CancelExpired:
		return "expired"
	case CancelTeardown:
		return "teardown"
	default:
		return "running"
	}
}

// TickerOption configures a Ticker.
type TickerOption func(*Ticker)

// WithInterval overrides the publish interval.
func WithInterval(d time.Duration) TickerOption {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// OnCancel registers a hook invoked exactly once when the ticker stops.
func OnCancel(fn func(CancelReason)) TickerOption {
	return func(t *Ticker) { t.onCancel = fn }
}

// Ticker publishes the time left on a fixed interval until the countdown
// reaches zero or Stop is called. Updates is closed when the ticker stops.
type Ticker struct {
	engine   *Engine
	interval time.Duration
	onCancel func(CancelReason)

	updates chan model.Remaining
	stop    chan struct{}
	done    chan struct{}

	stopOnce   sync.Once
	cancelOnce sync.Once

	mu     sync.Mutex
	reason CancelReason
}

// Start launches a ticker for the resolved deadline. The first value is
// published immediately.
func (e *Engine) Start(opts ...TickerOption) (*Ticker, error) {
	if _, ok := e.Deadline(); !ok {
		return nil, ErrNoDeadline
	}

	t := &Ticker{
		engine:   e,
		interval: model.DefaultTickInterval,
		updates:  make(chan model.Remaining, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	go t.loop()
	return t, nil
}

// Updates delivers one value per tick.
func (t *Ticker) Updates() <-chan model.Remaining { return t.updates }

// Done is closed once the ticker goroutine has exited.
func (t *Ticker) Done() <-chan struct{} { return t.done }

// Reason reports why the ticker stopped, or NotCancelled while running.
func (t *Ticker) Reason() CancelReason {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason
}

// Stop cancels the ticker and waits for its goroutine to exit. It is safe
// to call more than once and after the ticker expired on its own.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}

func (t *Ticker) loop() {
	defer close(t.done)
	defer close(t.updates)

	clock := t.engine.Clock()
	ticker := clock.NewTicker(t.interval)
	defer ticker.Stop()

	if !t.publish() {
		return
	}
	for {
		select {
		case <-t.stop:
			t.cancel(CancelTeardown)
			return
		case <-ticker.Chan():
			if !t.publish() {
				return
			}
		}
	}
}

// publish sends the current value and reports whether the loop should go on.
func (t *Ticker) publish() bool {
	r, err := t.engine.ComputeRemaining()
	if err != nil {
		t.cancel(CancelTeardown)
		return false
	}

	select {
	case t.updates <- r:
	case <-t.stop:
		t.cancel(CancelTeardown)
		return false
	}

	if r.IsZero() {
		t.cancel(CancelExpired)
		return false
	}
	return true
}

func (t *Ticker) cancel(reason CancelReason) {
	t.cancelOnce.Do(func() {
		t.mu.Lock()
		t.reason = reason
		t.mu.Unlock()
		if t.onCancel != nil {
			t.onCancel(reason)
		}
	})
}
