// Package loop runs a callback at a fixed period between an idempotent
// Start and Stop.
package loop

import (
	"sync"
	"time"
)

// Ticker is the periodic time source driving a Looper.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) Chan() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()                  { t.t.Stop() }

// NewTimeTicker is the default TickerFunc backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker { return timeTicker{time.NewTicker(d)} }

// Option configures a Looper.
type Option func(*Looper)

// WithTicker replaces the wall-clock ticker, mostly for tests.
func WithTicker(f TickerFunc) Option {
	return func(l *Looper) { l.newTicker = f }
}

// Looper invokes a tick callback every period while running. A ticker exists
// only while the Looper is running.
type Looper struct {
	period    time.Duration
	newTicker TickerFunc

	mu      sync.Mutex
	running bool
	ticker  Ticker
	quit    chan struct{}
}

// NewLooper returns a stopped Looper with a fixed period.
func NewLooper(period time.Duration, opts ...Option) *Looper {
	l := &Looper{period: period, newTicker: NewTimeTicker}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Period is the fixed tick period.
func (l *Looper) Period() time.Duration { return l.period }

// Running reports whether the ticker is live.
func (l *Looper) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Start begins calling tick every period. It returns false, leaving the
// current schedule untouched, when already running.
func (l *Looper) Start(tick func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return false
	}
	l.running = true
	l.ticker = l.newTicker(l.period)
	l.quit = make(chan struct{})
	go l.refresh(l.ticker, l.quit, tick)
	return true
}

// Stop cancels the schedule and releases the ticker. It returns false when
// already stopped. Stop may be called from inside tick.
func (l *Looper) Stop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return false
	}
	l.running = false
	l.ticker.Stop()
	l.ticker = nil
	close(l.quit)
	return true
}

func (l *Looper) refresh(t Ticker, quit <-chan struct{}, tick func()) {
	for {
		select {
		case <-quit:
			return
		case <-t.Chan():
			// a tick racing a Stop is dropped
			select {
			case <-quit:
				return
			default:
			}
			tick()
		}
	}
}
