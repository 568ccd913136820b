package clock

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidInterval = errors.New("clock: invalid tick interval")

const DefaultInterval = time.Second

// Ticker emits the wall time once per interval on C. Sends never block: a
// tick the consumer is not ready for is counted in Dropped and skipped.
// Stop must be called by the owner on teardown.
type Ticker struct {
	mu       sync.Mutex
	interval time.Duration
	clock    Clock
	out      chan time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
}

func NewTicker(interval time.Duration, bufferSize int) (*Ticker, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Ticker{
		interval: interval,
		clock:    System{},
		out:      make(chan time.Time, bufferSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// WithClock replaces the time source stamped on each tick. It must be called
// before Start.
func (t *Ticker) WithClock(c Clock) *Ticker {
	if c != nil {
		t.clock = c
	}
	return t
}

func (t *Ticker) C() <-chan time.Time {
	return t.out
}

func (t *Ticker) Interval() time.Duration {
	return t.interval
}

func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return
	}
	t.started = true
	go t.loop()
}

// Stop halts the loop and closes C. It is safe to call more than once and
// before Start.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	close(t.stopCh)
	started := t.started
	t.mu.Unlock()
	if !started {
		close(t.out)
		return
	}
	<-t.doneCh
}

func (t *Ticker) Dropped() uint64 {
	return atomic.LoadUint64(&t.dropped)
}

func (t *Ticker) loop() {
	defer close(t.doneCh)
	defer close(t.out)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-tk.C:
			select {
			case t.out <- t.clock.Now():
			default:
				atomic.AddUint64(&t.dropped, 1)
			}
		case <-t.stopCh:
			return
		}
	}
}
