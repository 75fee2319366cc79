// Package upload reports streaming upload progress at a bounded rate.
package upload

import (
	"sync"
	"time"
)

const DefaultInterval = 50 * time.Millisecond

// Progress is a snapshot of bytes sent against the expected total.
type Progress struct {
	Loaded int64 `json:"loaded"`
	Total  int64 `json:"total"`
}

// Percent returns 0..100. An unknown total reports 0 until the upload completes.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Loaded) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Done reports whether the snapshot is the final one.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Loaded >= p.Total
}

// Throttle forwards at most one update per interval. The final update is
// always forwarded, even inside the window, and nothing is forwarded after it.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	emit     func(Progress)

	last     time.Time
	started  bool
	finished bool
	pending  *Progress
}

func NewThrottle(interval time.Duration, emit func(Progress)) *Throttle {
	return NewThrottleWithClock(interval, emit, time.Now)
}

func NewThrottleWithClock(interval time.Duration, emit func(Progress), now func() time.Time) *Throttle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if emit == nil {
		emit = func(Progress) {}
	}
	if now == nil {
		now = time.Now
	}
	return &Throttle{interval: interval, emit: emit, now: now}
}

// Report offers a progress value. It returns true when the value was forwarded.
func (t *Throttle) Report(p Progress) bool {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return false
	}

	now := t.now()
	forward := p.Done() || !t.started || now.Sub(t.last) >= t.interval
	if !forward {
		t.pending = &p
		t.mu.Unlock()
		return false
	}

	t.started = true
	t.last = now
	t.pending = nil
	if p.Done() {
		t.finished = true
	}
	t.mu.Unlock()

	t.emit(p)
	return true
}

// Flush forwards the most recent suppressed value, if any. Callers use it when
// the stream ends without a final snapshot (unknown total).
func (t *Throttle) Flush() {
	t.mu.Lock()
	if t.finished || t.pending == nil {
		t.mu.Unlock()
		return
	}
	p := *t.pending
	t.pending = nil
	t.last = t.now()
	t.mu.Unlock()

	t.emit(p)
}
