package preview

import (
	"sync"
	"time"

	"github.com/ai-stack/stackbuilder/internal/stack"
)

// DefaultDebounce is the quiet period before a live preview is generated.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer calls fn with the latest stack once no Trigger has happened
// for the window. Every Trigger restarts the window.
type Debouncer struct {
	window time.Duration
	fn     func(stack.State)

	mu      sync.Mutex
	timer   *time.Timer
	latest  stack.State
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer. A non-positive window uses
// DefaultDebounce.
func NewDebouncer(window time.Duration, fn func(stack.State)) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window, fn: fn}
}

// Trigger records s as the latest stack and restarts the window.
func (d *Debouncer) Trigger(s stack.State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.latest = s.Clone()
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// A timer that already fired before Stop lost the race with a newer
// Trigger; its generation no longer matches and it does nothing.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	s := d.latest
	d.timer = nil
	d.mu.Unlock()

	d.fn(s)
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil && !d.stopped
}

// Stop cancels any scheduled call. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
