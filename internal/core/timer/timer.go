// Package timer is a tick-driven timer service. Time only moves when the host
// calls Clock.Advance, so every expiration runs synchronously inside a frame.
package timer

import (
	"github.com/zeusync/starfall/pkg/sequence"
)

// Scheduler creates timers. Durations are in simulated seconds.
type Scheduler interface {
	Schedule(duration float64, repeat bool, fn func()) *Timer
}

var _ Scheduler = (*Clock)(nil)

// Clock owns a heap of pending timers ordered by deadline, then by arming order.
type Clock struct {
	now   float64
	seq   uint64
	queue *sequence.PriorityQueue[*Timer]
	fired uint64
}

func NewClock() *Clock {
	return &Clock{
		queue: sequence.NewPriorityQueue(func(a, b *Timer) bool {
			if a.deadline != b.deadline {
				return a.deadline < b.deadline
			}
			return a.order < b.order
		}),
	}
}

// Now returns the simulated time in seconds.
func (c *Clock) Now() float64 { return c.now }

// Pending returns the number of armed timers.
func (c *Clock) Pending() int { return c.queue.Len() }

// Fired returns how many expirations have been dispatched so far.
func (c *Clock) Fired() uint64 { return c.fired }

// Schedule arms a new timer that expires after duration seconds. A repeating
// timer needs a positive duration; otherwise it fires once.
func (c *Clock) Schedule(duration float64, repeat bool, fn func()) *Timer {
	t := &Timer{clock: c, duration: duration, repeat: repeat, fn: fn}
	c.arm(t, c.now+duration)
	return t
}

// Advance moves the clock forward by dt and fires every timer whose deadline
// falls inside the step, earliest first. Callbacks may schedule, cancel or
// restart timers, including their own.
func (c *Clock) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	target := c.now + dt

	for {
		next, ok := c.queue.Peek()
		if !ok || next.deadline > target {
			break
		}
		c.queue.Dequeue()
		next.item = nil
		c.now = next.deadline

		if next.repeat && next.duration > 0 {
			c.arm(next, next.deadline+next.duration)
		}

		c.fired++
		if next.fn != nil {
			next.fn()
		}
	}

	c.now = target
}

func (c *Clock) arm(t *Timer, deadline float64) {
	if t.item != nil {
		c.queue.Remove(t.item)
	}
	c.seq++
	t.deadline = deadline
	t.order = c.seq
	t.item = c.queue.Enqueue(t)
}

// Timer is a handle to a scheduled expiration.
type Timer struct {
	clock    *Clock
	duration float64
	repeat   bool
	fn       func()

	deadline float64
	order    uint64
	item     *sequence.PriorityItem[*Timer]
}

// Cancel stops the timer. Cancelling a stopped timer is a no-op.
func (t *Timer) Cancel() {
	if t == nil || t.item == nil {
		return
	}
	t.clock.queue.Remove(t.item)
	t.item = nil
}

// Restart re-arms the timer for its full duration from now.
func (t *Timer) Restart() {
	if t == nil {
		return
	}
	t.clock.arm(t, t.clock.now+t.duration)
}

// SetDuration changes the duration used by the next Restart or repeat.
func (t *Timer) SetDuration(d float64) {
	if t != nil {
		t.duration = d
	}
}

func (t *Timer) Duration() float64 { return t.duration }

// Stopped reports whether the timer is not armed.
func (t *Timer) Stopped() bool {
	return t == nil || t.item == nil
}

// Remaining returns the seconds left before expiry, or 0 when stopped.
func (t *Timer) Remaining() float64 {
	if t.Stopped() {
		return 0
	}
	return t.deadline - t.clock.now
}
