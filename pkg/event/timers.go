package event

import (
	"sort"
	"time"
)

// Timers is a Scheduler whose calls run only when Fire is called, on the
// caller's goroutine. Callers that drive a document from one goroutine use
// it in place of AfterFunc so trailing throttle calls never race the
// events they follow.
type Timers struct {
	now   Clock
	queue []*timer
	seq   int
}

type timer struct {
	at   time.Time
	seq  int
	f    func()
	dead bool
}

// NewTimers returns an empty queue reading due times from now.
func NewTimers(now Clock) *Timers {
	if now == nil {
		now = time.Now
	}
	return &Timers{now: now}
}

// Schedule queues f to run at the first Fire at or after d from now. It
// satisfies Scheduler.
func (q *Timers) Schedule(d time.Duration, f func()) func() {
	q.seq++
	t := &timer{at: q.now().Add(d), seq: q.seq, f: f}
	q.queue = append(q.queue, t)
	sort.SliceStable(q.queue, func(i, j int) bool {
		if q.queue[i].at.Equal(q.queue[j].at) {
			return q.queue[i].seq < q.queue[j].seq
		}
		return q.queue[i].at.Before(q.queue[j].at)
	})
	return func() { t.dead = true }
}

// Next reports the due time of the earliest pending call.
func (q *Timers) Next() (time.Time, bool) {
	q.prune()
	if len(q.queue) == 0 {
		return time.Time{}, false
	}
	return q.queue[0].at, true
}

// Fire runs every pending call that is due, earliest first, and returns
// how many ran. Calls scheduled while firing run too when already due.
func (q *Timers) Fire() int {
	n := 0
	for {
		q.prune()
		if len(q.queue) == 0 || q.queue[0].at.After(q.now()) {
			return n
		}
		t := q.queue[0]
		q.queue = q.queue[1:]
		t.dead = true
		t.f()
		n++
	}
}

// Len is the number of pending calls.
func (q *Timers) Len() int {
	q.prune()
	return len(q.queue)
}

func (q *Timers) prune() {
	kept := q.queue[:0]
	for _, t := range q.queue {
		if !t.dead {
			kept = append(kept, t)
		}
	}
	q.queue = kept
}

// ManualClock is a clock that moves only when advanced, with a timer
// queue on the same time line. Replays run on it so throttling, including
// trailing calls, behaves the same on every run.
type ManualClock struct {
	now    time.Time
	timers *Timers
}

// NewManualClock returns a clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	c := &ManualClock{now: start}
	c.timers = NewTimers(c.Now)
	return c
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Time { return c.now }

// Schedule queues f on the clock's time line. It satisfies Scheduler.
func (c *ManualClock) Schedule(d time.Duration, f func()) func() {
	return c.timers.Schedule(d, f)
}

// Advance moves the clock forward by d. Calls that fall due on the way run
// in order, each with the clock reading its due time. It returns how many
// ran.
func (c *ManualClock) Advance(d time.Duration) int {
	end := c.now.Add(d)
	n := 0
	for {
		at, ok := c.timers.Next()
		if !ok || at.After(end) {
			break
		}
		if at.After(c.now) {
			c.now = at
		}
		n += c.timers.Fire()
	}
	c.now = end
	return n
}

// Pending is the number of calls waiting on the clock.
func (c *ManualClock) Pending() int { return c.timers.Len() }
