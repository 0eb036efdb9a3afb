package event

import (
	"sync"
	"time"
)

// Clock returns the current time. Tests substitute a manual clock.
type Clock func() time.Time

// Scheduler runs f once, d from now, and returns a function that cancels
// the call if it has not happened yet.
type Scheduler func(d time.Duration, f func()) (cancel func())

// AfterFunc is the Scheduler backed by time.AfterFunc. f runs on the
// timer's own goroutine.
func AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// Throttle wraps fn so that it runs at most once per interval. The first
// call runs immediately. Calls arriving inside the window are not queued:
// only the most recent one is kept, and it runs once when the window
// closes, so the last position always lands. The interval is fixed for
// the life of the returned listener: to change it, wrap fn again.
//
// The returned cancel func drops a pending trailing call; call it when
// the listener is removed.
//
// A nil clock means time.Now and a nil scheduler means AfterFunc. A
// non-positive interval disables throttling.
func Throttle(interval time.Duration, now Clock, schedule Scheduler, fn Listener) (Listener, func()) {
	if interval <= 0 {
		return fn, func() {}
	}
	if now == nil {
		now = time.Now
	}
	if schedule == nil {
		schedule = AfterFunc
	}

	var (
		mu      sync.Mutex
		last    time.Time
		fired   bool
		pending *Event
		stop    func()
	)

	trailing := func() {
		mu.Lock()
		stop = nil
		ev := pending
		pending = nil
		if ev != nil {
			fired = true
			last = now()
		}
		mu.Unlock()
		if ev != nil {
			fn(*ev)
		}
	}

	listener := func(ev Event) {
		mu.Lock()
		t := now()
		if fired && t.Sub(last) < interval {
			pending = &ev
			if stop == nil {
				stop = schedule(interval-t.Sub(last), trailing)
			}
			mu.Unlock()
			return
		}
		if stop != nil {
			stop()
			stop = nil
		}
		pending = nil
		fired = true
		last = t
		mu.Unlock()
		fn(ev)
	}

	cancel := func() {
		mu.Lock()
		defer mu.Unlock()
		if stop != nil {
			stop()
			stop = nil
		}
		pending = nil
	}
	return listener, cancel
}
