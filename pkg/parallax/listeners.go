package parallax

import (
	"time"

	"mouseparallax/pkg/event"
)

// Throttle returns the listener coalescing window.
func (e *Engine) Throttle() time.Duration { return e.throttle }

// SetThrottle changes the coalescing window and resubscribes, since a
// subscription keeps the window it was created with.
func (e *Engine) SetThrottle(d time.Duration) *Engine {
	e.throttle = d
	return e.ReloadListeners()
}

// SetDocument changes the target future subscriptions attach to. The
// current subscription, if any, is moved over.
func (e *Engine) SetDocument(t event.Target) *Engine {
	subscribed := len(e.handles) > 0
	e.DestroyListeners()
	e.document = t
	if subscribed {
		e.CreateListeners()
	}
	return e
}

// Subscribed reports whether pointer listeners are attached.
func (e *Engine) Subscribed() bool { return len(e.handles) > 0 }

// target is the configured document, else the container's document.
func (e *Engine) target() event.Target {
	if e.document != nil {
		return e.document
	}
	if e.container == nil {
		return nil
	}
	if doc := e.container.OwnerDocument(); doc != nil {
		return doc
	}
	return nil
}

// CreateListeners subscribes throttled mousemove and touchmove handlers.
// An existing subscription is torn down first, so there is never more than
// one.
func (e *Engine) CreateListeners() *Engine {
	e.DestroyListeners()
	t := e.target()
	if t == nil {
		e.logger.Debug("parallax listeners skipped: no document")
		return e
	}
	e.listenOn = t
	mouse, cancelMouse := event.Throttle(e.throttle, e.clock, e.schedule, e.onMouseMove)
	touch, cancelTouch := event.Throttle(e.throttle, e.clock, e.schedule, e.onTouchMove)
	e.handles = append(e.handles,
		t.AddEventListener(event.MouseMove, mouse),
		t.AddEventListener(event.TouchMove, touch),
	)
	e.cancels = append(e.cancels, cancelMouse, cancelTouch)
	return e
}

// DestroyListeners removes the subscription made by CreateListeners and
// drops any trailing call still waiting on its throttle.
func (e *Engine) DestroyListeners() *Engine {
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
	if e.listenOn != nil {
		for _, h := range e.handles {
			e.listenOn.RemoveEventListener(h)
		}
	}
	e.handles = nil
	e.listenOn = nil
	return e
}

// ReloadListeners is DestroyListeners followed by CreateListeners.
func (e *Engine) ReloadListeners() *Engine {
	return e.DestroyListeners().CreateListeners()
}

func (e *Engine) onMouseMove(ev event.Event) {
	e.Move(ev.ClientX, ev.ClientY)
}

// onTouchMove follows the first touch point only.
func (e *Engine) onTouchMove(ev event.Event) {
	if len(ev.Touches) == 0 {
		return
	}
	e.Move(ev.Touches[0].PageX, ev.Touches[0].PageY)
}
