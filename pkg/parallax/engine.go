// Package parallax moves a set of elements inside a container in response
// to pointer movement.
//
// Every item is an absolutely positioned element centered on its
// container (left/top 50% plus a -50% translate). Each pointer position is
// converted to an offset from the container center and every item is
// shifted by that offset scaled by its intensity, in percent of the
// container size: an item with intensity 1 follows the pointer, 0 stays
// still, 2 moves twice as far. Limits clamp the shift per axis.
//
// Rules come from three layers: engine defaults, the element's dataset
// (data-parallax-rule-* attributes) and explicit per-item overrides.
// Engine-wide Globals then scale intensities and speeds and supply limits
// for items without their own.
//
// An Engine is not safe for concurrent use; drive it from one goroutine,
// the way a page drives it from its event loop.
package parallax

import (
	"time"

	"github.com/charmbracelet/log"

	"mouseparallax/pkg/event"
	"mouseparallax/pkg/html"
)

// Status is the run state of an engine.
type Status int

const (
	Stopped Status = iota
	Running
)

func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// SpeedPolicy decides how Globals.Speed combines with item speeds.
type SpeedPolicy int

const (
	// SpeedMultiply scales each item's milliseconds by Globals.Speed
	// (1 = unchanged).
	SpeedMultiply SpeedPolicy = iota
	// SpeedOverride replaces each item's milliseconds with Globals.Speed.
	SpeedOverride
)

// DefaultThrottle is the listener coalescing window.
const DefaultThrottle = 20 * time.Millisecond

// Engine owns a collection of items, the global rules, and the listener
// subscription that feeds pointer events into it.
type Engine struct {
	container   *html.Node
	items       []Item
	globals     Globals
	defaults    Defaults
	prefix      string
	status      Status
	speedPolicy SpeedPolicy
	strategy    MoveStrategy

	throttle time.Duration
	clock    event.Clock
	schedule event.Scheduler
	document event.Target
	listenOn event.Target
	handles  []event.Handle
	cancels  []func()

	logger *log.Logger
	errs   []error
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithGlobals sets the initial global rules.
func WithGlobals(g Globals) Option {
	return func(e *Engine) { e.globals = g.Clone() }
}

// WithContainer sets the bounding element. Without it the parent of the
// first element is used.
func WithContainer(c *html.Node) Option {
	return func(e *Engine) { e.container = c }
}

// WithDocument sets the target listeners attach to. Without it the
// container's owner document is used.
func WithDocument(t event.Target) Option {
	return func(e *Engine) { e.document = t }
}

// WithThrottle sets the listener coalescing window.
func WithThrottle(d time.Duration) Option {
	return func(e *Engine) { e.throttle = d }
}

// WithPrefix sets the dataset prefix rules are read from.
func WithPrefix(prefix string) Option {
	return func(e *Engine) { e.prefix = prefix }
}

// WithStrategy replaces the movement strategy listeners invoke.
func WithStrategy(s MoveStrategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithSpeedPolicy selects how global speed applies.
func WithSpeedPolicy(p SpeedPolicy) Option {
	return func(e *Engine) { e.speedPolicy = p }
}

// WithDefaults replaces the per-item defaults.
func WithDefaults(d Defaults) Option {
	return func(e *Engine) { e.defaults = d }
}

// WithClock sets the clock the listener throttle reads.
func WithClock(c event.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithScheduler sets how the listener throttle schedules the trailing
// call that delivers the last event of a window. Without it a real timer
// is used.
func WithScheduler(f event.Scheduler) Option {
	return func(e *Engine) { e.schedule = f }
}

// WithLogger sets the logger errors and lifecycle events are written to.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates a running engine managing elements. An empty elements slice
// yields an inert engine that can be filled later with AddItem or
// SetItems. Listeners are not attached until Build or CreateListeners.
func New(elements []*html.Node, opts ...Option) *Engine {
	e := &Engine{
		defaults: DefaultItemRules(),
		prefix:   DefaultPrefix,
		status:   Running,
		strategy: GeometryStrategy{},
		throttle: DefaultThrottle,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.container == nil && len(elements) > 0 && elements[0] != nil {
		e.container = elements[0].Parent
	}
	e.AddItems(elements)
	return e
}

// Container returns the bounding element, or nil.
func (e *Engine) Container() *html.Node { return e.container }

// SetContainer rebinds the bounding element. The next movement measures
// the new container.
func (e *Engine) SetContainer(c *html.Node) *Engine {
	e.container = c
	return e
}

// Prefix returns the dataset prefix.
func (e *Engine) Prefix() string { return e.prefix }

// SpeedPolicy returns the active global speed policy.
func (e *Engine) SpeedPolicy() SpeedPolicy { return e.speedPolicy }
