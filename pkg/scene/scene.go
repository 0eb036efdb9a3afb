// Package scene ties a parsed page to its parallax engines: it lays the
// page out, runs its scripts, builds engines from configuration when the
// page builds none itself, and turns pointer samples into rendered frames.
package scene

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"mouseparallax/pkg/config"
	"mouseparallax/pkg/css"
	"mouseparallax/pkg/event"
	"mouseparallax/pkg/html"
	"mouseparallax/pkg/js"
	"mouseparallax/pkg/layout"
	"mouseparallax/pkg/parallax"
	"mouseparallax/pkg/render"
	stdnet "mouseparallax/std/net"
)

var (
	// ErrNoItems: neither the page scripts nor the configuration produced
	// an element to animate.
	ErrNoItems = errors.New("scene has no parallax items")
	// ErrNoPage: the configuration names no page to load.
	ErrNoPage = errors.New("no page configured")
)

// DefaultStep is how far the scene clock advances per pointer sample.
const DefaultStep = 50 * time.Millisecond

// Scene is one page with its layout and parallax engines.
type Scene struct {
	cfg     config.Config
	doc     *html.Document
	layout  *layout.LayoutEngine
	boxes   []*layout.Box
	engines []*parallax.Engine
	logger  *log.Logger

	clock  *event.ManualClock
	live   event.Clock
	timers *event.Timers
	step   time.Duration

	pointerX, pointerY float64
	hasPointer         bool
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger shared by the scene, its scripts and its
// engines.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStep sets how far the scene clock advances per Dispatch.
func WithStep(d time.Duration) Option {
	return func(s *Scene) { s.step = d }
}

// WithLiveClock makes listener throttling read c instead of the scene
// clock. Interactive front ends pass time.Now and call Tick regularly so
// the last event of a throttle window is delivered.
func WithLiveClock(c event.Clock) Option {
	return func(s *Scene) { s.live = c }
}

// Load reads the page named by cfg, from disk or over HTTP, and builds
// the scene.
func Load(cfg config.Config, opts ...Option) (*Scene, error) {
	path := cfg.PagePath()
	if path == "" {
		return nil, ErrNoPage
	}
	if stdnet.IsNetworkURL(path) {
		page, err := stdnet.FetchPage(path)
		if err != nil {
			return nil, fmt.Errorf("fetching page: %w", err)
		}
		return New(page, cfg, opts...)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	return New(string(data), cfg, opts...)
}

// New parses page and builds the scene. Scripts run after a first layout
// so they can measure elements. Scripts that throw are logged and do not
// fail the scene.
func New(page string, cfg config.Config, opts ...Option) (*Scene, error) {
	s := &Scene{
		cfg:    cfg,
		logger: log.Default(),
		clock:  event.NewManualClock(time.Unix(0, 0)),
		step:   DefaultStep,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.live != nil {
		s.timers = event.NewTimers(s.live)
	}

	doc, err := html.Parse(page)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	s.doc = doc
	s.layout = layout.NewLayoutEngine(cfg.Viewport.Width, cfg.Viewport.Height)
	s.Relayout()

	engineOpts := append(cfg.EngineOptions(),
		parallax.WithClock(s.eventClock()),
		parallax.WithScheduler(s.scheduler()),
		parallax.WithLogger(s.logger.WithPrefix("parallax")),
	)

	if len(doc.Scripts) > 0 {
		jsEngine := js.New(
			js.WithLogger(s.logger),
			js.WithParallaxOptions(engineOpts...),
		)
		if err := jsEngine.Execute(doc); err != nil {
			s.logger.Warn("script failed", "err", err)
		}
		s.engines = jsEngine.Engines()
	}

	if len(s.engines) == 0 {
		pe, err := s.configuredEngine(engineOpts)
		if err != nil {
			return nil, err
		}
		s.engines = append(s.engines, pe)
	}

	s.Relayout()
	s.logger.Debug("scene ready", "engines", len(s.engines), "boxes", len(s.boxes))
	return s, nil
}

// configuredEngine builds an engine from the container id and item class
// of the configuration, with per-id rules applied.
func (s *Scene) configuredEngine(opts []parallax.Option) (*parallax.Engine, error) {
	var container *html.Node
	var items []*html.Node
	if s.cfg.Container != "" {
		container = s.doc.GetElementByID(s.cfg.Container)
		if container == nil {
			return nil, fmt.Errorf("container #%s not found: %w", s.cfg.Container, ErrNoItems)
		}
		items = html.ElementsByClassName(container, s.cfg.ItemClass)
	} else {
		items = s.doc.GetElementsByClassName(s.cfg.ItemClass)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no .%s elements: %w", s.cfg.ItemClass, ErrNoItems)
	}

	rules := make([]parallax.Rules, len(items))
	for i, el := range items {
		rules[i] = s.cfg.ItemRules(el.ID())
	}

	opts = append(opts, parallax.WithDocument(s.doc))
	if container != nil {
		opts = append(opts, parallax.WithContainer(container))
	}
	pe := parallax.New(nil, opts...)
	pe.SetItems(items, rules)
	return pe.Build(), nil
}

func (s *Scene) eventClock() event.Clock {
	if s.live != nil {
		return s.live
	}
	return s.clock.Now
}

func (s *Scene) scheduler() event.Scheduler {
	if s.timers != nil {
		return s.timers.Schedule
	}
	return s.clock.Schedule
}

// Relayout recomputes every element's box from the current styles.
func (s *Scene) Relayout() {
	s.boxes = s.layout.Layout(s.doc)
}

// Dispatch delivers a mousemove at viewport position (x, y) to the page,
// advances the scene clock by one step and relayouts.
func (s *Scene) Dispatch(x, y float64) {
	s.DispatchEvent(event.Event{Type: event.MouseMove, ClientX: x, ClientY: y})
}

// Touch delivers a single-point touchmove at (x, y).
func (s *Scene) Touch(x, y float64) {
	s.DispatchEvent(event.Event{
		Type:    event.TouchMove,
		Touches: []event.Touch{{ClientX: x, ClientY: y, PageX: x, PageY: y}},
	})
}

// DispatchEvent delivers ev to the page the way Dispatch does, so a Scene
// can stand in for its document as the target of a pointer source.
func (s *Scene) DispatchEvent(ev event.Event) int {
	if s.timers != nil {
		s.timers.Fire()
	}
	n := s.doc.DispatchEvent(ev)
	s.pointerX, s.pointerY = ev.ClientX, ev.ClientY
	if len(ev.Touches) > 0 {
		s.pointerX, s.pointerY = ev.Touches[0].PageX, ev.Touches[0].PageY
	}
	s.hasPointer = true
	s.clock.Advance(s.step)
	s.Relayout()
	return n
}

// Tick delivers throttled events whose window has closed on the live
// clock and relayouts when any were. It returns how many were delivered.
// Scenes on the manual clock deliver them in Advance instead.
func (s *Scene) Tick() int {
	if s.timers == nil {
		return 0
	}
	n := s.timers.Fire()
	if n > 0 {
		s.Relayout()
	}
	return n
}

// Advance moves the scene clock forward by d without a pointer event,
// delivering throttled events that fall due, and relayouts when any were.
func (s *Scene) Advance(d time.Duration) int {
	n := s.clock.Advance(d)
	if n > 0 {
		s.Relayout()
	}
	return n
}

// Frame paints the current layout as PNG to w. The last pointer
// position is marked when markPointer is set.
func (s *Scene) Frame(w io.Writer, markPointer bool) error {
	r := s.paint(markPointer)
	return r.EncodePNG(w)
}

// SaveFrame paints the current layout to a PNG file.
func (s *Scene) SaveFrame(path string, markPointer bool) error {
	r := s.paint(markPointer)
	if err := r.SavePNG(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}

func (s *Scene) paint(markPointer bool) *render.Renderer {
	w, h := s.layout.Viewport()
	r := render.NewRenderer(int(w), int(h))
	r.Render(s.boxes)
	if markPointer && s.hasPointer {
		r.DrawPointer(s.pointerX, s.pointerY)
	}
	return r
}

// Image paints the current layout and returns the pixels.
func (s *Scene) Image(markPointer bool) image.Image {
	return s.paint(markPointer).Image()
}

// Document returns the page.
func (s *Scene) Document() *html.Document { return s.doc }

// Engines returns the parallax engines driving the page.
func (s *Scene) Engines() []*parallax.Engine {
	return append([]*parallax.Engine(nil), s.engines...)
}

// Boxes returns the top-level boxes of the last layout.
func (s *Scene) Boxes() []*layout.Box { return s.boxes }

// Clock returns the scene clock.
func (s *Scene) Clock() *event.ManualClock { return s.clock }

// Rect returns the laid-out rectangle of the element with id.
func (s *Scene) Rect(id string) (html.Rect, bool) {
	n := s.doc.GetElementByID(id)
	if n == nil || n.Layout == nil {
		return html.Rect{}, false
	}
	return *n.Layout, true
}

// ItemState is where one parallax item currently is.
type ItemState struct {
	ID   string  `yaml:"id" toml:"id"`
	Left string  `yaml:"left" toml:"left"`
	Top  string  `yaml:"top" toml:"top"`
	X    float64 `yaml:"x" toml:"x"`
	Y    float64 `yaml:"y" toml:"y"`
}

// Items reports every item of every engine, in engine then item order.
func (s *Scene) Items() []ItemState {
	var states []ItemState
	for _, e := range s.engines {
		for _, it := range e.Items() {
			st := ItemState{ID: it.Element.ID()}
			st.Left, _ = css.GetProperty(it.Element, "left")
			st.Top, _ = css.GetProperty(it.Element, "top")
			if it.Element.Layout != nil {
				st.X, st.Y = it.Element.Layout.X, it.Element.Layout.Y
			}
			states = append(states, st)
		}
	}
	return states
}

// Destroy tears down every engine.
func (s *Scene) Destroy() {
	for _, e := range s.engines {
		e.Destroy()
	}
}
