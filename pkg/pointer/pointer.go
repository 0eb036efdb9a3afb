// Package pointer samples the desktop pointer and feeds it into a
// document as mousemove events, so a scene can follow the real mouse
// without a window of its own.
package pointer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"mouseparallax/pkg/event"
)

// ErrUnavailable is returned when no pointer can be queried, typically
// because there is no X display.
var ErrUnavailable = errors.New("pointer unavailable")

// DefaultInterval is the polling period of a Source.
const DefaultInterval = 16 * time.Millisecond

// Querier reports the pointer position in screen coordinates.
type Querier interface {
	QueryPointer() (x, y int, err error)
}

// Dispatcher receives the synthesized events. *html.Document is one.
type Dispatcher interface {
	DispatchEvent(ev event.Event) int
}

// Ticker is implemented by targets that hold back throttled events. Poll
// calls Tick on every sample so those events land even when the pointer
// stops moving.
type Ticker interface {
	Tick() int
}

// X11 queries the pointer of the default screen's root window.
type X11 struct {
	conn *xgb.Conn
	root xproto.Window
}

// NewX11 connects to the display named by $DISPLAY.
func NewX11() (*X11, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %v: %w", err, ErrUnavailable)
	}
	setup := xproto.Setup(conn)
	return &X11{conn: conn, root: setup.DefaultScreen(conn).Root}, nil
}

// QueryPointer returns the pointer position relative to the root window.
func (q *X11) QueryPointer() (int, int, error) {
	reply, err := xproto.QueryPointer(q.conn, q.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// Close releases the X connection.
func (q *X11) Close() {
	q.conn.Close()
}

// Source polls a Querier and dispatches a mousemove for every position
// change. Screen coordinates are translated by the origin so a scene laid
// out at (0, 0) can be mapped onto any screen region.
type Source struct {
	querier  Querier
	target   Dispatcher
	interval time.Duration
	originX  float64
	originY  float64
	logger   *log.Logger

	lastX, lastY int
	seen         bool
}

// Option configures a Source.
type Option func(*Source)

// WithInterval sets the polling period.
func WithInterval(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithOrigin sets the screen position of the document's (0, 0).
func WithOrigin(x, y float64) Option {
	return func(s *Source) { s.originX, s.originY = x, y }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSource creates a source feeding target from q.
func NewSource(q Querier, target Dispatcher, opts ...Option) *Source {
	s := &Source{
		querier:  q,
		target:   target,
		interval: DefaultInterval,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Poll takes one sample. It reports whether an event was dispatched: an
// unchanged position is not dispatched again, but a Ticker target is
// still ticked.
func (s *Source) Poll() (bool, error) {
	x, y, err := s.querier.QueryPointer()
	if err != nil {
		return false, fmt.Errorf("query pointer: %w", err)
	}
	if s.seen && x == s.lastX && y == s.lastY {
		if t, ok := s.target.(Ticker); ok {
			t.Tick()
		}
		return false, nil
	}
	s.lastX, s.lastY, s.seen = x, y, true
	s.target.DispatchEvent(event.Event{
		Type:    event.MouseMove,
		ClientX: float64(x) - s.originX,
		ClientY: float64(y) - s.originY,
	})
	return true, nil
}

// Run polls until ctx is done or a query fails. Events are dispatched
// from the calling goroutine. A cancelled context is not an error.
func (s *Source) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("pointer source started", "interval", s.interval)
	for {
		if _, err := s.Poll(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			s.logger.Debug("pointer source stopped")
			return nil
		case <-ticker.C:
		}
	}
}
