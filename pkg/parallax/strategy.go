package parallax

// MoveStrategy decides what a pointer movement does to the engine.
// Listeners call it for every (throttled) event; the default runs
// Execute. Custom strategies can remap coordinates, record them, or add
// their own effects before delegating to Execute.
type MoveStrategy interface {
	Move(e *Engine, x, y float64)
}

// MoveFunc adapts a function to MoveStrategy.
type MoveFunc func(e *Engine, x, y float64)

func (f MoveFunc) Move(e *Engine, x, y float64) { f(e, x, y) }

// GeometryStrategy is the built-in strategy: Execute(x, y).
type GeometryStrategy struct{}

func (GeometryStrategy) Move(e *Engine, x, y float64) { e.Execute(x, y) }

// Move runs the movement strategy for a pointer at (x, y).
func (e *Engine) Move(x, y float64) *Engine {
	e.strategy.Move(e, x, y)
	return e
}

// SetStrategy replaces the movement strategy; nil restores the default.
func (e *Engine) SetStrategy(s MoveStrategy) *Engine {
	if s == nil {
		s = GeometryStrategy{}
	}
	e.strategy = s
	return e
}
