package parallax

// Start lets Execute move items again.
func (e *Engine) Start() *Engine {
	e.status = Running
	return e
}

// Stop turns Execute into a no-op. Listeners stay attached.
func (e *Engine) Stop() *Engine {
	e.status = Stopped
	return e
}

// Status returns the run state.
func (e *Engine) Status() Status { return e.status }

// Running reports whether the engine reacts to movement.
func (e *Engine) Running() bool { return e.status == Running }

// Build starts the engine, applies every item's CSS and subscribes the
// pointer listeners.
func (e *Engine) Build() *Engine {
	e.Start()
	e.applyCSS()
	e.logger.Debug("parallax built", "items", len(e.items), "throttle", e.throttle)
	return e.CreateListeners()
}

// Reload reapplies every item's CSS and resubscribes the listeners, picking
// up edited rules and a changed throttle. The run state is kept.
func (e *Engine) Reload() *Engine {
	e.applyCSS()
	return e.ReloadListeners()
}

// Destroy drops every item, stops and unsubscribes. Inline CSS already
// written to the elements is left as is.
func (e *Engine) Destroy() *Engine {
	e.items = nil
	e.Stop()
	e.logger.Debug("parallax destroyed")
	return e.DestroyListeners()
}
