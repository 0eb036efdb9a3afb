package js

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"mouseparallax/pkg/html"
	"mouseparallax/pkg/parallax"
)

// Engine executes JavaScript against an HTML document's DOM.
type Engine struct {
	vm     *goja.Runtime
	logger *log.Logger

	// options every script-created MouseParallax starts from
	parallaxOpts []parallax.Option
	engines      []*parallax.Engine
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes console output and parallax reports to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithParallaxOptions adds options applied to every MouseParallax a script
// constructs, before the script's own arguments.
func WithParallaxOptions(opts ...parallax.Option) Option {
	return func(e *Engine) { e.parallaxOpts = append(e.parallaxOpts, opts...) }
}

// New creates a new JS engine with a fresh goja runtime.
func New(opts ...Option) *Engine {
	vm := goja.New()
	e := &Engine{vm: vm, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}

	// Register console API
	c := &consoleAPI{logger: e.logger.WithPrefix("console")}
	c.register(vm)

	return e
}

// Execute runs all scripts from the document against the DOM.
// Scripts are executed in order. Any JS errors are returned but
// callers may choose to log and continue rather than fail.
func (e *Engine) Execute(doc *html.Document) error {
	// Register document global pointing at this document's DOM
	ctx := registerDocument(e.vm, doc)
	ctx.logger = e.logger
	e.registerParallax(ctx)

	// Execute each script in document order
	for i, script := range doc.Scripts {
		_, err := e.vm.RunString(script)
		if err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}

	return nil
}

// Engines returns the parallax engines scripts have constructed, in
// construction order.
func (e *Engine) Engines() []*parallax.Engine {
	return append([]*parallax.Engine(nil), e.engines...)
}
