package parallax

import "errors"

// Errors reported by Engine operations. None of them is fatal: the failing
// call leaves the engine unchanged and the error is logged and recorded,
// retrievable with Err and Errors.
var (
	// ErrConfigurationMismatch: a rules slice whose length differs from the
	// elements it describes.
	ErrConfigurationMismatch = errors.New("rules count does not match elements count")
	// ErrDuplicateElement: the element is already managed by the engine.
	ErrDuplicateElement = errors.New("element already managed")
	// ErrNilElement: a nil element was passed for insertion.
	ErrNilElement = errors.New("element is nil")
	// ErrInvalidEditTarget: the edited index is out of range, or the edit
	// tried to replace the item's element.
	ErrInvalidEditTarget = errors.New("invalid edit target")
)

func (e *Engine) report(err error) {
	e.errs = append(e.errs, err)
	e.logger.Warn("parallax operation ignored", "err", err)
}

// Report records err against the engine the way a rejected operation
// would. Front ends use it for payloads they reject before reaching the
// engine.
func (e *Engine) Report(err error) *Engine {
	if err != nil {
		e.report(err)
	}
	return e
}

// Err returns the most recently reported error, or nil.
func (e *Engine) Err() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs[len(e.errs)-1]
}

// Errors returns every error reported since the last ClearErrors.
func (e *Engine) Errors() []error {
	return append([]error(nil), e.errs...)
}

// ClearErrors forgets the reported errors.
func (e *Engine) ClearErrors() *Engine {
	e.errs = nil
	return e
}
