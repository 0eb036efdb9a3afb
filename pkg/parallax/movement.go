package parallax

import (
	"math"

	"mouseparallax/pkg/css"
)

// Displacement is the per-axis movement rule, in percent of the container
// size. The offset is scaled by the item intensity and by the global
// intensity when set, and only then clamped, so no multiplier can push an
// item past its limit. A negative limit means unlimited.
func Displacement(offset, intensity float64, globalIntensity *float64, limit float64) float64 {
	d := offset * intensity * 100
	if globalIntensity != nil {
		d *= *globalIntensity
	}
	if limit >= 0 && math.Abs(d) > limit {
		d = math.Copysign(limit, d)
	}
	return d
}

// effectiveLimit is the item limit unless it is unlimited, in which case
// a positive global limit applies.
func effectiveLimit(item float64, global *float64) float64 {
	if item >= 0 {
		return item
	}
	if global != nil && *global > 0 {
		return *global
	}
	return Unlimited
}

// Execute moves every item for a pointer at viewport position (x, y). It
// does nothing while stopped or without a container. The container box is
// measured on every call.
func (e *Engine) Execute(x, y float64) *Engine {
	if e.container == nil || e.status == Stopped {
		return e
	}
	rect := e.container.BoundingClientRect()
	cx, cy := ComputeOffset(x-rect.Left(), y-rect.Top(), e.container.OffsetWidth(), e.container.OffsetHeight())
	for i := range e.items {
		e.moveItem(&e.items[i], cx, cy)
	}
	return e
}

func (e *Engine) moveItem(it *Item, cx, cy float64) {
	dx := Displacement(cx, it.IntensityX, e.globals.IntensityX, effectiveLimit(it.LimitX, e.globals.LimitX))
	dy := Displacement(cy, it.IntensityY, e.globals.IntensityY, effectiveLimit(it.LimitY, e.globals.LimitY))

	style := css.ElementStyle(it.Element)
	style.Set("left", css.Percent(dx+50))
	style.Set("top", css.Percent(dy+50))
	css.SetElementStyle(it.Element, style)
}
