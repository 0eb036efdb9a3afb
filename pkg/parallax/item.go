package parallax

import (
	"strconv"
	"strings"

	"mouseparallax/pkg/css"
	"mouseparallax/pkg/html"
)

// Item is one managed element and its resolved rules.
type Item struct {
	Element    *html.Node
	IntensityX float64
	IntensityY float64
	LimitX     float64
	LimitY     float64
	Speed      int
	Position   *int

	// added is the exact suffix the engine appended to the element's
	// transition, so it can be replaced without touching the author's
	// entries.
	added string
}

// BuildItem resolves the rules for el: defaults, then the element's
// dataset under prefix, then each override in order. When the resolved
// speed is positive the element's inline transition is extended with
// top/left entries of that duration. Entries already ending the
// transition with that exact duration are adopted rather than repeated,
// so building twice leaves one copy.
func BuildItem(el *html.Node, prefix string, defaults Defaults, overrides ...Rules) Item {
	it := Item{
		Element:    el,
		IntensityX: defaults.IntensityX,
		IntensityY: defaults.IntensityY,
		LimitX:     defaults.LimitX,
		LimitY:     defaults.LimitY,
		Speed:      defaults.Speed,
	}
	it.apply(DatasetRules(el, prefix))
	for _, o := range overrides {
		it.apply(o)
	}
	if el != nil {
		style := css.ElementStyle(el)
		cur, _ := style.Get("transition")
		if entries := transitionEntries(it.Speed); it.Speed > 0 && strings.HasSuffix(cur, entries) {
			it.added = entries
			if base := strings.TrimSuffix(cur, entries); base != "" {
				it.added = ", " + entries
			}
		}
		it.applyTransition(style, it.Speed)
		css.SetElementStyle(el, style)
	}
	return it
}

// applyTransition replaces the entries the engine appended last time with
// top/left entries of speed ms. With speed 0 only the engine's own entries
// are removed; a transition the element declared is never dropped.
func (it *Item) applyTransition(style *css.Style, speed int) {
	cur, _ := style.Get("transition")
	base := cur
	if it.added != "" && strings.HasSuffix(cur, it.added) {
		base = strings.TrimSuffix(cur, it.added)
	}
	it.added = ""

	if speed > 0 {
		it.added = transitionEntries(speed)
		if base != "" {
			it.added = ", " + it.added
		}
		style.Set("transition", base+it.added)
		return
	}
	switch {
	case base == cur:
	case base == "":
		style.Delete("transition")
	default:
		style.Set("transition", base)
	}
}

func (it *Item) apply(r Rules) {
	if r.IntensityX != nil {
		it.IntensityX = *r.IntensityX
	}
	if r.IntensityY != nil {
		it.IntensityY = *r.IntensityY
	}
	if r.LimitX != nil {
		it.LimitX = *r.LimitX
	}
	if r.LimitY != nil {
		it.LimitY = *r.LimitY
	}
	if r.Speed != nil && *r.Speed >= 0 {
		it.Speed = *r.Speed
	}
	if r.Position != nil {
		it.Position = Int(*r.Position)
	}
}

// Rules returns the item's resolved values as a fully-populated Rules.
func (it Item) Rules() Rules {
	r := Rules{
		IntensityX: Float(it.IntensityX),
		IntensityY: Float(it.IntensityY),
		LimitX:     Float(it.LimitX),
		LimitY:     Float(it.LimitY),
		Speed:      Int(it.Speed),
	}
	if it.Position != nil {
		r.Position = Int(*it.Position)
	}
	return r
}

// transitionEntries is the top/left transition list for speed ms.
func transitionEntries(speed int) string {
	ms := strconv.Itoa(speed) + "ms"
	return "top " + ms + ", left " + ms
}
