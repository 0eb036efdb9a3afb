package parallax

import (
	"fmt"
	"math"
	"strconv"

	"mouseparallax/pkg/css"
	"mouseparallax/pkg/html"
)

// SetItems replaces the whole collection. When rules are given there must
// be exactly one entry per element, otherwise nothing changes and
// ErrConfigurationMismatch is reported. Nil and repeated elements in the
// input are skipped and reported.
func (e *Engine) SetItems(elements []*html.Node, rules ...[]Rules) *Engine {
	overrides, ok := e.checkRules(elements, rules)
	if !ok {
		return e
	}
	prev := e.items
	e.items = nil
	for i, el := range elements {
		if err := e.insert(el, overrides(i)); err != nil {
			e.report(err)
		}
	}
	if len(e.items) == 0 && len(prev) > 0 {
		e.logger.Debug("parallax collection cleared", "previous", len(prev))
	}
	return e
}

// AddItems appends every element, following the SetItems rules contract.
func (e *Engine) AddItems(elements []*html.Node, rules ...[]Rules) *Engine {
	overrides, ok := e.checkRules(elements, rules)
	if !ok {
		return e
	}
	for i, el := range elements {
		if err := e.insert(el, overrides(i)); err != nil {
			e.report(err)
		}
	}
	return e
}

// AddItem appends el and applies its CSS right away. A nil element or one
// the engine already manages is reported and ignored. When the engine has
// no container yet, el's parent becomes the container.
func (e *Engine) AddItem(el *html.Node, rules ...Rules) *Engine {
	var merged Rules
	for _, r := range rules {
		merged = merged.Merge(r)
	}
	if err := e.insert(el, merged); err != nil {
		e.report(err)
	}
	return e
}

// checkRules validates the optional per-element rules slice and returns a
// lookup that yields the override for element i.
func (e *Engine) checkRules(elements []*html.Node, rules [][]Rules) (func(int) Rules, bool) {
	if len(rules) == 0 || rules[0] == nil {
		return func(int) Rules { return Rules{} }, true
	}
	list := rules[0]
	if len(list) != len(elements) {
		e.report(fmt.Errorf("%d rules for %d elements: %w", len(list), len(elements), ErrConfigurationMismatch))
		return nil, false
	}
	return func(i int) Rules { return list[i] }, true
}

func (e *Engine) insert(el *html.Node, rules Rules) error {
	if el == nil {
		return ErrNilElement
	}
	if i := e.indexOf(el); i >= 0 {
		return fmt.Errorf("<%s> already at index %d: %w", el.TagName, i, ErrDuplicateElement)
	}
	it := BuildItem(el, e.prefix, e.defaults, rules)
	e.items = append(e.items, it)
	if e.container == nil {
		e.container = el.Parent
	}
	e.applyItem(&e.items[len(e.items)-1])
	return nil
}

func (e *Engine) indexOf(el *html.Node) int {
	for i := range e.items {
		if e.items[i].Element == el {
			return i
		}
	}
	return -1
}

// EditItem merges rules into the item at index and reapplies that item's
// CSS. An out-of-range index is reported as ErrInvalidEditTarget.
func (e *Engine) EditItem(index int, rules Rules) *Engine {
	if index < 0 || index >= len(e.items) {
		e.report(fmt.Errorf("index %d of %d items: %w", index, len(e.items), ErrInvalidEditTarget))
		return e
	}
	it := &e.items[index]
	it.apply(rules)
	e.applyItem(it)
	return e
}

// EditItemFields is EditItem for a loosely-typed payload, as produced by
// scripts and config files. A payload naming "element" is rejected.
func (e *Engine) EditItemFields(index int, fields map[string]any) *Engine {
	rules, err := DecodeRules(fields)
	if err != nil {
		e.report(fmt.Errorf("edit item %d: %w", index, err))
		return e
	}
	return e.EditItem(index, rules)
}

// Items returns a copy of the collection.
func (e *Engine) Items() []Item {
	return append([]Item(nil), e.items...)
}

// Index returns the position of el in the collection, or -1.
func (e *Engine) Index(el *html.Node) int { return e.indexOf(el) }

// Item returns the item at index.
func (e *Engine) Item(index int) (Item, bool) {
	if index < 0 || index >= len(e.items) {
		return Item{}, false
	}
	return e.items[index], true
}

// Len is the number of managed items.
func (e *Engine) Len() int { return len(e.items) }

// Globals returns a copy of the current global rules. Writing through its
// pointers does not reach the engine.
func (e *Engine) Globals() Globals { return e.globals.Clone() }

// SetGlobals replaces the global rules and reloads, so speed changes show
// up in the rendered transitions immediately. Movement picks up the new
// intensities and limits on the next pointer event.
func (e *Engine) SetGlobals(g Globals) *Engine {
	e.globals = g.Clone()
	return e.Reload()
}

// MergeGlobals copies the fields set in g over the current global rules
// without reloading. Intensities and limits apply from the next pointer
// event; a speed change reaches the rendered transitions at the next
// Reload, the way a script edits its globals object and then reloads.
func (e *Engine) MergeGlobals(g Globals) *Engine {
	e.globals = e.globals.Merge(g)
	return e
}

// applyCSS writes the rendered CSS of every item.
func (e *Engine) applyCSS() {
	for i := range e.items {
		e.applyItem(&e.items[i])
	}
}

// applyItem writes the positioning contract for one item: absolutely
// positioned, centered by translate, with its transition and stacking
// order.
func (e *Engine) applyItem(it *Item) {
	el := it.Element
	style := css.ElementStyle(el)
	style.Set("position", "absolute")
	style.Set("left", "50%")
	style.Set("top", "50%")
	style.Set("transform", "translate(-50%, -50%)")

	it.applyTransition(style, e.effectiveSpeed(it.Speed))

	if it.Position != nil {
		style.Set("z-index", strconv.Itoa(*it.Position))
	}
	css.SetElementStyle(el, style)
}

// effectiveSpeed combines an item speed with Globals.Speed under the
// engine's policy.
func (e *Engine) effectiveSpeed(item int) int {
	g := e.globals.Speed
	if g == nil || *g < 0 {
		return item
	}
	switch e.speedPolicy {
	case SpeedOverride:
		return int(*g)
	default:
		return int(math.Round(float64(item) * *g))
	}
}
