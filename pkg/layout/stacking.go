package layout

import (
	"sort"

	"mouseparallax/pkg/css"
)

// StackingContext represents a CSS stacking context.
// A stacking context is created by certain CSS properties (z-index, opacity, transform, etc.)
// and establishes a new local coordinate system for z-ordering.
type StackingContext struct {
	Box    *Box // The box that creates this context (nil for root)
	ZIndex int  // Z-index value (0 for root and auto)

	// Boxes painted as part of this context that do not create their own
	Flow []*Box

	// Child stacking contexts organized by z-index
	NegativeZContexts []*StackingContext // z-index < 0, sorted ascending
	ZeroZContexts     []*StackingContext // z-index == 0, document order
	PositiveZContexts []*StackingContext // z-index > 0, sorted ascending
}

// NewStackingContext creates a new stacking context for the given box.
func NewStackingContext(box *Box, zIndex int) *StackingContext {
	return &StackingContext{
		Box:    box,
		ZIndex: zIndex,
	}
}

// AddChildContext adds a child stacking context to the appropriate z-index category.
func (sc *StackingContext) AddChildContext(child *StackingContext) {
	switch {
	case child.ZIndex < 0:
		sc.NegativeZContexts = append(sc.NegativeZContexts, child)
	case child.ZIndex > 0:
		sc.PositiveZContexts = append(sc.PositiveZContexts, child)
	default:
		sc.ZeroZContexts = append(sc.ZeroZContexts, child)
	}
}

// BoxCreatesStackingContext returns true if the box creates a new stacking context.
func BoxCreatesStackingContext(box *Box) bool {
	if box == nil || box.Style == nil {
		return false
	}

	// Positioned elements with z-index != auto create a stacking context
	if box.IsPositioned() {
		if zStr, ok := box.Style.Get("z-index"); ok && zStr != "auto" && zStr != "" {
			return true
		}
	}

	// Elements with opacity < 1 create a stacking context
	if opacity, ok := box.Style.Get("opacity"); ok && opacity != "1" && opacity != "" {
		return true
	}

	// Elements with transform != none create a stacking context
	if transform, ok := box.Style.Get("transform"); ok && transform != "none" && transform != "" {
		return true
	}

	return false
}

// BuildStackingContextTree builds the stacking context tree from root boxes.
func BuildStackingContextTree(roots []*Box) *StackingContext {
	rootCtx := NewStackingContext(nil, 0)
	for _, root := range roots {
		collectChildContexts(root, rootCtx)
	}
	sortContexts(rootCtx)
	return rootCtx
}

// collectChildContexts finds all stacking contexts in the subtree and adds them to the parent context.
func collectChildContexts(box *Box, parentCtx *StackingContext) {
	if box == nil {
		return
	}

	if BoxCreatesStackingContext(box) {
		childCtx := NewStackingContext(box, box.ZIndex)
		parentCtx.AddChildContext(childCtx)
		for _, child := range box.Children {
			collectChildContexts(child, childCtx)
		}
		sortContexts(childCtx)
		return
	}

	// This box doesn't create a stacking context, so it and its children
	// belong to the same parent context
	parentCtx.Flow = append(parentCtx.Flow, box)
	for _, child := range box.Children {
		collectChildContexts(child, parentCtx)
	}
}

// sortContexts orders the negative and positive children by z-index,
// keeping document order between equal values.
func sortContexts(sc *StackingContext) {
	byZ := func(list []*StackingContext) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].ZIndex < list[j].ZIndex })
	}
	byZ(sc.NegativeZContexts)
	byZ(sc.PositiveZContexts)
}

// PaintOrder flattens the context into the order boxes must be painted,
// back to front: the context box, negative children, flow boxes, then
// zero and positive children.
func (sc *StackingContext) PaintOrder() []*Box {
	var out []*Box
	if sc.Box != nil {
		out = append(out, sc.Box)
	}
	for _, c := range sc.NegativeZContexts {
		out = append(out, c.PaintOrder()...)
	}
	out = append(out, sc.Flow...)
	for _, c := range sc.ZeroZContexts {
		out = append(out, c.PaintOrder()...)
	}
	for _, c := range sc.PositiveZContexts {
		out = append(out, c.PaintOrder()...)
	}
	return out
}

// PaintOrder lays the roots out into a stacking tree and flattens it.
func PaintOrder(roots []*Box) []*Box {
	return BuildStackingContextTree(roots).PaintOrder()
}

// IsPositioned reports whether box is positioned, treating nil as static.
func IsPositioned(box *Box) bool {
	return box != nil && box.Position != css.PositionStatic
}
