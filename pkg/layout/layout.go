// Package layout assigns viewport rectangles to document elements.
//
// The model is deliberately small: block elements stack vertically in
// normal flow, and absolutely or fixed positioned elements are placed
// against their containing block from left/top (or right/bottom) lengths
// and then shifted by a translate() transform. That is enough for the
// scenes parallax layers live in: a sized container holding centered,
// absolutely positioned layers.
package layout

import (
	"mouseparallax/pkg/css"
	"mouseparallax/pkg/html"
)

type Box struct {
	Node     *html.Node
	Style    *css.Style
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Children []*Box
	Parent   *Box
	Position css.PositionType
	ZIndex   int
}

// Rect returns the box geometry.
func (b *Box) Rect() html.Rect {
	return html.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	absoluteBoxes []*Box
	stylesheets   []*css.Stylesheet
}

func NewLayoutEngine(viewportWidth, viewportHeight float64) *LayoutEngine {
	le := &LayoutEngine{}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	return le
}

// Viewport returns the viewport size.
func (le *LayoutEngine) Viewport() (width, height float64) {
	return le.viewport.width, le.viewport.height
}

// Layout lays out every element under doc.Root and stores each element's
// rectangle in its Node.Layout, which is what BoundingClientRect reports.
// Styles come from the document's <style> blocks under the inline style
// attribute. The returned boxes are the top-level boxes in document order.
func (le *LayoutEngine) Layout(doc *html.Document) []*Box {
	le.absoluteBoxes = nil
	le.stylesheets = css.ParseStylesheets(doc)

	var roots []*Box
	y := 0.0
	for _, child := range doc.Root.Children {
		if child.Type != html.ElementNode {
			continue
		}
		box := le.layoutNode(child, nil, 0, y, le.viewport.width)
		if box == nil {
			continue
		}
		roots = append(roots, box)
		if !isOutOfFlow(box) {
			y += box.Height
		}
	}

	// Out-of-flow boxes are placed once the flow around them has its final
	// size. Placing one may queue its own absolute descendants.
	for i := 0; i < len(le.absoluteBoxes); i++ {
		box := le.absoluteBoxes[i]
		le.applyAbsolutePositioning(box)
		le.layoutChildren(box)
	}

	for _, root := range roots {
		commit(root)
	}
	return roots
}

// layoutNode builds the box for n. In-flow boxes are sized and their
// children laid out immediately; out-of-flow boxes are queued.
func (le *LayoutEngine) layoutNode(n *html.Node, parent *Box, x, y, availableWidth float64) *Box {
	style := css.ComputeStyle(n, le.stylesheets)
	if display, ok := style.Get("display"); ok && display == "none" {
		n.Layout = nil
		return nil
	}

	box := &Box{
		Node:     n,
		Style:    style,
		Parent:   parent,
		Position: style.GetPosition(),
	}
	if z, ok := style.GetZIndex(); ok {
		box.ZIndex = z
	}
	if parent != nil {
		parent.Children = append(parent.Children, box)
	}

	if isOutOfFlow(box) {
		le.absoluteBoxes = append(le.absoluteBoxes, box)
		return box
	}

	box.X, box.Y = x, y
	box.Width = availableWidth
	if w, ok := style.GetLengthOrPercent("width"); ok {
		box.Width = w.Resolve(availableWidth)
	}
	le.layoutChildren(box)

	if box.Position == css.PositionRelative {
		le.applyRelativeOffset(box)
	}
	return box
}

// layoutChildren stacks the in-flow children of box and, unless the box
// has an explicit height, sizes it to fit them.
func (le *LayoutEngine) layoutChildren(box *Box) {
	y := box.Y
	for _, child := range box.Node.Children {
		if child.Type != html.ElementNode {
			continue
		}
		cb := le.layoutNode(child, box, box.X, y, box.Width)
		if cb != nil && !isOutOfFlow(cb) {
			y = cb.Y + cb.Height
		}
	}

	h, ok := box.Style.GetLengthOrPercent("height")
	switch {
	case ok && !h.Percent:
		box.Height = h.Value
	case ok && h.Percent && box.Parent != nil:
		box.Height = h.Resolve(box.Parent.Height)
	case ok && h.Percent:
		box.Height = h.Resolve(le.viewport.height)
	case !isOutOfFlow(box):
		box.Height = y - box.Y
	}
}

func (le *LayoutEngine) applyRelativeOffset(box *Box) {
	cbWidth, cbHeight := le.viewport.width, le.viewport.height
	if box.Parent != nil {
		cbWidth, cbHeight = box.Parent.Width, box.Parent.Height
	}
	if l, ok := box.Style.GetLengthOrPercent("left"); ok {
		shiftBox(box, l.Resolve(cbWidth), 0)
	}
	if t, ok := box.Style.GetLengthOrPercent("top"); ok {
		shiftBox(box, 0, t.Resolve(cbHeight))
	}
}

func isOutOfFlow(b *Box) bool {
	return b.Position == css.PositionAbsolute || b.Position == css.PositionFixed
}

func shiftBox(b *Box, dx, dy float64) {
	b.X += dx
	b.Y += dy
	for _, c := range b.Children {
		if !isOutOfFlow(c) {
			shiftBox(c, dx, dy)
		}
	}
}

// commit writes every box rectangle back to its node.
func commit(b *Box) {
	r := b.Rect()
	b.Node.Layout = &r
	for _, c := range b.Children {
		commit(c)
	}
}
