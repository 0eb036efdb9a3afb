package layout

import "mouseparallax/pkg/css"

// FindContainingBlock finds the containing block for a positioned element
// For absolute positioned elements: nearest positioned ancestor
// For relative/static: parent box
// For fixed: viewport (nil)
func (b *Box) FindContainingBlock() *Box {
	switch b.Position {
	case css.PositionAbsolute:
		return b.findNearestPositionedAncestor()
	case css.PositionFixed:
		return nil
	default:
		return b.Parent
	}
}

// findNearestPositionedAncestor finds the nearest ancestor with position != static
func (b *Box) findNearestPositionedAncestor() *Box {
	for current := b.Parent; current != nil; current = current.Parent {
		if current.IsPositioned() {
			return current
		}
	}
	// No positioned ancestor: the initial containing block (viewport)
	return nil
}

// IsPositioned returns true if the box has position != static
func (b *Box) IsPositioned() bool {
	return b.Position != css.PositionStatic
}
