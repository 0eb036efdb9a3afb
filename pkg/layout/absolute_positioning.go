package layout

// applyAbsolutePositioning places an out-of-flow box against its
// containing block: size from width/height, position from left/top or
// right/bottom, then the translate() transform, whose percentages refer to
// the box's own size.
func (le *LayoutEngine) applyAbsolutePositioning(box *Box) {
	cbX, cbY := 0.0, 0.0
	cbWidth, cbHeight := le.viewport.width, le.viewport.height
	if cb := box.FindContainingBlock(); cb != nil {
		cbX, cbY = cb.X, cb.Y
		cbWidth, cbHeight = cb.Width, cb.Height
	}

	style := box.Style
	if w, ok := style.GetLengthOrPercent("width"); ok {
		box.Width = w.Resolve(cbWidth)
	}
	if h, ok := style.GetLengthOrPercent("height"); ok {
		box.Height = h.Resolve(cbHeight)
	}

	box.X = cbX
	if l, ok := style.GetLengthOrPercent("left"); ok {
		box.X = cbX + l.Resolve(cbWidth)
	} else if r, ok := style.GetLengthOrPercent("right"); ok {
		box.X = cbX + cbWidth - r.Resolve(cbWidth) - box.Width
	}
	box.Y = cbY
	if t, ok := style.GetLengthOrPercent("top"); ok {
		box.Y = cbY + t.Resolve(cbHeight)
	} else if b, ok := style.GetLengthOrPercent("bottom"); ok {
		box.Y = cbY + cbHeight - b.Resolve(cbHeight) - box.Height
	}

	if tx, ty, ok := style.GetTranslate(); ok {
		box.X += tx.Resolve(box.Width)
		box.Y += ty.Resolve(box.Height)
	}
}
