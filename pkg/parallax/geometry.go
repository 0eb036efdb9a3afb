package parallax

// ComputeOffset maps a point inside a w×h container to its offset from the
// container center, as a fraction of the container size: the center is
// (0, 0), the top-left corner (-0.5, -0.5). Points outside the container
// produce magnitudes above 0.5; callers decide whether to clamp.
//
// A zero dimension yields 0 on that axis.
func ComputeOffset(x, y, w, h float64) (float64, float64) {
	var ox, oy float64
	if w != 0 {
		ox = (x - w/2) / w
	}
	if h != 0 {
		oy = (y - h/2) / h
	}
	return ox, oy
}
