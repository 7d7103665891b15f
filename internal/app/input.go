package app

// CellAt maps a cursor position in screen pixels to grid coordinates. It
// reports false when the cursor is outside the grid area.
func CellAt(px, py, scale, size int) (int, int, bool) {
	if scale <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y := px/scale, py/scale
	if x >= size || y >= size {
		return 0, 0, false
	}
	return x, y, true
}

// PaintIntent decides what a held pointer does to the cell under it. The
// right button erases, as does the left button while shift is held.
func PaintIntent(left, right, shift bool) (paint, erase bool) {
	switch {
	case right:
		return true, true
	case left:
		return true, shift
	}
	return false, false
}

// FitScale returns the largest integer cell scale that fits a size×size grid
// into a square viewport of the given edge, never less than 1.
func FitScale(viewport, size int) int {
	if size <= 0 {
		return 1
	}
	scale := viewport / size
	if scale < 1 {
		return 1
	}
	return scale
}
