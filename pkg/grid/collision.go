package grid

// WouldOverlap reports whether placing r would cover an occupied cell.
//
// Cells of r outside the occupancy map are treated as free. Bounds are the
// caller's concern (see [Rect.Overflows]); this only answers collisions.
func WouldOverlap(o *Occupancy, r Rect) bool {
	for _, c := range CellsOf(r.Clip(o.Columns(), o.Rows())) {
		if o.At(c) {
			return true
		}
	}
	return false
}
