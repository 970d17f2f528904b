package grid

// Slot is the outcome of a placement search: a position, or nothing.
// The zero value is [NotFound]; a found slot at the origin is distinct from it.
type Slot struct {
	Position Position `json:"position"`
	Found    bool     `json:"found"`
}

// NotFound is the empty placement result.
var NotFound = Slot{}

// Found wraps p as a successful placement result.
func Found(p Position) Slot {
	return Slot{Position: p, Found: true}
}

// Get returns the position and whether the search succeeded.
func (s Slot) Get() (Position, bool) {
	return s.Position, s.Found
}

// FindSlot returns the first origin, in row-major order, where an item of
// size s fits inside d without covering any cell occupied by l.
//
// An inconsistent layout (two items sharing a cell) is reported as an
// [*OverlapError]. Exhausting the grid is not an error; the returned Slot is
// [NotFound].
func FindSlot[T any](d Dimensions, l Layout[T], s Size) (Slot, error) {
	o, err := BuildOccupancy(d, l)
	if err != nil {
		return NotFound, err
	}
	return scan(o, s), nil
}

// scan walks origins top-to-bottom, left-to-right.
func scan(o *Occupancy, s Size) Slot {
	for row := 0; row < o.Rows(); row++ {
		for col := 0; col < o.Columns(); col++ {
			origin := Position{X: col, Y: row}
			if o.At(origin) {
				continue
			}
			if fits(o, Rect{Position: origin, Size: s}) {
				return Found(origin)
			}
		}
	}
	return NotFound
}

// fits reports whether r stays within o and collides with nothing.
func fits(o *Occupancy, r Rect) bool {
	if r.X+r.Width > o.Columns() || r.Y+r.Height > o.Rows() {
		return false
	}
	return !WouldOverlap(o, r)
}
