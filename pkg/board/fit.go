package board

import (
	"math"

	"github.com/matzehuels/gridpack/pkg/grid"
)

// Fit derives grid dimensions for a viewport of the given pixel size.
//
// MinColumns and MinRows are the whole cells that fit in the viewport.
// Columns and Rows start there and grow until every item of l is contained.
// A non-positive box size yields an empty grid with that box size, which
// [grid.Dimensions.Validate] rejects.
func Fit[T any](viewportWidth, viewportHeight, boxSize float64, l grid.Layout[T]) grid.Dimensions {
	d := grid.Dimensions{BoxSize: boxSize}
	if boxSize <= 0 {
		return d
	}
	d.MinColumns = max(int(math.Floor(viewportWidth/boxSize)), 0)
	d.MinRows = max(int(math.Floor(viewportHeight/boxSize)), 0)
	d.Columns, d.Rows = d.MinColumns, d.MinRows
	for _, it := range l {
		d.Columns = max(d.Columns, it.X+it.Width)
		d.Rows = max(d.Rows, it.Y+it.Height)
	}
	return d
}
