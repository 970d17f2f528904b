package grid

import (
	"cmp"
	"slices"
)

// SnapPoint is a cell origin ranked as a drop target.
type SnapPoint struct {
	Position Position      `json:"position"`
	Pixel    PixelPosition `json:"pixel"`
	Distance float64       `json:"distance"`
}

// RankSnapPoints returns every cell origin of d ordered by Euclidean distance
// from px, nearest first. Equal distances keep row-major order.
//
// The full ranking is materialised so callers can walk it until a candidate
// satisfies their own constraint; see [NearestFit]. A grid larger than
// [MaxCells] has no ranking.
func RankSnapPoints(d Dimensions, px PixelPosition) []SnapPoint {
	if _, ok := cellCount(d.Columns, d.Rows); !ok {
		return nil
	}
	points := make([]SnapPoint, 0, d.Cells())
	for row := 0; row < d.Rows; row++ {
		for col := 0; col < d.Columns; col++ {
			p := Position{X: col, Y: row}
			pp := ToPixel(d, p)
			points = append(points, SnapPoint{
				Position: p,
				Pixel:    pp,
				Distance: Distance(pp, px),
			})
		}
	}
	slices.SortStableFunc(points, func(a, b SnapPoint) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return points
}

// NearestFit returns the snap point nearest to px at which an item of size s
// stays inside d and overlaps nothing in l. The layout must be consistent.
func NearestFit[T any](d Dimensions, l Layout[T], px PixelPosition, s Size) (Slot, error) {
	o, err := BuildOccupancy(d, l)
	if err != nil {
		return NotFound, err
	}
	for _, sp := range RankSnapPoints(d, px) {
		if fits(o, Rect{Position: sp.Position, Size: s}) {
			return Found(sp.Position), nil
		}
	}
	return NotFound, nil
}
