package grid

import "math"

// CellsOf enumerates every cell covered by r in row-major order.
// A rectangle with zero or negative width or height covers no cells.
func CellsOf(r Rect) []Position {
	if r.Width <= 0 || r.Height <= 0 {
		return nil
	}
	cells := make([]Position, 0, r.Width*r.Height)
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			cells = append(cells, Position{X: x, Y: y})
		}
	}
	return cells
}

// ToPixel maps a cell origin to pixel space. No rounding is applied.
func ToPixel(d Dimensions, p Position) PixelPosition {
	return PixelPosition{
		X: float64(p.X) * d.BoxSize,
		Y: float64(p.Y) * d.BoxSize,
	}
}

// ToCell quantizes a pixel coordinate to the cell containing it.
// Points on a cell boundary belong to the cell to their right/below.
// A non-positive box size maps everything to the origin.
func ToCell(d Dimensions, px PixelPosition) Position {
	if d.BoxSize <= 0 {
		return Position{}
	}
	return Position{
		X: int(math.Floor(px.X / d.BoxSize)),
		Y: int(math.Floor(px.Y / d.BoxSize)),
	}
}

// Distance returns the Euclidean distance between two pixel positions.
func Distance(a, b PixelPosition) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
