package grid

import (
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
)

// MaxCells bounds Columns*Rows. Occupancy maps and snap rankings are
// allocated per cell, so larger grids are rejected as INVALID_GRID.
const MaxCells = 1 << 22

// cellCount returns columns*rows and whether it stays within MaxCells.
// Non-positive extents count as zero cells.
func cellCount(columns, rows int) (int, bool) {
	if columns <= 0 || rows <= 0 {
		return 0, true
	}
	if columns > MaxCells/rows {
		return 0, false
	}
	return columns * rows, true
}

// Dimensions describes the grid an engine call operates on.
//
// Columns and Rows are the effective extent: large enough to contain every
// placed item. MinColumns and MinRows are the extent implied by the visible
// container alone. Columns >= MinColumns and Rows >= MinRows.
type Dimensions struct {
	BoxSize    float64 `json:"box_size" toml:"box_size" bson:"box_size"` // pixels per cell side
	Columns    int     `json:"columns" toml:"columns" bson:"columns"`
	Rows       int     `json:"rows" toml:"rows" bson:"rows"`
	MinColumns int     `json:"min_columns,omitempty" toml:"min_columns,omitempty" bson:"min_columns,omitempty"`
	MinRows    int     `json:"min_rows,omitempty" toml:"min_rows,omitempty" bson:"min_rows,omitempty"`
}

// Validate reports whether d is a usable grid description.
func (d Dimensions) Validate() error {
	if d.BoxSize <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidGrid, "box size must be positive, got %v", d.BoxSize)
	}
	if d.Columns < 0 || d.Rows < 0 || d.MinColumns < 0 || d.MinRows < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidGrid, "grid extents must be non-negative")
	}
	if d.Columns < d.MinColumns || d.Rows < d.MinRows {
		return apperrors.New(apperrors.ErrCodeInvalidGrid,
			"effective extent %dx%d is smaller than minimum %dx%d",
			d.Columns, d.Rows, d.MinColumns, d.MinRows)
	}
	if _, ok := cellCount(d.Columns, d.Rows); !ok {
		return apperrors.New(apperrors.ErrCodeInvalidGrid,
			"grid %dx%d exceeds %d cells", d.Columns, d.Rows, MaxCells)
	}
	return nil
}

// Cells returns the number of cells in the grid, or 0 when the extent
// exceeds [MaxCells].
func (d Dimensions) Cells() int {
	n, _ := cellCount(d.Columns, d.Rows)
	return n
}

// Contains reports whether p lies within [0, Columns) x [0, Rows).
func (d Dimensions) Contains(p Position) bool {
	return p.X >= 0 && p.X < d.Columns && p.Y >= 0 && p.Y < d.Rows
}

// Position is a zero-based grid cell coordinate.
type Position struct {
	X int `json:"x" toml:"x" bson:"x"`
	Y int `json:"y" toml:"y" bson:"y"`
}

// PixelPosition is a continuous pixel-space coordinate. It is deliberately a
// separate type from Position.
type PixelPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is an extent in grid cells.
type Size struct {
	Width  int `json:"width" toml:"width" bson:"width"`
	Height int `json:"height" toml:"height" bson:"height"`
}

// Rect is a positioned extent in grid cells.
type Rect struct {
	Position
	Size
}

// Overflows reports whether r extends past the effective grid extent.
func (r Rect) Overflows(d Dimensions) bool {
	return r.X+r.Width > d.Columns || r.Y+r.Height > d.Rows
}

// Clip returns the part of r inside [0, columns) x [0, rows). A rectangle
// entirely outside has zero size.
func (r Rect) Clip(columns, rows int) Rect {
	if r.Width <= 0 || r.Height <= 0 {
		return Rect{}
	}
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.Width, columns), min(r.Y+r.Height, rows)
	if x0 >= x1 || y0 >= y1 {
		return Rect{}
	}
	return Rect{Position: Position{X: x0, Y: y0}, Size: Size{Width: x1 - x0, Height: y1 - y0}}
}

// Item is a placed rectangle carrying caller-defined payload data.
type Item[T any] struct {
	Position
	Size
	Data T
}

// Rect returns the footprint of the item.
func (it Item[T]) Rect() Rect {
	return Rect{Position: it.Position, Size: it.Size}
}

// MovedTo returns a copy of the item at p with size and payload unchanged.
func (it Item[T]) MovedTo(p Position) Item[T] {
	it.Position = p
	return it
}

// Layout is an ordered sequence of placed items.
type Layout[T any] []Item[T]

// Clone returns a shallow copy of l. Payloads are copied by value.
func (l Layout[T]) Clone() Layout[T] {
	if l == nil {
		return nil
	}
	out := make(Layout[T], len(l))
	copy(out, l)
	return out
}

// Overflowing returns the indices of items that exceed d, in layout order.
func (l Layout[T]) Overflowing(d Dimensions) []int {
	var idx []int
	for i, it := range l {
		if it.Rect().Overflows(d) {
			idx = append(idx, i)
		}
	}
	return idx
}
