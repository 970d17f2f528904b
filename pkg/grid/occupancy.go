package grid

import (
	"fmt"
	"strings"

	apperrors "github.com/matzehuels/gridpack/pkg/errors"
)

// Occupancy is a Rows x Columns boolean cell map. It is derived from a layout
// on demand and never a source of truth.
type Occupancy struct {
	columns int
	rows    int
	cells   []bool // index = y*columns + x
}

// NewOccupancy returns an empty occupancy map. Negative extents, and extents
// beyond [MaxCells], are treated as zero.
func NewOccupancy(columns, rows int) *Occupancy {
	columns, rows = max(columns, 0), max(rows, 0)
	if _, ok := cellCount(columns, rows); !ok {
		columns, rows = 0, 0
	}
	return &Occupancy{
		columns: columns,
		rows:    rows,
		cells:   make([]bool, columns*rows),
	}
}

// Columns returns the horizontal extent.
func (o *Occupancy) Columns() int { return o.columns }

// Rows returns the vertical extent.
func (o *Occupancy) Rows() int { return o.rows }

// InBounds reports whether p addresses a tracked cell.
func (o *Occupancy) InBounds(p Position) bool {
	return p.X >= 0 && p.X < o.columns && p.Y >= 0 && p.Y < o.rows
}

// At reports whether p is occupied. Untracked cells are never occupied.
func (o *Occupancy) At(p Position) bool {
	if !o.InBounds(p) {
		return false
	}
	return o.cells[o.index(p)]
}

// Set marks p occupied and reports whether it was tracked.
func (o *Occupancy) Set(p Position) bool {
	if !o.InBounds(p) {
		return false
	}
	o.cells[o.index(p)] = true
	return true
}

// Count returns the number of occupied cells.
func (o *Occupancy) Count() int {
	n := 0
	for _, c := range o.cells {
		if c {
			n++
		}
	}
	return n
}

// String renders the map one row per line, '#' occupied and '.' free.
func (o *Occupancy) String() string {
	var b strings.Builder
	for y := 0; y < o.rows; y++ {
		for x := 0; x < o.columns; x++ {
			if o.cells[y*o.columns+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (o *Occupancy) index(p Position) int {
	return p.Y*o.columns + p.X
}

// OverlapError reports two layout items claiming the same cell.
// First and Second are indices into the layout, First < Second.
type OverlapError struct {
	Cell   Position
	First  int
	Second int
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	return fmt.Sprintf("items %d and %d overlap at cell (%d,%d)", e.First, e.Second, e.Cell.X, e.Cell.Y)
}

// Code returns the error code for this error type.
func (e *OverlapError) Code() apperrors.Code {
	return apperrors.ErrCodeOverlap
}

type occupancyConfig struct {
	allowOverlap bool
}

// OccupancyOption configures [BuildOccupancy].
type OccupancyOption func(*occupancyConfig)

// AllowOverlap makes repeated marks of the same cell harmless.
func AllowOverlap() OccupancyOption {
	return func(c *occupancyConfig) { c.allowOverlap = true }
}

// BuildOccupancy marks every in-bounds cell covered by the items of l.
// Cells outside the grid are ignored. Unless [AllowOverlap] is given, the
// first cell claimed by two different items fails the build with an
// [*OverlapError]. A grid larger than [MaxCells] fails with INVALID_GRID.
func BuildOccupancy[T any](d Dimensions, l Layout[T], opts ...OccupancyOption) (*Occupancy, error) {
	if _, ok := cellCount(d.Columns, d.Rows); !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidGrid,
			"grid %dx%d exceeds %d cells", d.Columns, d.Rows, MaxCells)
	}
	var cfg occupancyConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	o := NewOccupancy(d.Columns, d.Rows)
	var owner []int
	if !cfg.allowOverlap {
		owner = make([]int, len(o.cells))
	}

	for i, it := range l {
		for _, c := range CellsOf(it.Rect().Clip(o.columns, o.rows)) {
			idx := o.index(c)
			if o.cells[idx] && !cfg.allowOverlap {
				return nil, &OverlapError{Cell: c, First: owner[idx], Second: i}
			}
			o.cells[idx] = true
			if owner != nil {
				owner[idx] = i
			}
		}
	}
	return o, nil
}
