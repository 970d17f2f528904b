// Package grid implements the grid-packing engine: overlap detection, free
// slot search, pixel snapping and overflow repair for rectangular items on an
// integer grid.
//
// # Model
//
// A [Dimensions] value describes the grid: the pixel size of one cell and the
// effective column/row extent. Items ([Item]) are rectangles in cell units
// carrying a caller-defined payload; a [Layout] is an ordered slice of them.
// Order matters only for first-wins semantics when building occupancy and
// for the iteration order of [RepairOverflow].
//
// # Operations
//
//   - [BuildOccupancy]: derive the boolean cell map of a layout
//   - [WouldOverlap]: test a candidate rectangle against an occupancy map
//   - [FindSlot]: first free origin for a size, scanning row-major
//   - [RankSnapPoints]: every cell origin ordered by pixel distance
//   - [NearestFit]: nearest snap point where an item of a given size fits
//   - [RepairOverflow]: relocate items that exceed the grid bounds
//
// Every operation is a pure function of its inputs. Occupancy is rebuilt on
// each call and never shared, so the package needs no locking.
//
// # Errors
//
// Building occupancy from a layout where two items claim the same cell fails
// with [*OverlapError]. Not finding a slot is not an error: [FindSlot] returns
// a [Slot] whose Found flag is false.
//
//	slot, err := grid.FindSlot(dims, layout, grid.Size{Width: 2, Height: 1})
//	if err != nil {
//	    return err // layout is inconsistent
//	}
//	pos, ok := slot.Get()
//	if !ok {
//	    // grid is full for this size
//	}
package grid
