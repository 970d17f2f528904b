// Package pkg provides the libraries behind gridpack.
//
// # Overview
//
// Gridpack places rectangular widgets on a dashboard grid of square cells.
// The libraries are layered so the pure engine can be used on its own:
//
//  1. [grid] - the packing engine: occupancy, collision, placement, snapping, repair
//  2. [board] - named boards of labelled widgets, file formats, viewport fitting
//  3. [planner] - validated, cached and instrumented engine operations on boards
//  4. [cache] and [store] - result caching (file, Redis) and board storage (file, MongoDB)
//  5. [errors] and [observability] - error codes and instrumentation hooks
//
// # Architecture
//
//	board file / API request
//	         ↓
//	    [board] package (decode, validate, fit to viewport)
//	         ↓
//	    [planner] package (cache lookup, hooks)
//	         ↓
//	    [grid] package (engine)
//	         ↓
//	    updated board / slot / ranking
//
// # Quick Start
//
// Find a free slot for a 2x1 widget:
//
//	import (
//	    "github.com/matzehuels/gridpack/pkg/board"
//	    "github.com/matzehuels/gridpack/pkg/grid"
//	)
//
//	b, err := board.ReadFile("home.json")
//	if err != nil {
//	    return err
//	}
//	slot, err := grid.FindSlot(b.Grid, b.Layout(), grid.Size{Width: 2, Height: 1})
//	if err != nil {
//	    return err // widgets overlap
//	}
//	if pos, ok := slot.Get(); ok {
//	    fmt.Println("free at", pos.X, pos.Y)
//	}
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridpack/pkg/grid
// [board]: https://pkg.go.dev/github.com/matzehuels/gridpack/pkg/board
// [planner]: https://pkg.go.dev/github.com/matzehuels/gridpack/pkg/planner
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridpack/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gridpack/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridpack/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridpack/pkg/observability
package pkg
