// Package board provides the serialization format for grid layouts.
//
// This package sits at the boundary between the engine in pkg/grid and the
// outside world: board files on disk, HTTP request bodies, cached results and
// stored documents all use [Board].
//
// # Format
//
// A board is a named grid plus its widgets:
//
//	{
//	  "name": "home",
//	  "grid": {"box_size": 40, "columns": 6, "rows": 4},
//	  "widgets": [
//	    {"id": "4b1f...", "label": "clock", "x": 0, "y": 0, "width": 2, "height": 1}
//	  ]
//	}
//
// The same structure is accepted as TOML:
//
//	name = "home"
//
//	[grid]
//	box_size = 40.0
//	columns = 6
//	rows = 4
//
//	[[widgets]]
//	id = "4b1f..."
//	label = "clock"
//	x = 0
//	y = 0
//	width = 2
//	height = 1
//
// # Converting to the engine
//
// [Board.Layout] returns a grid.Layout carrying each [Widget] as payload;
// [Board.WithLayout] rebuilds the widget list from an engine result.
//
// # Viewport measurement
//
// [Fit] derives grid dimensions from a viewport in pixels, growing the
// effective extent to contain every widget.
package board
