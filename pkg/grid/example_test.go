package grid_test

import (
	"fmt"

	"github.com/matzehuels/gridpack/pkg/grid"
)

func ExampleFindSlot() {
	dims := grid.Dimensions{BoxSize: 10, Columns: 3, Rows: 3}
	layout := grid.Layout[string]{
		{Position: grid.Position{X: 0, Y: 0}, Size: grid.Size{Width: 2, Height: 2}, Data: "chart"},
	}

	slot, err := grid.FindSlot(dims, layout, grid.Size{Width: 1, Height: 1})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if pos, ok := slot.Get(); ok {
		fmt.Printf("place at (%d,%d)\n", pos.X, pos.Y)
	}
	// Output:
	// place at (2,0)
}

func ExampleBuildOccupancy() {
	dims := grid.Dimensions{BoxSize: 10, Columns: 4, Rows: 2}
	layout := grid.Layout[string]{
		{Position: grid.Position{X: 0, Y: 0}, Size: grid.Size{Width: 2, Height: 1}, Data: "a"},
		{Position: grid.Position{X: 1, Y: 0}, Size: grid.Size{Width: 1, Height: 2}, Data: "b"},
	}

	if _, err := grid.BuildOccupancy(dims, layout); err != nil {
		fmt.Println("Error:", err)
	}

	occ, _ := grid.BuildOccupancy(dims, layout, grid.AllowOverlap())
	fmt.Print(occ)
	// Output:
	// Error: items 0 and 1 overlap at cell (1,0)
	// ##..
	// .#..
}

func ExampleRankSnapPoints() {
	dims := grid.Dimensions{BoxSize: 10, Columns: 2, Rows: 2}
	for _, sp := range grid.RankSnapPoints(dims, grid.PixelPosition{X: 4, Y: 4}) {
		fmt.Printf("(%d,%d) %.2f\n", sp.Position.X, sp.Position.Y, sp.Distance)
	}
	// Output:
	// (0,0) 5.66
	// (1,0) 7.21
	// (0,1) 7.21
	// (1,1) 8.49
}

func ExampleRepairOverflow() {
	dims := grid.Dimensions{BoxSize: 10, Columns: 2, Rows: 2}
	layout := grid.Layout[string]{
		{Position: grid.Position{X: 0, Y: 0}, Size: grid.Size{Width: 2, Height: 2}, Data: "full"},
		{Position: grid.Position{X: 1, Y: 1}, Size: grid.Size{Width: 2, Height: 2}, Data: "stray"},
	}

	repaired, report, err := grid.RepairOverflow(dims, layout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, it := range repaired {
		fmt.Printf("%s at (%d,%d)\n", it.Data, it.X, it.Y)
	}
	fmt.Println("dropped:", report.Dropped)
	// Output:
	// full at (0,0)
	// dropped: [1]
}
