package grid

import (
	"reflect"
	"testing"
)

func TestCellsOf(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want []Position
	}{
		{
			name: "single cell",
			rect: Rect{Position{2, 3}, Size{1, 1}},
			want: []Position{{2, 3}},
		},
		{
			name: "row-major order",
			rect: Rect{Position{0, 0}, Size{2, 2}},
			want: []Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		},
		{
			name: "wide strip",
			rect: Rect{Position{1, 0}, Size{3, 1}},
			want: []Position{{1, 0}, {2, 0}, {3, 0}},
		},
		{
			name: "zero width",
			rect: Rect{Position{0, 0}, Size{0, 4}},
			want: nil,
		},
		{
			name: "negative height",
			rect: Rect{Position{0, 0}, Size{2, -1}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellsOf(tt.rect); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CellsOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToPixel(t *testing.T) {
	d := Dimensions{BoxSize: 12.5, Columns: 4, Rows: 4}
	tests := []struct {
		pos  Position
		want PixelPosition
	}{
		{Position{0, 0}, PixelPosition{0, 0}},
		{Position{1, 0}, PixelPosition{12.5, 0}},
		{Position{3, 2}, PixelPosition{37.5, 25}},
	}

	for _, tt := range tests {
		if got := ToPixel(d, tt.pos); got != tt.want {
			t.Errorf("ToPixel(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestToCell(t *testing.T) {
	d := Dimensions{BoxSize: 10, Columns: 4, Rows: 4}
	tests := []struct {
		name string
		px   PixelPosition
		want Position
	}{
		{"origin", PixelPosition{0, 0}, Position{0, 0}},
		{"inside first cell", PixelPosition{9.99, 4}, Position{0, 0}},
		{"on boundary", PixelPosition{10, 20}, Position{1, 2}},
		{"negative", PixelPosition{-0.5, -10.5}, Position{-1, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToCell(d, tt.px); got != tt.want {
				t.Errorf("ToCell(%v) = %v, want %v", tt.px, got, tt.want)
			}
		})
	}

	if got := ToCell(Dimensions{}, PixelPosition{55, 55}); got != (Position{}) {
		t.Errorf("ToCell with zero box = %v, want origin", got)
	}
}

func TestToCellInvertsToPixel(t *testing.T) {
	d := Dimensions{BoxSize: 7, Columns: 5, Rows: 5}
	for y := 0; y < d.Rows; y++ {
		for x := 0; x < d.Columns; x++ {
			p := Position{x, y}
			if got := ToCell(d, ToPixel(d, p)); got != p {
				t.Errorf("ToCell(ToPixel(%v)) = %v", p, got)
			}
		}
	}
}

func TestRectOverflows(t *testing.T) {
	d := Dimensions{BoxSize: 1, Columns: 3, Rows: 2}
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"fits exactly", Rect{Position{0, 0}, Size{3, 2}}, false},
		{"too wide", Rect{Position{1, 0}, Size{3, 1}}, true},
		{"too tall", Rect{Position{0, 1}, Size{1, 2}}, true},
		{"corner cell", Rect{Position{2, 1}, Size{1, 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Overflows(d); got != tt.want {
				t.Errorf("Overflows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDimensionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		dims    Dimensions
		wantErr bool
	}{
		{"valid", Dimensions{BoxSize: 10, Columns: 4, Rows: 3, MinColumns: 4, MinRows: 2}, false},
		{"empty grid", Dimensions{BoxSize: 10}, false},
		{"zero box", Dimensions{BoxSize: 0, Columns: 1, Rows: 1}, true},
		{"negative rows", Dimensions{BoxSize: 1, Columns: 1, Rows: -1}, true},
		{"below minimum", Dimensions{BoxSize: 1, Columns: 2, Rows: 2, MinColumns: 3}, true},
		{"at cell limit", Dimensions{BoxSize: 1, Columns: MaxCells, Rows: 1}, false},
		{"above cell limit", Dimensions{BoxSize: 1, Columns: 2048, Rows: MaxCells/2048 + 1}, true},
		{"product wraps", Dimensions{BoxSize: 1, Columns: 1 << 32, Rows: 1 << 32}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dims.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestItemMovedTo(t *testing.T) {
	it := Item[string]{Position: Position{5, 5}, Size: Size{2, 3}, Data: "chart"}
	moved := it.MovedTo(Position{1, 0})

	if moved.Position != (Position{1, 0}) {
		t.Errorf("Position = %v, want (1,0)", moved.Position)
	}
	if moved.Size != it.Size || moved.Data != it.Data {
		t.Errorf("MovedTo changed size or payload: %+v", moved)
	}
	if it.Position != (Position{5, 5}) {
		t.Error("MovedTo mutated the receiver")
	}
}

func TestDimensionsCellsCapped(t *testing.T) {
	if got := (Dimensions{Columns: 3, Rows: 4}).Cells(); got != 12 {
		t.Errorf("Cells() = %d, want 12", got)
	}
	if got := (Dimensions{Columns: 1 << 32, Rows: 1 << 32}).Cells(); got != 0 {
		t.Errorf("Cells() of oversized grid = %d, want 0", got)
	}
}

func TestRectClip(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"inside", Rect{Position{1, 1}, Size{2, 1}}, Rect{Position{1, 1}, Size{2, 1}}},
		{"overhang", Rect{Position{3, 2}, Size{5, 5}}, Rect{Position{3, 2}, Size{1, 1}}},
		{"negative origin", Rect{Position{-2, 0}, Size{3, 1}}, Rect{Position{0, 0}, Size{1, 1}}},
		{"outside", Rect{Position{4, 0}, Size{1, 1}}, Rect{}},
		{"empty", Rect{Position{0, 0}, Size{0, 2}}, Rect{}},
		{"huge", Rect{Position{0, 0}, Size{1 << 40, 1 << 40}}, Rect{Position{0, 0}, Size{4, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Clip(4, 3); got != tt.want {
				t.Errorf("Clip() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
