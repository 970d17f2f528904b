package cli

import (
	"testing"

	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    grid.Size
		wantErr bool
	}{
		{"2x1", grid.Size{Width: 2, Height: 1}, false},
		{" 3X4 ", grid.Size{Width: 3, Height: 4}, false},
		{"2", grid.Size{}, true},
		{"ax1", grid.Size{}, true},
		{"0x1", grid.Size{}, true},
		{"2x-1", grid.Size{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && apperrors.GetCode(err) == "" {
				t.Errorf("parseSize(%q) error has no code: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseSize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    grid.PixelPosition
		wantErr bool
	}{
		{"130,95", grid.PixelPosition{X: 130, Y: 95}, false},
		{"1.5, 2", grid.PixelPosition{X: 1.5, Y: 2}, false},
		{"-10,0", grid.PixelPosition{X: -10, Y: 0}, false},
		{"130", grid.PixelPosition{}, true},
		{"a,b", grid.PixelPosition{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePoint(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseViewport(t *testing.T) {
	w, h, err := parseViewport("1280x720")
	if err != nil || w != 1280 || h != 720 {
		t.Errorf("parseViewport() = %v, %v, %v", w, h, err)
	}
	for _, bad := range []string{"1280", "-1x5", "x"} {
		if _, _, err := parseViewport(bad); err == nil {
			t.Errorf("parseViewport(%q) succeeded", bad)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output  string
		inPlace bool
		want    string
	}{
		{"", false, ""},
		{"", true, "in.json"},
		{"out.json", true, "out.json"},
		{"out.json", false, "out.json"},
	}
	for _, tt := range tests {
		if got := outputPath("in.json", tt.output, tt.inPlace); got != tt.want {
			t.Errorf("outputPath(%q, %v) = %q, want %q", tt.output, tt.inPlace, got, tt.want)
		}
	}
}
