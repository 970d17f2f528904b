package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/gridpack/pkg/board"
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
)

// parseSize parses a widget size in cells, written "WxH" (e.g. "2x1").
func parseSize(s string) (grid.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return grid.Size{}, apperrors.New(apperrors.ErrCodeInvalidInput, "size %q: want WxH, e.g. 2x1", s)
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil {
		return grid.Size{}, apperrors.New(apperrors.ErrCodeInvalidInput, "size %q: want whole cell counts", s)
	}
	if err := apperrors.ValidateSize(width, height); err != nil {
		return grid.Size{}, err
	}
	return grid.Size{Width: width, Height: height}, nil
}

// parsePoint parses a pixel position written "X,Y" (e.g. "130,95").
func parsePoint(s string) (grid.PixelPosition, error) {
	x, y, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return grid.PixelPosition{}, apperrors.New(apperrors.ErrCodeInvalidInput, "point %q: want X,Y, e.g. 130,95", s)
	}
	px, errX := strconv.ParseFloat(strings.TrimSpace(x), 64)
	py, errY := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if errX != nil || errY != nil {
		return grid.PixelPosition{}, apperrors.New(apperrors.ErrCodeInvalidInput, "point %q: coordinates must be numbers", s)
	}
	return grid.PixelPosition{X: px, Y: py}, nil
}

// parseViewport parses a viewport size in pixels, written "WxH" (e.g. "1280x720").
func parseViewport(s string) (width, height float64, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, apperrors.New(apperrors.ErrCodeInvalidInput, "viewport %q: want WxH, e.g. 1280x720", s)
	}
	width, errW := strconv.ParseFloat(w, 64)
	height, errH := strconv.ParseFloat(h, 64)
	if errW != nil || errH != nil || width < 0 || height < 0 {
		return 0, 0, apperrors.New(apperrors.ErrCodeInvalidInput, "viewport %q: want non-negative pixel sizes", s)
	}
	return width, height, nil
}

// =============================================================================
// Board Files
// =============================================================================

// boardSource holds the flags shared by commands that read a board file.
type boardSource struct {
	viewport string // resize the grid to a viewport before running
	grow     bool   // let the grid grow to contain every widget
}

// loadBoard reads a board file. A missing box size falls back to the
// configured default. With a viewport, the grid is recomputed for it.
func (c *CLI) loadBoard(path string, src boardSource) (*board.Board, error) {
	b, err := board.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if b.Grid.BoxSize == 0 {
		b.Grid.BoxSize = c.settings().BoxSize
	}
	if src.viewport == "" {
		return b, nil
	}

	w, h, err := parseViewport(src.viewport)
	if err != nil {
		return nil, err
	}
	if src.grow {
		b.Grid = board.Fit(w, h, b.Grid.BoxSize, b.Layout())
	} else {
		b.Grid = board.Fit[board.Payload](w, h, b.Grid.BoxSize, nil)
	}
	c.Logger.Debug("fitted grid to viewport", "viewport", src.viewport, "columns", b.Grid.Columns, "rows", b.Grid.Rows)
	return b, nil
}

// saveBoard writes b to path and reports the file.
func saveBoard(b *board.Board, path string) error {
	if err := board.WriteFile(b, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// outputPath picks the destination for a modified board: -o wins, then
// --in-place writes back to the input, otherwise nothing is written.
func outputPath(input, output string, inPlace bool) string {
	if output != "" {
		return output
	}
	if inPlace {
		return input
	}
	return ""
}
