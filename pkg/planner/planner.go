// Package planner runs grid engine operations on boards with caching,
// logging and observability.
//
// The CLI and the API server both go through a [Runner] so that requests are
// validated, cached and instrumented the same way regardless of entry point.
//
// # Usage
//
//	runner := planner.NewRunner(cache, nil, logger)
//	res, err := runner.Place(ctx, b, planner.Options{Width: 2, Height: 1})
//	if err != nil {
//	    return err
//	}
//	if pos, ok := res.Slot.Get(); ok {
//	    fmt.Println("free at", pos)
//	}
//
// Operations:
//   - [Runner.Check]: verify that no widgets overlap and report overflow
//   - [Runner.Place]: find the first free slot, optionally nearest a pixel
//   - [Runner.Add]: place a new widget and return the updated board
//   - [Runner.Repair]: relocate widgets that fall outside the grid
//   - [Runner.Snap]: rank grid cells by distance from a pixel
package planner

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpack/pkg/board"
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
)

// DefaultPolicy is the unplaceable-widget policy used when none is given.
const DefaultPolicy = "drop"

// =============================================================================
// Options
// =============================================================================

// Options configures a planner operation.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Placement options
	Width  int                 `json:"width,omitempty"`
	Height int                 `json:"height,omitempty"`
	Snap   *grid.PixelPosition `json:"snap,omitempty"` // search nearest to this pixel
	Label  string              `json:"label,omitempty"`

	// Repair options
	Policy string `json:"policy,omitempty"`

	// Snap options
	Limit int `json:"limit,omitempty"` // 0 returns every cell

	// Refresh bypasses the cache read; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this request.
	Logger *log.Logger `json:"-"`
}

// Size returns the requested item size.
func (o *Options) Size() grid.Size {
	return grid.Size{Width: o.Width, Height: o.Height}
}

// ValidateForPlace checks the requested size.
func (o *Options) ValidateForPlace() error {
	return apperrors.ValidateSize(o.Width, o.Height)
}

// ValidateForRepair applies the default policy and checks that it is known.
func (o *Options) ValidateForRepair() error {
	if o.Policy == "" {
		o.Policy = DefaultPolicy
	}
	_, err := grid.ParsePolicy(o.Policy)
	return err
}

// ValidateForSnap checks the result limit.
func (o *Options) ValidateForSnap() error {
	if o.Limit < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "limit must not be negative, got %d", o.Limit)
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// CheckResult summarizes a board that passed the overlap check.
type CheckResult struct {
	Widgets     int      `json:"widgets"`
	Occupied    int      `json:"occupied"`
	Cells       int      `json:"cells"`
	Overflowing []string `json:"overflowing,omitempty"` // widget IDs
}

// OK reports whether every widget lies within the grid.
func (r CheckResult) OK() bool {
	return len(r.Overflowing) == 0
}

// PlaceResult is the outcome of a placement search.
type PlaceResult struct {
	Slot     grid.Slot           `json:"slot"`
	Pixel    *grid.PixelPosition `json:"pixel,omitempty"`
	CacheHit bool                `json:"cache_hit"`
}

// AddResult is the outcome of adding a widget to a board.
type AddResult struct {
	Board  *board.Board       `json:"board"`
	Widget board.Widget       `json:"widget"`
	Pixel  grid.PixelPosition `json:"pixel"`
}

// RepairResult is the outcome of an overflow repair. Report indices refer
// to positions in the input board's widget list.
type RepairResult struct {
	Board    *board.Board `json:"board"`
	Report   grid.Report  `json:"report"`
	Moved    []string     `json:"moved,omitempty"`   // widget IDs
	Dropped  []string     `json:"dropped,omitempty"` // widget IDs
	Kept     []string     `json:"kept,omitempty"`    // widget IDs
	CacheHit bool         `json:"cache_hit"`
}

// SnapResult lists candidate cells nearest first.
type SnapResult struct {
	Points   []grid.SnapPoint `json:"points"`
	CacheHit bool             `json:"cache_hit"`
}

// widgetIDs maps layout indices to widget IDs.
func widgetIDs(b *board.Board, idx []int) []string {
	if len(idx) == 0 {
		return nil
	}
	ids := make([]string, len(idx))
	for i, j := range idx {
		ids[i] = b.Widgets[j].ID
	}
	return ids
}
