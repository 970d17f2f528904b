package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpack/pkg/board"
	"github.com/matzehuels/gridpack/pkg/cache"
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
	"github.com/matzehuels/gridpack/pkg/observability"
)

// Runner executes planner operations with caching.
//
// The Runner holds no per-request state, so multiple goroutines can share
// one Runner with different boards and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// =============================================================================
// Check
// =============================================================================

// Check validates the board and verifies that no two widgets share a cell.
// Overflowing widgets are reported, not rejected. An overlap fails with an
// error carrying [apperrors.ErrCodeOverlap].
func (r *Runner) Check(ctx context.Context, b *board.Board) (*CheckResult, error) {
	start := time.Now()
	res, err := r.check(b)
	observability.Engine().OnCheck(ctx, len(b.Widgets), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("checked board",
		"widgets", res.Widgets,
		"occupied", res.Occupied,
		"overflowing", len(res.Overflowing),
		"duration", time.Since(start))
	return res, nil
}

func (r *Runner) check(b *board.Board) (*CheckResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	l := b.Layout()
	occ, err := grid.BuildOccupancy(b.Grid, l)
	if err != nil {
		return nil, describeOverlap(b, err)
	}
	return &CheckResult{
		Widgets:     len(b.Widgets),
		Occupied:    occ.Count(),
		Cells:       b.Grid.Cells(),
		Overflowing: widgetIDs(b, l.Overflowing(b.Grid)),
	}, nil
}

// describeOverlap names the colliding widgets. The returned error still
// unwraps to the [*grid.OverlapError].
func describeOverlap(b *board.Board, err error) error {
	var oe *grid.OverlapError
	if !errors.As(err, &oe) {
		return err
	}
	return fmt.Errorf("widgets %q and %q: %w", b.Widgets[oe.First].ID, b.Widgets[oe.Second].ID, err)
}

// =============================================================================
// Place
// =============================================================================

// Place searches for a free slot of the requested size. With opts.Snap set
// the free slot nearest that pixel wins, otherwise the first slot in
// row-major order. A missing slot is a normal result, not an error.
func (r *Runner) Place(ctx context.Context, b *board.Board, opts Options) (*PlaceResult, error) {
	if err := opts.ValidateForPlace(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := r.place(ctx, b, opts)
	found := err == nil && res.Slot.Found
	observability.Engine().OnPlacement(ctx, len(b.Widgets), found, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if pos, ok := res.Slot.Get(); ok {
		px := grid.ToPixel(b.Grid, pos)
		res.Pixel = &px
	}
	r.logger(opts).Debug("placement search",
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"found", res.Slot.Found,
		"cached", res.CacheHit,
		"duration", time.Since(start))
	return res, nil
}

func (r *Runner) place(ctx context.Context, b *board.Board, opts Options) (*PlaceResult, error) {
	keyOpts := cache.PlacementKeyOpts{Width: opts.Width, Height: opts.Height}
	if opts.Snap != nil {
		keyOpts.Snap, keyOpts.SnapX, keyOpts.SnapY = true, opts.Snap.X, opts.Snap.Y
	}
	key, keyErr := r.boardKey(b, func(h string) string { return r.Keyer.PlacementKey(h, keyOpts) })

	if keyErr == nil && !opts.Refresh {
		var slot grid.Slot
		if r.load(ctx, key, &slot) {
			return &PlaceResult{Slot: slot, CacheHit: true}, nil
		}
	}

	l := b.Layout()
	var slot grid.Slot
	var err error
	if opts.Snap != nil {
		slot, err = grid.NearestFit(b.Grid, l, *opts.Snap, opts.Size())
	} else {
		slot, err = grid.FindSlot(b.Grid, l, opts.Size())
	}
	if err != nil {
		return nil, describeOverlap(b, err)
	}

	if keyErr == nil {
		r.store(ctx, key, slot, cache.TTLPlacement)
	}
	return &PlaceResult{Slot: slot}, nil
}

// Add places a new widget labelled opts.Label and returns a copy of the board
// with the widget appended. It fails with [apperrors.ErrCodeNoSpace] when the
// grid has no free slot of the requested size.
func (r *Runner) Add(ctx context.Context, b *board.Board, opts Options) (*AddResult, error) {
	res, err := r.Place(ctx, b, opts)
	if err != nil {
		return nil, err
	}
	pos, ok := res.Slot.Get()
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeNoSpace,
			"no free %dx%d slot on a %dx%d grid", opts.Width, opts.Height, b.Grid.Columns, b.Grid.Rows)
	}

	w := board.NewWidget(opts.Label, opts.Size())
	w.X, w.Y = pos.X, pos.Y

	out := *b
	out.Widgets = append(append([]board.Widget(nil), b.Widgets...), w)

	r.logger(opts).Info("added widget", "id", w.ID, "label", w.DisplayLabel(), "x", w.X, "y", w.Y)
	return &AddResult{Board: &out, Widget: w, Pixel: grid.ToPixel(b.Grid, pos)}, nil
}

// =============================================================================
// Repair
// =============================================================================

// repairEntry is the cached form of a repair result.
type repairEntry struct {
	Widgets []board.Widget `json:"widgets"`
	Report  grid.Report    `json:"report"`
}

// Repair moves every overflowing widget into the first free slot that fits,
// processing widgets in board order. Widgets that fit nowhere are dropped or
// kept according to opts.Policy.
func (r *Runner) Repair(ctx context.Context, b *board.Board, opts Options) (*RepairResult, error) {
	if err := opts.ValidateForRepair(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	policy, _ := grid.ParsePolicy(opts.Policy)

	start := time.Now()
	entry, hit, err := r.repair(ctx, b, policy, opts)
	var moved, dropped int
	if err == nil {
		moved, dropped = len(entry.Report.Moved), len(entry.Report.Dropped)
	}
	observability.Engine().OnRepair(ctx, len(b.Widgets), moved, dropped, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	out := *b
	out.Widgets = entry.Widgets
	res := &RepairResult{
		Board:    &out,
		Report:   entry.Report,
		Moved:    widgetIDs(b, entry.Report.Moved),
		Dropped:  widgetIDs(b, entry.Report.Dropped),
		Kept:     widgetIDs(b, entry.Report.Kept),
		CacheHit: hit,
	}

	logger := r.logger(opts)
	logger.Debug("repaired overflow",
		"moved", moved,
		"dropped", dropped,
		"kept", len(entry.Report.Kept),
		"cached", hit,
		"duration", time.Since(start))
	for _, id := range res.Dropped {
		logger.Warn("dropped widget that no longer fits", "id", id)
	}
	return res, nil
}

func (r *Runner) repair(ctx context.Context, b *board.Board, policy grid.Policy, opts Options) (repairEntry, bool, error) {
	key, keyErr := r.boardKey(b, func(h string) string {
		return r.Keyer.RepairKey(h, cache.RepairKeyOpts{Policy: policy.String()})
	})

	if keyErr == nil && !opts.Refresh {
		var entry repairEntry
		if r.load(ctx, key, &entry) {
			return entry, true, nil
		}
	}

	l, report, err := grid.RepairOverflow(b.Grid, b.Layout(), grid.WithUnplaceable(policy))
	if err != nil {
		return repairEntry{}, false, describeOverlap(b, err)
	}
	entry := repairEntry{Widgets: b.WithLayout(l).Widgets, Report: report}

	if keyErr == nil {
		r.store(ctx, key, entry, cache.TTLRepair)
	}
	return entry, false, nil
}

// =============================================================================
// Snap
// =============================================================================

// Snap ranks every cell of d by distance from px, nearest first. Ties keep
// row-major order. opts.Limit truncates the ranking.
func (r *Runner) Snap(ctx context.Context, d grid.Dimensions, px grid.PixelPosition, opts Options) (*SnapResult, error) {
	if err := opts.ValidateForSnap(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &SnapResult{}

	var key string
	dimsHash, hashErr := cache.HashJSON(d)
	if hashErr == nil {
		key = r.Keyer.SnapKey(dimsHash, px.X, px.Y)
		if !opts.Refresh {
			res.CacheHit = r.load(ctx, key, &res.Points)
		}
	}
	if !res.CacheHit {
		res.Points = grid.RankSnapPoints(d, px)
		if hashErr == nil {
			r.store(ctx, key, res.Points, cache.TTLSnap)
		}
	}
	if opts.Limit > 0 && opts.Limit < len(res.Points) {
		res.Points = res.Points[:opts.Limit]
	}

	observability.Engine().OnSnap(ctx, len(res.Points), time.Since(start))
	r.logger(opts).Debug("ranked snap points",
		"points", len(res.Points),
		"cached", res.CacheHit,
		"duration", time.Since(start))
	return res, nil
}

// =============================================================================
// Cache helpers
// =============================================================================

// boardKey hashes the parts of a board that affect engine results. The board
// name is excluded so that identical boards share entries.
func (r *Runner) boardKey(b *board.Board, key func(hash string) string) (string, error) {
	h, err := cache.HashJSON(struct {
		Grid    grid.Dimensions `json:"grid"`
		Widgets []board.Widget  `json:"widgets"`
	}{b.Grid, b.Widgets})
	if err != nil {
		return "", err
	}
	return key(h), nil
}

// load decodes a cached value into v. Any backend or decode failure is
// treated as a miss.
func (r *Runner) load(ctx context.Context, key string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return false
	}
	if !hit {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// store writes v to the cache. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}
}

// logger prefers a per-request logger over the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
