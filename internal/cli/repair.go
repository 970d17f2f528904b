package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpack/pkg/planner"
)

// repairOptions holds the flags for the repair command.
type repairOptions struct {
	src     boardSource
	policy  string
	output  string
	inPlace bool
	noCache bool
}

// repairCommand creates the repair command for moving widgets back onto the grid.
func (c *CLI) repairCommand() *cobra.Command {
	var opts repairOptions

	cmd := &cobra.Command{
		Use:   "repair [board]",
		Short: "Move widgets that extend past the grid",
		Long: `Repair relocates every widget that extends past the grid into the
first free slot that fits, in board order. Widgets already inside the grid
never move.

A widget that fits nowhere is dropped, or left where it is with --policy keep.
With --viewport, the grid is resized to the viewport first, so a board can
be repaired for a smaller screen.`,
		Example: `  gridpack repair home.json --viewport 800x600 -o small.json
  gridpack repair home.json --policy keep --in-place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.policy == "" {
				opts.policy = c.settings().Unplaceable
			}
			return c.runRepair(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.policy, "policy", "", "what to do with widgets that fit nowhere: drop, keep (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the repaired board here")
	cmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "overwrite the input board")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.src.viewport, "viewport", "", "resize the grid to a viewport in pixels (WxH)")

	return cmd
}

func (c *CLI) runRepair(ctx context.Context, path string, opts repairOptions) error {
	b, err := c.loadBoard(path, opts.src)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	res, err := runner.Repair(ctx, b, planner.Options{Policy: opts.policy})
	if err != nil {
		return err
	}
	prog.done("Repaired board", "moved", len(res.Moved), "dropped", len(res.Dropped))

	if !res.Report.Changed() {
		printSuccess("All %d widgets fit the %dx%d grid", len(b.Widgets), b.Grid.Columns, b.Grid.Rows)
		return nil
	}

	for _, id := range res.Moved {
		w, _ := res.Board.Widget(id)
		printSuccess("Moved %s to cell %d,%d", w.DisplayLabel(), w.X, w.Y)
	}
	for _, id := range res.Dropped {
		w, _ := b.Widget(id)
		printWarning("Dropped %s: no free slot", w.DisplayLabel())
	}
	for _, id := range res.Kept {
		w, _ := b.Widget(id)
		printWarning("Kept %s outside the grid: no free slot", w.DisplayLabel())
	}
	printCacheStatus(res.CacheHit)

	dst := outputPath(path, opts.output, opts.inPlace)
	if dst == "" {
		printNextStep("Save the result", "gridpack repair "+path+" -o <file>")
		return nil
	}
	return saveBoard(res.Board, dst)
}
