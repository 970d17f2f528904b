package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// checkCommand creates the check command for verifying a board.
func (c *CLI) checkCommand() *cobra.Command {
	var src boardSource

	cmd := &cobra.Command{
		Use:   "check [board]",
		Short: "Verify that no two widgets share a cell",
		Long: `Check reads a board file and verifies that no two widgets overlap.

Widgets that extend past the grid are reported but are not an error;
use 'gridpack repair' to move them back in.`,
		Example: `  gridpack check home.json
  gridpack check home.toml --viewport 1280x720`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.grow = true
			return c.runCheck(cmd.Context(), args[0], src)
		},
	}

	cmd.Flags().StringVar(&src.viewport, "viewport", "", "fit the grid to a viewport in pixels (WxH)")
	return cmd
}

func (c *CLI) runCheck(ctx context.Context, path string, src boardSource) error {
	b, err := c.loadBoard(path, src)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}

	res, err := runner.Check(ctx, b)
	if err != nil {
		printError("%s has overlapping widgets", path)
		return err
	}

	printSuccess("%s: %d widgets, no overlaps", path, res.Widgets)
	printDetail("%d of %d cells occupied", res.Occupied, res.Cells)
	for _, id := range res.Overflowing {
		w, _ := b.Widget(id)
		printWarning("%s extends past the %dx%d grid", w.DisplayLabel(), b.Grid.Columns, b.Grid.Rows)
	}
	if !res.OK() {
		printNextStep("Move them back in", "gridpack repair "+path+" --in-place")
	}
	return nil
}
