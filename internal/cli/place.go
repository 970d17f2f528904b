package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpack/pkg/board"
	"github.com/matzehuels/gridpack/pkg/planner"
)

// placeOptions holds the flags for the place command.
type placeOptions struct {
	src     boardSource
	size    string
	at      string
	label   string
	output  string
	inPlace bool
	noCache bool
}

// placeCommand creates the place command for finding a free slot.
func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOptions{size: "1x1"}

	cmd := &cobra.Command{
		Use:   "place [board]",
		Short: "Find a free slot for a new widget",
		Long: `Place searches the board for the first free slot of the given size,
scanning rows top to bottom and cells left to right.

With --at, the search starts at the cell nearest that pixel instead.
With -o or --in-place, a new widget is added at the slot and the board is written.`,
		Example: `  gridpack place home.json --size 2x1
  gridpack place home.json --size 2x2 --at 130,95
  gridpack place home.json --size 1x1 --label notes --in-place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.src.grow = true
			return c.runPlace(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.size, "size", "s", opts.size, "widget size in cells (WxH)")
	cmd.Flags().StringVar(&opts.at, "at", "", "search nearest to this pixel (X,Y)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "label for the added widget")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "add the widget and write the board here")
	cmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "add the widget and overwrite the input board")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.src.viewport, "viewport", "", "fit the grid to a viewport in pixels (WxH)")

	return cmd
}

func (c *CLI) runPlace(ctx context.Context, path string, opts placeOptions) error {
	size, err := parseSize(opts.size)
	if err != nil {
		return err
	}
	popts := planner.Options{Width: size.Width, Height: size.Height, Label: opts.label}
	if opts.at != "" {
		px, err := parsePoint(opts.at)
		if err != nil {
			return err
		}
		popts.Snap = &px
	}

	b, err := c.loadBoard(path, opts.src)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}

	if dst := outputPath(path, opts.output, opts.inPlace); dst != "" {
		return c.addWidget(ctx, runner, b, popts, dst)
	}

	res, err := runner.Place(ctx, b, popts)
	if err != nil {
		return err
	}
	pos, ok := res.Slot.Get()
	if !ok {
		printWarning("No free %s slot on the %dx%d grid", opts.size, b.Grid.Columns, b.Grid.Rows)
		printNextStep("Make room for it", "gridpack show "+path)
		return nil
	}

	printSuccess("Free %s slot at cell %d,%d", opts.size, pos.X, pos.Y)
	if res.Pixel != nil {
		printDetail("top-left pixel %.0f,%.0f", res.Pixel.X, res.Pixel.Y)
	}
	printCacheStatus(res.CacheHit)
	return nil
}

// addWidget places a new widget and writes the updated board to dst.
func (c *CLI) addWidget(ctx context.Context, runner *planner.Runner, b *board.Board, opts planner.Options, dst string) error {
	res, err := runner.Add(ctx, b, opts)
	if err != nil {
		return err
	}
	printSuccess("Added %s at cell %d,%d", res.Widget.DisplayLabel(), res.Widget.X, res.Widget.Y)
	return saveBoard(res.Board, dst)
}
