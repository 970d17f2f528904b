package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpack/pkg/grid"
	"github.com/matzehuels/gridpack/pkg/planner"
)

// snapOptions holds the flags for the snap command.
type snapOptions struct {
	src     boardSource
	at      string
	limit   int
	noCache bool
}

// snapCommand creates the snap command for ranking drop targets.
func (c *CLI) snapCommand() *cobra.Command {
	opts := snapOptions{limit: 5}

	cmd := &cobra.Command{
		Use:   "snap [board]",
		Short: "Rank grid cells by distance from a pixel",
		Long: `Snap lists the cells of the board's grid ordered by the distance from
their top-left corner to the given pixel, nearest first. Cells at equal
distance keep row-major order.

Occupancy is ignored; use 'gridpack place --at' to find the nearest free slot.`,
		Example: `  gridpack snap home.json --at 130,95
  gridpack snap home.json --at 0,0 --limit 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.src.grow = true
			return c.runSnap(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "pixel to rank cells against (X,Y)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", opts.limit, "number of cells to list (0 lists all)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.src.viewport, "viewport", "", "fit the grid to a viewport in pixels (WxH)")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func (c *CLI) runSnap(ctx context.Context, path string, opts snapOptions) error {
	px, err := parsePoint(opts.at)
	if err != nil {
		return err
	}
	b, err := c.loadBoard(path, opts.src)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}

	res, err := runner.Snap(ctx, b.Grid, px, planner.Options{Limit: opts.limit})
	if err != nil {
		return err
	}
	if len(res.Points) == 0 {
		printWarning("The %dx%d grid has no cells", b.Grid.Columns, b.Grid.Rows)
		return nil
	}

	fmt.Println(renderSnapTable(res.Points))
	printCacheStatus(res.CacheHit)
	return nil
}

// renderSnapTable formats ranked snap points, highlighting the nearest.
func renderSnapTable(points []grid.SnapPoint) string {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d,%d", p.Position.X, p.Position.Y),
			fmt.Sprintf("%.0f,%.0f", p.Pixel.X, p.Pixel.Y),
			fmt.Sprintf("%.1f", p.Distance),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Cell", "Pixel", "Distance").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == 0:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col == 3:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}
