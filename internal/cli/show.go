package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showCommand creates the show command for drawing a board.
func (c *CLI) showCommand() *cobra.Command {
	var src boardSource

	cmd := &cobra.Command{
		Use:   "show [board]",
		Short: "Draw a board in the terminal",
		Long: `Show draws the board's grid with one tag per widget. Cells claimed by
more than one widget are marked "!!".`,
		Example: `  gridpack show home.json
  gridpack show home.json --viewport 800x600`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.grow = true
			b, err := c.loadBoard(args[0], src)
			if err != nil {
				return err
			}
			if err := b.Grid.Validate(); err != nil {
				return err
			}
			title := b.Name
			if title == "" {
				title = args[0]
			}
			fmt.Println(StyleTitle.Render(title))
			printKeyValue("grid", fmt.Sprintf("%dx%d cells (min %dx%d)", b.Grid.Columns, b.Grid.Rows, b.Grid.MinColumns, b.Grid.MinRows))
			printKeyValue("box", fmt.Sprintf("%gpx", b.Grid.BoxSize))
			printKeyValue("widgets", fmt.Sprint(len(b.Widgets)))
			fmt.Println(renderBoard(b, gridOverlay{}))
			return nil
		},
	}

	cmd.Flags().StringVar(&src.viewport, "viewport", "", "fit the grid to a viewport in pixels (WxH)")
	return cmd
}
