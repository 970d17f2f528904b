package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/planner"
)

// exploreOptions holds the flags for the explore command.
type exploreOptions struct {
	src     boardSource
	size    string
	label   string
	output  string
	inPlace bool
}

// exploreCommand creates the explore command for interactive placement.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := exploreOptions{size: "1x1"}

	cmd := &cobra.Command{
		Use:   "explore [board]",
		Short: "Place a widget interactively",
		Long: `Explore opens the board in the terminal with a pointer you move with the
arrow keys. The preview follows the nearest free slot for the widget;
press enter to add it there.`,
		Example: `  gridpack explore home.json --size 2x1 --label notes --in-place`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.src.grow = true
			return c.runExplore(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.size, "size", "s", opts.size, "widget size in cells (WxH)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "label for the added widget")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the board here")
	cmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "overwrite the input board")
	cmd.Flags().StringVar(&opts.src.viewport, "viewport", "", "fit the grid to a viewport in pixels (WxH)")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, path string, opts exploreOptions) error {
	size, err := parseSize(opts.size)
	if err != nil {
		return err
	}
	b, err := c.loadBoard(path, opts.src)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if b.Grid.Cells() == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidGrid, "board grid has no cells")
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}

	model := NewExploreModel(ctx, runner, b, planner.Options{Width: size.Width, Height: size.Height, Label: opts.label})
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	m := final.(ExploreModel)
	if m.Added == nil {
		printInfo("No widget placed")
		return nil
	}
	printSuccess("Added %s at cell %d,%d", m.Added.DisplayLabel(), m.Added.X, m.Added.Y)

	dst := outputPath(path, opts.output, opts.inPlace)
	if dst == "" {
		printNextStep("Save it next time", "gridpack explore "+path+" --in-place")
		return nil
	}
	return saveBoard(m.Board, dst)
}
