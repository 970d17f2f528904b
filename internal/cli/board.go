package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpack/pkg/board"
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
	"github.com/matzehuels/gridpack/pkg/planner"
)

// boardCommand creates the board command for creating and storing boards.
func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Create boards and manage the board store",
		Long: `Create empty boards and move boards between files and the configured
board store (a local directory or MongoDB).`,
	}

	cmd.AddCommand(c.boardNewCommand())
	cmd.AddCommand(c.boardPushCommand())
	cmd.AddCommand(c.boardPullCommand())
	cmd.AddCommand(c.boardListCommand())
	cmd.AddCommand(c.boardRemoveCommand())

	return cmd
}

// boardNewOptions holds the flags for "board new".
type boardNewOptions struct {
	columns  int
	rows     int
	box      float64
	viewport string
	output   string
}

// boardNewCommand creates the "board new" subcommand.
func (c *CLI) boardNewCommand() *cobra.Command {
	opts := boardNewOptions{columns: 12, rows: 8}

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Write an empty board",
		Example: `  gridpack board new home
  gridpack board new ops --viewport 1280x720 --box 40 -o ops.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardNew(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.columns, "columns", opts.columns, "grid columns")
	cmd.Flags().IntVar(&opts.rows, "rows", opts.rows, "grid rows")
	cmd.Flags().Float64Var(&opts.box, "box", 0, "cell side in pixels (default from config)")
	cmd.Flags().StringVar(&opts.viewport, "viewport", "", "size the grid for a viewport in pixels (WxH)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default NAME.json)")

	return cmd
}

func (c *CLI) runBoardNew(name string, opts boardNewOptions) error {
	if err := apperrors.ValidateBoardName(name); err != nil {
		return err
	}
	box := opts.box
	if box == 0 {
		box = c.settings().BoxSize
	}

	d := grid.Dimensions{BoxSize: box, Columns: opts.columns, Rows: opts.rows, MinColumns: opts.columns, MinRows: opts.rows}
	if opts.viewport != "" {
		w, h, err := parseViewport(opts.viewport)
		if err != nil {
			return err
		}
		d = board.Fit[board.Payload](w, h, box, nil)
	}
	if err := d.Validate(); err != nil {
		return err
	}

	b := &board.Board{Name: name, Grid: d, Widgets: []board.Widget{}}
	dst := opts.output
	if dst == "" {
		dst = name + ".json"
	}

	printSuccess("Created %s with a %dx%d grid", name, d.Columns, d.Rows)
	if err := saveBoard(b, dst); err != nil {
		return err
	}
	printNextStep("Add a widget", "gridpack place "+dst+" --size 2x1 --in-place")
	return nil
}

// boardPushCommand creates the "board push" subcommand.
func (c *CLI) boardPushCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push [file]",
		Short: "Check a board file and save it to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardPush(cmd.Context(), args[0], name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "store under this name (default: the board's name)")
	return cmd
}

func (c *CLI) runBoardPush(ctx context.Context, path, name string) error {
	b, err := c.loadBoard(path, boardSource{})
	if err != nil {
		return err
	}
	if name != "" {
		b.Name = name
	}

	runner := planner.NewRunner(nil, nil, c.Logger)
	if _, err := runner.Check(ctx, b); err != nil {
		return err
	}

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(ctx, b); err != nil {
		return err
	}
	printSuccess("Saved %s (%d widgets)", b.Name, len(b.Widgets))
	return nil
}

// boardPullCommand creates the "board pull" subcommand.
func (c *CLI) boardPullCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull [name]",
		Short: "Write a stored board to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardPull(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default NAME.json)")
	return cmd
}

func (c *CLI) runBoardPull(ctx context.Context, name, output string) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	b, err := st.Get(ctx, name)
	if err != nil {
		return err
	}
	if output == "" {
		output = name + ".json"
	}
	printSuccess("Fetched %s (%d widgets)", b.Name, len(b.Widgets))
	return saveBoard(b, output)
}

// boardListCommand creates the "board list" subcommand.
func (c *CLI) boardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored boards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No stored boards")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// boardRemoveCommand creates the "board rm" subcommand.
func (c *CLI) boardRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"delete"},
		Short:   "Delete a stored board",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
