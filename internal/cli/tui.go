package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridpack/pkg/board"
	"github.com/matzehuels/gridpack/pkg/grid"
	"github.com/matzehuels/gridpack/pkg/planner"
)

var exploreHelpStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ExploreModel - Interactive widget placement
// =============================================================================

// ExploreModel is the bubbletea model for dragging a new widget over a board.
// The pointer moves cell by cell; the preview shows the nearest free slot.
type ExploreModel struct {
	ctx    context.Context
	runner *planner.Runner
	opts   planner.Options

	Board  *board.Board
	Cursor grid.Position
	Slot   grid.Slot
	Near   []grid.SnapPoint
	Added  *board.Widget
	Err    error
}

// NewExploreModel creates a model for placing a widget of opts' size on b.
func NewExploreModel(ctx context.Context, runner *planner.Runner, b *board.Board, opts planner.Options) ExploreModel {
	m := ExploreModel{ctx: ctx, runner: runner, opts: opts, Board: b}
	m.refresh()
	return m
}

// pointer is the pixel at the centre of the cursor cell.
func (m ExploreModel) pointer() grid.PixelPosition {
	p := grid.ToPixel(m.Board.Grid, m.Cursor)
	half := m.Board.Grid.BoxSize / 2
	return grid.PixelPosition{X: p.X + half, Y: p.Y + half}
}

// refresh recomputes the preview slot and nearby cells for the cursor.
func (m *ExploreModel) refresh() {
	px := m.pointer()
	opts := m.opts
	opts.Snap = &px

	res, err := m.runner.Place(m.ctx, m.Board, opts)
	if err != nil {
		m.Err = err
		return
	}
	m.Slot = res.Slot

	snap, err := m.runner.Snap(m.ctx, m.Board.Grid, px, planner.Options{Limit: 3})
	if err != nil {
		m.Err = err
		return
	}
	m.Near = snap.Points
	m.Err = nil
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cols, rows := m.Board.Grid.Columns, m.Board.Grid.Rows
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.Cursor.X > 0 {
			m.Cursor.X--
		}
	case "right", "l":
		if m.Cursor.X < cols-1 {
			m.Cursor.X++
		}
	case "up", "k":
		if m.Cursor.Y > 0 {
			m.Cursor.Y--
		}
	case "down", "j":
		if m.Cursor.Y < rows-1 {
			m.Cursor.Y++
		}
	case "enter":
		if _, found := m.Slot.Get(); !found {
			return m, nil
		}
		px := m.pointer()
		opts := m.opts
		opts.Snap = &px
		res, err := m.runner.Add(m.ctx, m.Board, opts)
		if err != nil {
			m.Err = err
			return m, nil
		}
		m.Board = res.Board
		m.Added = &res.Widget
		return m, tea.Quit
	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Place a %dx%d widget", m.opts.Width, m.opts.Height)))
	b.WriteString("\n")
	b.WriteString(exploreHelpStyle.Render("←/→/↑/↓ move  ⏎ place  q quit"))
	b.WriteString("\n\n")

	cursor := m.Cursor
	ov := gridOverlay{cursor: &cursor}
	if pos, found := m.Slot.Get(); found {
		ov.preview = &grid.Rect{Position: pos, Size: m.opts.Size()}
		ov.fits = true
	} else {
		ov.preview = &grid.Rect{Position: m.Cursor, Size: m.opts.Size()}
	}
	b.WriteString(renderBoard(m.Board, ov))
	b.WriteString("\n\n")

	if pos, found := m.Slot.Get(); found {
		b.WriteString(styleIconSuccess.Render(iconSuccess) + fmt.Sprintf(" nearest free slot %d,%d", pos.X, pos.Y))
	} else {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render("no free slot of this size"))
	}
	b.WriteString("\n")

	near := make([]string, len(m.Near))
	for i, p := range m.Near {
		near[i] = fmt.Sprintf("%d,%d (%.0fpx)", p.Position.X, p.Position.Y, p.Distance)
	}
	b.WriteString(exploreHelpStyle.Render("closest cells: " + strings.Join(near, "  ")))

	if m.Err != nil {
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.Err.Error())
	}
	return b.String()
}
