package cli

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpack/pkg/board"
	"github.com/matzehuels/gridpack/pkg/grid"
	"github.com/matzehuels/gridpack/pkg/planner"
)

func newTestExplore(t *testing.T) ExploreModel {
	t.Helper()
	b := &board.Board{
		Name:    "tiny",
		Grid:    grid.Dimensions{BoxSize: 10, Columns: 3, Rows: 2, MinColumns: 3, MinRows: 2},
		Widgets: []board.Widget{{ID: "a", X: 0, Y: 0, Width: 1, Height: 1}},
	}
	runner := planner.NewRunner(nil, nil, log.New(io.Discard))
	return NewExploreModel(context.Background(), runner, b, planner.Options{Width: 1, Height: 1, Label: "new"})
}

func press(m ExploreModel, key tea.KeyMsg) (ExploreModel, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(ExploreModel), cmd
}

func TestExploreModelPreview(t *testing.T) {
	m := newTestExplore(t)
	if m.Err != nil {
		t.Fatalf("Err = %v", m.Err)
	}

	// The cursor cell is taken, so the preview falls to the next cell in ranking order.
	if pos, ok := m.Slot.Get(); !ok || pos != (grid.Position{X: 1, Y: 0}) {
		t.Errorf("initial slot = %v, %v; want 1,0", pos, ok)
	}
	if len(m.Near) != 3 {
		t.Errorf("Near = %d points, want 3", len(m.Near))
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != (grid.Position{X: 0, Y: 1}) {
		t.Errorf("cursor = %v, want 0,1", m.Cursor)
	}
	if pos, _ := m.Slot.Get(); pos != (grid.Position{X: 0, Y: 1}) {
		t.Errorf("slot = %v, want 0,1", pos)
	}
}

func TestExploreModelCursorBounds(t *testing.T) {
	m := newTestExplore(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != (grid.Position{}) {
		t.Errorf("cursor left the grid: %v", m.Cursor)
	}
	for n := 0; n < 5; n++ {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.Cursor.X != 2 {
		t.Errorf("cursor x = %d, want 2", m.Cursor.X)
	}
}

func TestExploreModelPlace(t *testing.T) {
	m := newTestExplore(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Error("enter did not quit")
	}
	if m.Added == nil {
		t.Fatal("Added = nil")
	}
	if m.Added.X != 1 || m.Added.Y != 0 || m.Added.Label != "new" {
		t.Errorf("Added = %+v, want new at 1,0", m.Added)
	}
	if len(m.Board.Widgets) != 2 {
		t.Errorf("board widgets = %d, want 2", len(m.Board.Widgets))
	}
}

func TestExploreModelQuit(t *testing.T) {
	m := newTestExplore(t)
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q did not quit")
	}
	if m.Added != nil {
		t.Error("quit added a widget")
	}
	if m.View() == "" {
		t.Error("View() is empty")
	}
}
