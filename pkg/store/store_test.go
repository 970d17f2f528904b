package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/gridpack/pkg/board"
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
)

func sampleBoard(name string) *board.Board {
	return &board.Board{
		Name: name,
		Grid: grid.Dimensions{BoxSize: 40, Columns: 4, Rows: 3, MinColumns: 4, MinRows: 3},
		Widgets: []board.Widget{
			{ID: "w1", Label: "clock", X: 0, Y: 0, Width: 2, Height: 1},
			{ID: "w2", X: 2, Y: 0, Width: 2, Height: 2},
		},
	}
}

// testStore exercises the Store contract against any backend. Board names
// are suffixed so runs against shared backends do not collide.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	suffix := uuid.NewString()[:8]
	home, work := "home-"+suffix, "work-"+suffix
	t.Cleanup(func() {
		s.Delete(context.Background(), home)
		s.Delete(context.Background(), work)
	})

	if _, err := s.Get(ctx, home); !apperrors.Is(err, apperrors.ErrCodeBoardNotFound) {
		t.Fatalf("Get(missing) = %v, want BOARD_NOT_FOUND", err)
	}

	if err := s.Put(ctx, sampleBoard(home)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, home)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != home || got.Grid != sampleBoard(home).Grid || len(got.Widgets) != 2 || got.Widgets[0].Label != "clock" {
		t.Errorf("Get() = %+v", got)
	}

	updated := sampleBoard(home)
	updated.Widgets = updated.Widgets[:1]
	if err := s.Put(ctx, updated); err != nil {
		t.Fatalf("Put(replace): %v", err)
	}
	if got, _ := s.Get(ctx, home); len(got.Widgets) != 1 {
		t.Errorf("replaced board has %d widgets, want 1", len(got.Widgets))
	}

	if err := s.Put(ctx, sampleBoard(work)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if i, j := indexOf(names, home), indexOf(names, work); i < 0 || j < 0 || i > j {
		t.Errorf("List() = %v, want %s before %s", names, home, work)
	}

	if err := s.Delete(ctx, home); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, home); !apperrors.Is(err, apperrors.ErrCodeBoardNotFound) {
		t.Errorf("Delete(missing) = %v, want BOARD_NOT_FOUND", err)
	}
	if _, err := s.Get(ctx, home); !apperrors.Is(err, apperrors.ErrCodeBoardNotFound) {
		t.Errorf("Get after Delete = %v, want BOARD_NOT_FOUND", err)
	}
}

func testStoreRejects(t *testing.T, s Store) {
	ctx := context.Background()
	tests := []struct {
		name string
		b    *board.Board
		code apperrors.Code
	}{
		{"nil", nil, apperrors.ErrCodeInvalidInput},
		{"unnamed", sampleBoard(""), apperrors.ErrCodeInvalidName},
		{"traversal", sampleBoard("../x"), apperrors.ErrCodeInvalidName},
		{"bad grid", &board.Board{Name: "g", Grid: grid.Dimensions{}}, apperrors.ErrCodeInvalidGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Put(ctx, tt.b); !apperrors.Is(err, tt.code) {
				t.Errorf("Put() = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := s.Get(ctx, "../etc/passwd"); !apperrors.Is(err, apperrors.ErrCodeInvalidName) {
		t.Errorf("Get(traversal) = %v, want INVALID_NAME", err)
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestFileStoreRejects(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	testStoreRejects(t, s)
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	ctx := context.Background()

	if err := s.Put(ctx, sampleBoard("home")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	if s.Path() != dir {
		t.Errorf("Path() = %s, want %s", s.Path(), dir)
	}
	if _, err := os.Stat(filepath.Join(dir, "home.json")); err != nil {
		t.Errorf("board file missing: %v", err)
	}
	names, _ := s.List(ctx)
	if len(names) != 1 || names[0] != "home" {
		t.Errorf("List() = %v, want [home]", names)
	}

	f, _ := os.Open(filepath.Join(dir, "home.json"))
	defer f.Close()
	if _, err := board.Read(f); err != nil {
		t.Errorf("stored file is not a readable board: %v", err)
	}
}

func TestFileStoreCorruptBoard(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(context.Background(), "bad"); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("Get(corrupt) = %v, want INVALID_FORMAT", err)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("GRIDPACK_TEST_MONGO")
	if uri == "" {
		t.Skip("GRIDPACK_TEST_MONGO not set")
	}

	s, err := NewMongoStore(context.Background(), MongoConfig{URI: uri, Database: "gridpack_test"})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()

	testStore(t, s)
	t.Run("rejects", func(t *testing.T) { testStoreRejects(t, s) })
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("NewMongoStore() = %v, want INVALID_INPUT", err)
	}
}
