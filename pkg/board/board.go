package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Board is a named grid and the widgets placed on it.
type Board struct {
	Name    string          `json:"name" toml:"name" bson:"name"`
	Grid    grid.Dimensions `json:"grid" toml:"grid" bson:"grid"`
	Widgets []Widget        `json:"widgets" toml:"widgets" bson:"widgets"`
}

// Widget is a placed board item.
type Widget struct {
	ID     string `json:"id" toml:"id" bson:"id"`
	Label  string `json:"label,omitempty" toml:"label,omitempty" bson:"label,omitempty"`
	X      int    `json:"x" toml:"x" bson:"x"`
	Y      int    `json:"y" toml:"y" bson:"y"`
	Width  int    `json:"width" toml:"width" bson:"width"`
	Height int    `json:"height" toml:"height" bson:"height"`
}

// Payload is the engine payload carried for each widget.
type Payload struct {
	ID    string
	Label string
}

// NewWidget returns an unplaced widget of the given size with a fresh ID.
func NewWidget(label string, size grid.Size) Widget {
	return Widget{
		ID:     uuid.NewString(),
		Label:  label,
		Width:  size.Width,
		Height: size.Height,
	}
}

// DisplayLabel returns the label if set, otherwise a short form of the ID.
func (w Widget) DisplayLabel() string {
	if w.Label != "" {
		return w.Label
	}
	if len(w.ID) > 8 {
		return w.ID[:8]
	}
	return w.ID
}

// Size returns the widget extent.
func (w Widget) Size() grid.Size {
	return grid.Size{Width: w.Width, Height: w.Height}
}

// Item converts the widget to an engine item.
func (w Widget) Item() grid.Item[Payload] {
	return grid.Item[Payload]{
		Position: grid.Position{X: w.X, Y: w.Y},
		Size:     w.Size(),
		Data:     Payload{ID: w.ID, Label: w.Label},
	}
}

// widgetFromItem is the single point of conversion from engine items.
func widgetFromItem(it grid.Item[Payload]) Widget {
	return Widget{
		ID:     it.Data.ID,
		Label:  it.Data.Label,
		X:      it.X,
		Y:      it.Y,
		Width:  it.Width,
		Height: it.Height,
	}
}

// Layout converts the widgets to an engine layout in board order.
func (b *Board) Layout() grid.Layout[Payload] {
	l := make(grid.Layout[Payload], len(b.Widgets))
	for i, w := range b.Widgets {
		l[i] = w.Item()
	}
	return l
}

// WithLayout returns a copy of b whose widgets are taken from l.
func (b *Board) WithLayout(l grid.Layout[Payload]) *Board {
	out := &Board{Name: b.Name, Grid: b.Grid, Widgets: make([]Widget, len(l))}
	for i, it := range l {
		out.Widgets[i] = widgetFromItem(it)
	}
	return out
}

// Widget returns the widget with the given ID.
func (b *Board) Widget(id string) (Widget, bool) {
	for _, w := range b.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// Validate checks the grid description and every widget.
// Overlap is not checked here; that is the engine's job.
func (b *Board) Validate() error {
	if b.Name != "" {
		if err := apperrors.ValidateBoardName(b.Name); err != nil {
			return err
		}
	}
	if err := b.Grid.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(b.Widgets))
	for i, w := range b.Widgets {
		if w.ID == "" {
			return apperrors.New(apperrors.ErrCodeInvalidLayout, "widget %d has no id", i)
		}
		if seen[w.ID] {
			return apperrors.New(apperrors.ErrCodeInvalidLayout, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = true
		if err := apperrors.ValidateSize(w.Width, w.Height); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidLayout, err, "widget %q", w.ID)
		}
		if w.X < 0 || w.Y < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidLayout, "widget %q has negative position (%d,%d)", w.ID, w.X, w.Y)
		}
	}
	return nil
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal serializes a board to pretty-printed JSON.
func Marshal(b *Board) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Unmarshal deserializes JSON bytes into a board.
func Unmarshal(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "unmarshal board")
	}
	return &b, nil
}

// Write encodes b as JSON to w.
func Write(b *Board, w io.Writer) error {
	data, err := Marshal(b)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Read decodes a JSON board from r.
func Read(r io.Reader) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// WriteTOML encodes b as TOML to w.
func WriteTOML(b *Board, w io.Writer) error {
	return toml.NewEncoder(w).Encode(b)
}

// ReadTOML decodes a TOML board from r.
func ReadTOML(r io.Reader) (*Board, error) {
	var b Board
	if _, err := toml.NewDecoder(r).Decode(&b); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode toml board")
	}
	return &b, nil
}

// FormatOf infers the file format from a path's extension.
func FormatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ReadFile loads a board from a JSON or TOML file.
func ReadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "board file %s", path)
		}
		return nil, err
	}
	if FormatOf(path) == FormatTOML {
		return ReadTOML(bytes.NewReader(data))
	}
	return Unmarshal(data)
}

// WriteFile saves a board, choosing the format from the extension.
func WriteFile(b *Board, path string) error {
	var buf bytes.Buffer
	var err error
	if FormatOf(path) == FormatTOML {
		err = WriteTOML(b, &buf)
	} else {
		err = Write(b, &buf)
	}
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
