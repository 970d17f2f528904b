// Package store persists boards by name.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON file per board, for the CLI and single-node servers
//   - [MongoStore]: a MongoDB collection, for API servers sharing state
//
// # Usage
//
//	s, err := store.NewFileStore("") // ~/.config/gridpack/boards/
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Put(ctx, b); err != nil {
//	    return err
//	}
//	b, err = s.Get(ctx, "home")
//	if errors.Is(err, errors.ErrCodeBoardNotFound) {
//	    // no such board
//	}
package store

import (
	"context"

	"github.com/matzehuels/gridpack/pkg/board"
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
)

// Store is the interface for board storage backends.
type Store interface {
	// Get retrieves a board by name. A missing board fails with
	// [apperrors.ErrCodeBoardNotFound].
	Get(ctx context.Context, name string) (*board.Board, error)

	// Put validates and stores a board, replacing any board with the same name.
	Put(ctx context.Context, b *board.Board) error

	// Delete removes a board. A missing board fails with
	// [apperrors.ErrCodeBoardNotFound].
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored boards in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// notFound builds the error returned for a missing board.
func notFound(name string) error {
	return apperrors.New(apperrors.ErrCodeBoardNotFound, "board %q not found", name)
}

// checkPut rejects boards that cannot be stored under their name.
func checkPut(b *board.Board) error {
	if b == nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "board is nil")
	}
	if err := apperrors.ValidateBoardName(b.Name); err != nil {
		return err
	}
	return b.Validate()
}
