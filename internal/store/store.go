// Package store persists datasets and per-cell formatting metadata.
package store

import (
	"context"
	"errors"

	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

// ErrNotFound is returned when a requested dataset does not exist.
var ErrNotFound = errors.New("dataset not found")

// Store is the persistence contract the grid synchronizes against. Dataset
// writes have full-document overwrite semantics; there is no partial patch.
// Metadata writes are create-or-update, and the batch call is atomic from
// the caller's point of view.
type Store interface {
	FetchDataset(ctx context.Context, id string) (*dataset.Dataset, error)
	WriteDataset(ctx context.Context, id string, sections map[string]dataset.Section) error

	// FetchAllCellMetadata returns every stored formatting entry keyed by
	// cell key.
	FetchAllCellMetadata(ctx context.Context) (map[string]dataset.Formatting, error)
	WriteCellMetadata(ctx context.Context, cellID string, f dataset.Formatting) error
	WriteCellMetadataBatch(ctx context.Context, batch map[string]dataset.Formatting) error

	Close() error
}
