package grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
	"github.com/kiselovlex/keye-interactive-grid/internal/logger"
	"github.com/kiselovlex/keye-interactive-grid/internal/store"
)

// ErrNoMetadata is returned when a cell commit targets a cell that has no
// metadata; the layer aborts rather than fabricating one.
var ErrNoMetadata = errors.New("cell has no metadata")

// Syncer bridges optimistic local mutations to the persistence store. It is
// the only component that writes to the Model. Every write takes a snapshot
// of the mutable state immediately before mutating and restores exactly that
// snapshot on failure.
//
// There is no ordering guarantee between two overlapping in-flight writes:
// if a second batch starts before the first resolves, their snapshots can
// interleave. Writes are expected to be issued from the UI event loop one at
// a time.
type Syncer struct {
	model *Model
	store store.Store
}

func NewSyncer(model *Model, st store.Store) *Syncer {
	return &Syncer{model: model, store: st}
}

// CommitCell applies a single-cell value change optimistically and persists
// the full dataset document. On failure the pre-commit value is restored and
// the store's message is surfaced as the error.
func (s *Syncer) CommitCell(ctx context.Context, pos dataset.Position, value any) error {
	if _, ok := s.model.MetadataAt(pos); !ok {
		return ErrNoMetadata
	}
	prev, ok := s.model.ValueAt(pos)
	if !ok {
		return fmt.Errorf("position %v out of bounds", pos)
	}

	s.model.setValue(pos, value)
	if err := s.store.WriteDataset(ctx, s.model.DatasetID(), s.model.Sections()); err != nil {
		s.model.setValue(pos, prev)
		return err
	}
	return nil
}

// applyFormatting overlays merge onto each target cell's formatting, applies
// the whole batch to the model before the store call, then persists it.
// Cells without metadata are skipped with a warning. A failed write restores
// the entire pre-batch metadata snapshot: one coarse rollback, not per-cell.
func (s *Syncer) applyFormatting(ctx context.Context, cells []dataset.Position, merge func(dataset.Formatting) dataset.Formatting) error {
	snapshot := s.model.snapshotMetadata()
	batch := make(map[string]dataset.Formatting, len(cells))
	for _, pos := range cells {
		meta, ok := s.model.MetadataAt(pos)
		if !ok {
			logger.Warn("skipping cell without metadata", "cell", s.model.CellKey(pos))
			continue
		}
		meta.Formatting = merge(meta.Formatting)
		s.model.setMetadata(pos, meta)
		batch[s.model.CellKey(pos)] = meta.Formatting
	}
	if len(batch) == 0 {
		return nil
	}

	var err error
	if len(batch) == 1 {
		for cellID, f := range batch {
			err = s.store.WriteCellMetadata(ctx, cellID, f)
		}
	} else {
		err = s.store.WriteCellMetadataBatch(ctx, batch)
	}
	if err != nil {
		s.model.restoreMetadata(snapshot)
		return err
	}
	return nil
}

// ToggleBold flips each cell's bold flag relative to its own prior value;
// mixed selections end up with mixed results.
func (s *Syncer) ToggleBold(ctx context.Context, cells []dataset.Position) error {
	return s.applyFormatting(ctx, cells, func(f dataset.Formatting) dataset.Formatting {
		f.Bold = !f.Bold
		return f
	})
}

func (s *Syncer) ToggleItalic(ctx context.Context, cells []dataset.Position) error {
	return s.applyFormatting(ctx, cells, func(f dataset.Formatting) dataset.Formatting {
		f.Italic = !f.Italic
		return f
	})
}

func (s *Syncer) ToggleStrikethrough(ctx context.Context, cells []dataset.Position) error {
	return s.applyFormatting(ctx, cells, func(f dataset.Formatting) dataset.Formatting {
		f.Strikethrough = !f.Strikethrough
		return f
	})
}

// SetAlignment sets the same alignment on every cell in the selection.
func (s *Syncer) SetAlignment(ctx context.Context, cells []dataset.Position, align dataset.Alignment) error {
	patch := dataset.FormatPatch{Alignment: &align}
	return s.applyFormatting(ctx, cells, patch.Apply)
}
