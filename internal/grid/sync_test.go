package grid

import (
	"context"
	"errors"
	"testing"

	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
	"github.com/kiselovlex/keye-interactive-grid/internal/store"
)

func TestCommitCellPersistsValue(t *testing.T) {
	m := newTestModel(t)
	st := store.NewMemory()
	syncer := NewSyncer(m, st)
	ctx := context.Background()

	p := dataset.Position{Row: 0, Col: 1}
	if err := syncer.CommitCell(ctx, p, 2500.0); err != nil {
		t.Fatalf("commit: %v", err)
	}
	v, _ := m.ValueAt(p)
	if v != 2500.0 {
		t.Fatalf("model value = %v, want 2500", v)
	}

	ds, err := st.FetchDataset(ctx, "revenue")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	got := ds.Sections[dataset.SectionValues].Items[0]["2020"]
	if got != 2500.0 {
		t.Fatalf("persisted value = %v, want 2500", got)
	}
}

func TestCommitCellRollsBackOnFailure(t *testing.T) {
	m := newTestModel(t)
	st := store.NewMemory()
	st.WriteErr = errors.New("disk full")
	syncer := NewSyncer(m, st)

	p := dataset.Position{Row: 0, Col: 1}
	before, _ := m.ValueAt(p)
	err := syncer.CommitCell(context.Background(), p, 9999.0)
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("err = %v, want store message surfaced", err)
	}
	after, _ := m.ValueAt(p)
	if after != before {
		t.Fatalf("value = %v, want rollback to %v", after, before)
	}
}

func TestToggleBoldTwiceRestoresOriginals(t *testing.T) {
	m := newTestModel(t)
	syncer := NewSyncer(m, store.NewMemory())
	ctx := context.Background()

	// mixed selection: (0,1) plain, (2,1) bold by total-row default
	cells := []dataset.Position{{Row: 0, Col: 1}, {Row: 2, Col: 1}}
	original := make([]bool, len(cells))
	for i, p := range cells {
		meta, _ := m.MetadataAt(p)
		original[i] = meta.Formatting.Bold
	}

	if err := syncer.ToggleBold(ctx, cells); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	for i, p := range cells {
		meta, _ := m.MetadataAt(p)
		if meta.Formatting.Bold == original[i] {
			t.Fatalf("cell %v did not flip relative to its own value", p)
		}
	}

	if err := syncer.ToggleBold(ctx, cells); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	for i, p := range cells {
		meta, _ := m.MetadataAt(p)
		if meta.Formatting.Bold != original[i] {
			t.Fatalf("cell %v not restored after double toggle", p)
		}
	}
}

func TestBatchFailureRollsBackAllCells(t *testing.T) {
	m := newTestModel(t)
	st := store.NewMemory()
	syncer := NewSyncer(m, st)
	ctx := context.Background()

	cells := []dataset.Position{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}}
	before := make([]dataset.Formatting, len(cells))
	for i, p := range cells {
		meta, _ := m.MetadataAt(p)
		before[i] = meta.Formatting
	}

	st.WriteErr = errors.New("connection reset")
	if err := syncer.ToggleItalic(ctx, cells); err == nil {
		t.Fatal("expected batch failure")
	}
	for i, p := range cells {
		meta, _ := m.MetadataAt(p)
		if meta.Formatting != before[i] {
			t.Fatalf("cell %v formatting = %+v, want full rollback to %+v", p, meta.Formatting, before[i])
		}
	}
}

func TestBatchWritesMergedFormatting(t *testing.T) {
	m := newTestModel(t)
	st := store.NewMemory()
	syncer := NewSyncer(m, st)
	ctx := context.Background()

	cells := []dataset.Position{{Row: 0, Col: 1}, {Row: 1, Col: 1}}
	if err := syncer.SetAlignment(ctx, cells, dataset.AlignCenter); err != nil {
		t.Fatalf("align: %v", err)
	}

	all, err := st.FetchAllCellMetadata(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range cells {
		f, ok := all[m.CellKey(p)]
		if !ok {
			t.Fatalf("no stored metadata for %v", p)
		}
		if f.Alignment != dataset.AlignCenter {
			t.Fatalf("stored alignment = %q", f.Alignment)
		}
		if f.ID == "" {
			t.Fatal("stored formatting lost its id")
		}
	}
}

func TestSingleCellSelectionUsesSingleWrite(t *testing.T) {
	m := newTestModel(t)
	st := store.NewMemory()
	syncer := NewSyncer(m, st)

	p := dataset.Position{Row: 0, Col: 0}
	if err := syncer.ToggleBold(context.Background(), []dataset.Position{p}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	all, _ := st.FetchAllCellMetadata(context.Background())
	if _, ok := all[m.CellKey(p)]; !ok {
		t.Fatal("single-cell write did not persist")
	}
}

func TestCommitCellWithoutMetadata(t *testing.T) {
	m := newTestModel(t)
	// simulate a cell the resolver never saw
	delete(m.meta, m.CellKey(dataset.Position{Row: 0, Col: 1}))
	syncer := NewSyncer(m, store.NewMemory())

	err := syncer.CommitCell(context.Background(), dataset.Position{Row: 0, Col: 1}, 1.0)
	if !errors.Is(err, ErrNoMetadata) {
		t.Fatalf("err = %v, want ErrNoMetadata", err)
	}
}

func TestFormattingSkipsCellsWithoutMetadata(t *testing.T) {
	m := newTestModel(t)
	bare := dataset.Position{Row: 1, Col: 2}
	delete(m.meta, m.CellKey(bare))
	st := store.NewMemory()
	syncer := NewSyncer(m, st)

	cells := []dataset.Position{{Row: 0, Col: 1}, bare}
	if err := syncer.ToggleBold(context.Background(), cells); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	all, _ := st.FetchAllCellMetadata(context.Background())
	if _, ok := all[m.CellKey(bare)]; ok {
		t.Fatal("cell without metadata was written")
	}
	if _, ok := all[m.CellKey(cells[0])]; !ok {
		t.Fatal("skip was fatal for the rest of the batch")
	}
}
