package grid

import (
	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

// Row is one flattened grid row together with the section it came from.
type Row struct {
	Section string
	Values  map[string]any
}

// Model is the single source of truth for the grid: ordered rows, ordered
// columns and the cell-metadata map keyed by cell key. Only the Syncer
// mutates it; the selection engine and edit session read through accessors.
type Model struct {
	datasetID string
	columns   []dataset.Column
	rows      []Row
	meta      map[string]dataset.Metadata

	// sectionCols keeps each section's original column list so a
	// full-document write round-trips the stored shape unchanged.
	sectionCols map[string][]dataset.Column
}

// NewModel flattens a dataset into grid shape. Sections are stacked in
// canonical order; columns are the first-seen union of section column keys.
// Every cell gets metadata up front: stored formatting when present,
// resolver defaults otherwise, so minted formatting ids stay stable.
func NewModel(ds *dataset.Dataset, stored map[string]dataset.Formatting) *Model {
	m := &Model{
		datasetID:   ds.ID,
		meta:        make(map[string]dataset.Metadata),
		sectionCols: make(map[string][]dataset.Column),
	}

	seen := make(map[string]bool)
	for _, name := range ds.SectionNames() {
		sec := ds.Sections[name]
		m.sectionCols[name] = sec.Columns
		for _, col := range sec.Columns {
			if !seen[col.Key] {
				seen[col.Key] = true
				m.columns = append(m.columns, col)
			}
		}
		for _, item := range sec.Items {
			m.rows = append(m.rows, Row{Section: name, Values: item})
		}
	}

	for rowIdx, row := range m.rows {
		totalRow := dataset.IsTotalRow(row.Values)
		for colIdx, col := range m.columns {
			pos := dataset.Position{Row: rowIdx, Col: colIdx}
			key := m.CellKey(pos)
			meta := dataset.ResolveMetadata(col, row.Section, totalRow, "")
			if f, ok := stored[key]; ok {
				meta.Formatting = f
			}
			m.meta[key] = meta
		}
	}
	return m
}

func (m *Model) DatasetID() string         { return m.datasetID }
func (m *Model) RowCount() int             { return len(m.rows) }
func (m *Model) ColCount() int             { return len(m.columns) }
func (m *Model) Columns() []dataset.Column { return m.columns }

// CellKey derives the stable cell identity for a position.
func (m *Model) CellKey(pos dataset.Position) string {
	return dataset.CellKey(m.datasetID, pos)
}

// Contains reports whether pos addresses an existing cell.
func (m *Model) Contains(pos dataset.Position) bool {
	return pos.Row >= 0 && pos.Row < len(m.rows) && pos.Col >= 0 && pos.Col < len(m.columns)
}

// ValueAt returns the raw value stored at pos.
func (m *Model) ValueAt(pos dataset.Position) (any, bool) {
	if !m.Contains(pos) {
		return nil, false
	}
	return m.rows[pos.Row].Values[m.columns[pos.Col].Key], true
}

// MetadataAt returns the cell's metadata, if any exists.
func (m *Model) MetadataAt(pos dataset.Position) (dataset.Metadata, bool) {
	meta, ok := m.meta[m.CellKey(pos)]
	return meta, ok
}

func (m *Model) setValue(pos dataset.Position, v any) {
	if !m.Contains(pos) {
		return
	}
	if m.rows[pos.Row].Values == nil {
		m.rows[pos.Row].Values = make(map[string]any)
	}
	m.rows[pos.Row].Values[m.columns[pos.Col].Key] = v
}

func (m *Model) setMetadata(pos dataset.Position, meta dataset.Metadata) {
	m.meta[m.CellKey(pos)] = meta
}

// Sections rebuilds the persisted document shape from the flattened rows,
// for the store's full-document overwrite. Each section carries its original
// column list, not the model's union.
func (m *Model) Sections() map[string]dataset.Section {
	out := make(map[string]dataset.Section)
	for _, row := range m.rows {
		sec := out[row.Section]
		if sec.Columns == nil {
			sec.Columns = m.sectionCols[row.Section]
		}
		sec.Items = append(sec.Items, row.Values)
		out[row.Section] = sec
	}
	return out
}

// snapshotMetadata copies the whole metadata map for coarse rollback.
func (m *Model) snapshotMetadata() map[string]dataset.Metadata {
	snap := make(map[string]dataset.Metadata, len(m.meta))
	for k, v := range m.meta {
		snap[k] = v
	}
	return snap
}

func (m *Model) restoreMetadata(snap map[string]dataset.Metadata) {
	m.meta = snap
}
