package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id       TEXT PRIMARY KEY,
	document TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cell_metadata (
	cell_id          TEXT PRIMARY KEY,
	formatting_id    TEXT NOT NULL,
	bold             INTEGER NOT NULL DEFAULT 0,
	italic           INTEGER NOT NULL DEFAULT 0,
	strikethrough    INTEGER NOT NULL DEFAULT 0,
	alignment        TEXT NOT NULL DEFAULT '',
	background_color TEXT NOT NULL DEFAULT '',
	text_color       TEXT NOT NULL DEFAULT ''
);
`

// SQLite is a Store backed by a single sqlite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) FetchDataset(ctx context.Context, id string) (*dataset.Dataset, error) {
	var document string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM datasets WHERE id = ?`, id).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch dataset %s: %w", id, err)
	}
	var sections map[string]dataset.Section
	if err := json.Unmarshal([]byte(document), &sections); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", id, err)
	}
	return &dataset.Dataset{ID: id, Sections: sections}, nil
}

func (s *SQLite) WriteDataset(ctx context.Context, id string, sections map[string]dataset.Section) error {
	document, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("encode dataset %s: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO datasets (id, document) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document`,
		id, string(document))
	if err != nil {
		return fmt.Errorf("write dataset %s: %w", id, err)
	}
	return nil
}

func (s *SQLite) FetchAllCellMetadata(ctx context.Context) (map[string]dataset.Formatting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cell_id, formatting_id, bold, italic, strikethrough, alignment, background_color, text_color
		 FROM cell_metadata`)
	if err != nil {
		return nil, fmt.Errorf("fetch cell metadata: %w", err)
	}
	defer rows.Close()

	out := make(map[string]dataset.Formatting)
	for rows.Next() {
		var (
			cellID    string
			f         dataset.Formatting
			alignment string
		)
		if err := rows.Scan(&cellID, &f.ID, &f.Bold, &f.Italic, &f.Strikethrough,
			&alignment, &f.BackgroundColor, &f.TextColor); err != nil {
			return nil, fmt.Errorf("scan cell metadata: %w", err)
		}
		f.Alignment = dataset.Alignment(alignment)
		out[cellID] = f
	}
	return out, rows.Err()
}

func (s *SQLite) WriteCellMetadata(ctx context.Context, cellID string, f dataset.Formatting) error {
	_, err := s.db.ExecContext(ctx, upsertMetadataSQL, upsertMetadataArgs(cellID, f)...)
	if err != nil {
		return fmt.Errorf("write cell metadata %s: %w", cellID, err)
	}
	return nil
}

// WriteCellMetadataBatch writes every entry inside one transaction so the
// batch commits or fails as a unit.
func (s *SQLite) WriteCellMetadataBatch(ctx context.Context, batch map[string]dataset.Formatting) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin metadata batch: %w", err)
	}
	for cellID, f := range batch {
		if _, err := tx.ExecContext(ctx, upsertMetadataSQL, upsertMetadataArgs(cellID, f)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("write cell metadata %s: %w", cellID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit metadata batch: %w", err)
	}
	return nil
}

const upsertMetadataSQL = `
INSERT INTO cell_metadata (cell_id, formatting_id, bold, italic, strikethrough, alignment, background_color, text_color)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(cell_id) DO UPDATE SET
	formatting_id    = excluded.formatting_id,
	bold             = excluded.bold,
	italic           = excluded.italic,
	strikethrough    = excluded.strikethrough,
	alignment        = excluded.alignment,
	background_color = excluded.background_color,
	text_color       = excluded.text_color`

func upsertMetadataArgs(cellID string, f dataset.Formatting) []any {
	return []any{cellID, f.ID, f.Bold, f.Italic, f.Strikethrough, string(f.Alignment), f.BackgroundColor, f.TextColor}
}
