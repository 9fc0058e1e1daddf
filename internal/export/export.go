// Package export writes a dataset to an XLSX workbook, one sheet per
// section, carrying over any cell formatting stored for the dataset.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

// Exporter converts datasets to XLSX workbooks.
type Exporter struct {
	meta map[string]dataset.Formatting
}

// New creates an exporter. meta maps cell keys to stored formatting and
// may be nil when no formatting has been saved.
func New(meta map[string]dataset.Formatting) *Exporter {
	return &Exporter{meta: meta}
}

// Write renders ds into an XLSX file at path.
func (e *Exporter) Write(ds *dataset.Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// Stored formatting is keyed by the grid's flattened positions: sections
	// stacked in canonical order, columns indexed by the first-seen union.
	colIndex := make(map[string]int)
	for _, name := range ds.SectionNames() {
		for _, col := range ds.Sections[name].Columns {
			if _, ok := colIndex[col.Key]; !ok {
				colIndex[col.Key] = len(colIndex)
			}
		}
	}

	row := 0
	first := true
	for _, name := range ds.SectionNames() {
		section := ds.Sections[name]
		sheet := sheetName(name)
		if first {
			// excelize creates a default sheet, rename it instead
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return err
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		if err := e.writeSection(f, sheet, ds.ID, section, colIndex, &row); err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
	}
	return f.SaveAs(path)
}

func (e *Exporter) writeSection(f *excelize.File, sheet, datasetID string, section dataset.Section, colIndex map[string]int, row *int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for c, col := range section.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, col.Name); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for r, item := range section.Items {
		for c, col := range section.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, item[col.Key]); err != nil {
				return err
			}
			key := dataset.CellKey(datasetID, dataset.Position{Row: *row + r, Col: colIndex[col.Key]})
			if fm, ok := e.meta[key]; ok {
				styleID, err := f.NewStyle(cellStyle(fm))
				if err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
					return err
				}
			}
		}
	}
	*row += len(section.Items)
	return nil
}

func cellStyle(fm dataset.Formatting) *excelize.Style {
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:   fm.Bold,
			Italic: fm.Italic,
			Strike: fm.Strikethrough,
		},
	}
	if fm.Alignment != "" {
		style.Alignment = &excelize.Alignment{Horizontal: string(fm.Alignment)}
	}
	if fm.BackgroundColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{fm.BackgroundColor},
		}
	}
	if fm.TextColor != "" {
		style.Font.Color = fm.TextColor
	}
	return style
}

func sheetName(section string) string {
	// sheet names cap at 31 chars in the XLSX format
	if len(section) > 31 {
		return section[:31]
	}
	return section
}
