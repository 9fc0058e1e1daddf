package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

func exportDataset() *dataset.Dataset {
	return &dataset.Dataset{
		ID: "revenue",
		Sections: map[string]dataset.Section{
			dataset.SectionValues: {
				Columns: []dataset.Column{
					{Key: "product", Name: "Product"},
					{Key: "2020", Name: "2020"},
				},
				Items: []map[string]any{
					{"product": "Widgets", "2020": "1000"},
					{"product": "Total", "2020": "1000"},
				},
			},
			dataset.SectionYoYGrowth: {
				Columns: []dataset.Column{
					{Key: "product", Name: "Product"},
					{Key: "2020", Name: "2020"},
				},
				Items: []map[string]any{
					{"product": "Widgets", "2020": "0.12"},
				},
			},
		},
	}
}

func TestWriteCreatesSheetPerSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := New(nil).Write(exportDataset(), path); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets = %v, want one per section", sheets)
	}
	if sheets[0] != dataset.SectionValues || sheets[1] != dataset.SectionYoYGrowth {
		t.Fatalf("sheet order = %v", sheets)
	}

	got, err := f.GetCellValue(dataset.SectionValues, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Product" {
		t.Fatalf("header A1 = %q", got)
	}
	got, _ = f.GetCellValue(dataset.SectionValues, "B2")
	if got != "1000" {
		t.Fatalf("B2 = %q", got)
	}
	got, _ = f.GetCellValue(dataset.SectionYoYGrowth, "B2")
	if got != "0.12" {
		t.Fatalf("growth B2 = %q", got)
	}
}

func TestWriteCarriesStoredFormatting(t *testing.T) {
	ds := exportDataset()
	meta := map[string]dataset.Formatting{
		dataset.CellKey("revenue", dataset.Position{Row: 0, Col: 1}): {
			ID:        "fmt-1",
			Bold:      true,
			Alignment: dataset.AlignCenter,
		},
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := New(meta).Write(ds, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	styleID, err := f.GetCellStyle(dataset.SectionValues, "B2")
	if err != nil {
		t.Fatal(err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatal(err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Fatal("bold formatting not carried into the workbook")
	}
	if style.Alignment == nil || style.Alignment.Horizontal != "center" {
		t.Fatal("alignment not carried into the workbook")
	}
}

func TestWriteFormattingWithDifferingSectionColumns(t *testing.T) {
	// growth has fewer columns than the union; its "2023" cell sits at
	// local index 1 but grid cell keys use the union index 2
	ds := &dataset.Dataset{
		ID: "revenue",
		Sections: map[string]dataset.Section{
			dataset.SectionValues: {
				Columns: []dataset.Column{
					{Key: "product", Name: "Product"},
					{Key: "2022", Name: "2022"},
					{Key: "2023", Name: "2023"},
				},
				Items: []map[string]any{
					{"product": "Widgets", "2022": "10", "2023": "12"},
					{"product": "Gadgets", "2022": "8", "2023": "9"},
				},
			},
			dataset.SectionYoYGrowth: {
				Columns: []dataset.Column{
					{Key: "product", Name: "Product"},
					{Key: "2023", Name: "YoY 2023"},
				},
				Items: []map[string]any{
					{"product": "Widgets", "2023": "0.2"},
				},
			},
		},
	}
	// growth row is the third flattened row; "2023" is union column 2
	meta := map[string]dataset.Formatting{
		dataset.CellKey("revenue", dataset.Position{Row: 2, Col: 2}): {
			ID:   "fmt-growth",
			Bold: true,
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := New(meta).Write(ds, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	styleID, err := f.GetCellStyle(dataset.SectionYoYGrowth, "B2")
	if err != nil {
		t.Fatal(err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatal(err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Fatal("formatting keyed by union column index not applied to growth cell")
	}
}
