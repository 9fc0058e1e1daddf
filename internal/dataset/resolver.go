package dataset

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// TotalRowField is the row field inspected to detect total rows.
const TotalRowField = "product"

// IsTotalRow reports whether the row is a total row: its identifying field
// equals "total", compared case-insensitively.
func IsTotalRow(row map[string]any) bool {
	v, ok := row[TotalRowField].(string)
	return ok && strings.EqualFold(strings.TrimSpace(v), "total")
}

// isProductColumn matches the row-identifying product column.
func isProductColumn(col Column) bool {
	return strings.EqualFold(col.Key, "product") ||
		strings.Contains(strings.ToLower(col.Name), "product")
}

// ResolveMetadata derives default metadata for a cell that has none stored.
// The column, its source section name and the owning row's total flag decide
// type, section and base formatting. The supplied id is reused when present;
// otherwise a fresh stable id is minted. Callers are responsible for caching
// the result by cell key so the minted id never changes for the same cell.
func ResolveMetadata(col Column, sectionName string, totalRow bool, id string) Metadata {
	if id == "" {
		id = mintFormattingID()
	}
	meta := Metadata{
		Type:       TypeText,
		Section:    SectionValues,
		Formatting: Formatting{ID: id},
	}
	lower := strings.ToLower(sectionName)
	switch {
	case isProductColumn(col):
		meta.Type = TypeProduct
		meta.Section = SectionProduct
		meta.Formatting.Alignment = AlignLeft
	case strings.Contains(lower, "value") || strings.Contains(lower, "revenue") || strings.Contains(lower, "amount"):
		meta.Type = TypeCurrency
	case strings.Contains(lower, "growth") || strings.Contains(lower, "yoy"):
		meta.Type = TypePercentage
		meta.Section = SectionYoYGrowth
	case strings.Contains(lower, "percent") || strings.Contains(lower, "pct"):
		meta.Type = TypePercentage
		meta.Section = SectionPercentOfTotal
	}
	if totalRow {
		meta.Formatting.Bold = true
	}
	return meta
}

func mintFormattingID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// rand.Read only fails when the OS entropy source is broken.
		return "fmt-00000000"
	}
	return "fmt-" + hex.EncodeToString(b[:])
}
