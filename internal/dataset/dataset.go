package dataset

import "sort"

// Column describes a single column of a section.
type Column struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Section is a named block of rows sharing a column layout.
type Section struct {
	Columns []Column         `json:"columns"`
	Items   []map[string]any `json:"items"`
}

// Dataset is the sectioned document shape the store persists.
type Dataset struct {
	ID       string             `json:"id"`
	Sections map[string]Section `json:"sections"`
}

// Canonical section names, in display order.
const (
	SectionValues         = "Values"
	SectionYoYGrowth      = "YoY Growth"
	SectionPercentOfTotal = "Percent of Total"
	SectionProduct        = "Product"
)

var sectionOrder = map[string]int{
	SectionValues:         0,
	SectionYoYGrowth:      1,
	SectionPercentOfTotal: 2,
	SectionProduct:        3,
}

// SectionNames returns the dataset's section names in canonical order:
// the four known sections first, then anything else sorted by name.
func (d *Dataset) SectionNames() []string {
	names := make([]string, 0, len(d.Sections))
	for name := range d.Sections {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := sectionOrder[names[i]]
		oj, jok := sectionOrder[names[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		case jok:
			return false
		default:
			return names[i] < names[j]
		}
	})
	return names
}
