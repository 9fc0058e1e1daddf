package dataset

// CellType declares how a cell's raw value is interpreted and validated.
type CellType string

const (
	TypeText       CellType = "text"
	TypeNumber     CellType = "number"
	TypeCurrency   CellType = "currency"
	TypePercentage CellType = "percentage"
	TypeProduct    CellType = "product"
)

// Numeric reports whether values of this type must parse as finite numbers.
func (t CellType) Numeric() bool {
	return t == TypeNumber || t == TypeCurrency || t == TypePercentage
}

// Alignment is a horizontal text alignment.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Formatting is the per-cell visual metadata persisted by the store. ID is
// minted once when the cell's metadata is first resolved and never changes
// for the life of the cell.
type Formatting struct {
	ID              string    `json:"id"`
	Bold            bool      `json:"bold,omitempty"`
	Italic          bool      `json:"italic,omitempty"`
	Strikethrough   bool      `json:"strikethrough,omitempty"`
	Alignment       Alignment `json:"alignment,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	TextColor       string    `json:"textColor,omitempty"`
}

// Metadata describes a cell: its value type, owning section and formatting.
type Metadata struct {
	Type       CellType   `json:"type"`
	Section    string     `json:"section"`
	Formatting Formatting `json:"formatting"`
}

// FormatPatch is a partial formatting change. Nil fields are left untouched
// when the patch is overlaid onto existing formatting.
type FormatPatch struct {
	Bold          *bool
	Italic        *bool
	Strikethrough *bool
	Alignment     *Alignment
}

// Apply overlays the patch onto f and returns the merged formatting.
// The identity is always preserved.
func (p FormatPatch) Apply(f Formatting) Formatting {
	if p.Bold != nil {
		f.Bold = *p.Bold
	}
	if p.Italic != nil {
		f.Italic = *p.Italic
	}
	if p.Strikethrough != nil {
		f.Strikethrough = *p.Strikethrough
	}
	if p.Alignment != nil {
		f.Alignment = *p.Alignment
	}
	return f
}
