package dataset

import "fmt"

// Position identifies a cell by zero-based row and column index.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Range is a rectangular region anchored by two corner positions.
// The endpoints may be in any order; call Normalize before iterating.
type Range struct {
	Start Position
	End   Position
}

// Normalize returns the top-left and bottom-right corners of the range.
func (r Range) Normalize() (topLeft, bottomRight Position) {
	topLeft = Position{Row: min(r.Start.Row, r.End.Row), Col: min(r.Start.Col, r.End.Col)}
	bottomRight = Position{Row: max(r.Start.Row, r.End.Row), Col: max(r.Start.Col, r.End.Col)}
	return topLeft, bottomRight
}

// Contains reports whether pos falls inside the normalized bounding box,
// endpoints included.
func (r Range) Contains(pos Position) bool {
	tl, br := r.Normalize()
	return pos.Row >= tl.Row && pos.Row <= br.Row && pos.Col >= tl.Col && pos.Col <= br.Col
}

// Positions expands the range to every cell in the normalized box in
// row-major order.
func (r Range) Positions() []Position {
	tl, br := r.Normalize()
	out := make([]Position, 0, (br.Row-tl.Row+1)*(br.Col-tl.Col+1))
	for row := tl.Row; row <= br.Row; row++ {
		for col := tl.Col; col <= br.Col; col++ {
			out = append(out, Position{Row: row, Col: col})
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CellKey derives the stable identifier for a cell of a dataset. The key is
// the sole identity used for metadata lookups and must be reproducible from
// the dataset id and position alone.
func CellKey(datasetID string, pos Position) string {
	return fmt.Sprintf("%s:%d:%d", datasetID, pos.Row, pos.Col)
}
