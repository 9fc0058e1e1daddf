package grid

import (
	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

// SelectedCells is the selection shape: exactly one of Single, RangeSel or
// Multiple. The variants share nothing but the Flatten contract.
type SelectedCells interface {
	selectedCells()
	// Flatten expands the shape to a list of positions: one element for
	// Single, the normalized box in row-major order for RangeSel, and the
	// stored list verbatim for Multiple.
	Flatten() []dataset.Position
}

// Single is a single selected cell.
type Single struct {
	Pos dataset.Position
}

// RangeSel is a rectangular selection anchored by two endpoints, stored
// un-normalized.
type RangeSel struct {
	Range dataset.Range
}

// Multiple is a disjoint multi-selection in insertion order.
type Multiple struct {
	Cells []dataset.Position
}

func (Single) selectedCells()   {}
func (RangeSel) selectedCells() {}
func (Multiple) selectedCells() {}

func (s Single) Flatten() []dataset.Position   { return []dataset.Position{s.Pos} }
func (r RangeSel) Flatten() []dataset.Position { return r.Range.Positions() }
func (m Multiple) Flatten() []dataset.Position { return m.Cells }

// Direction steers range-relative navigation.
type Direction int

const (
	Next Direction = iota
	Previous
)

// Selection is the grid's selection state machine. The active cell is the
// Tab-navigation cursor: non-nil whenever a selection exists, and inside the
// bounding box for a range selection.
type Selection struct {
	cells     SelectedCells
	selecting bool
	start     *dataset.Position
	active    *dataset.Position
}

func NewSelection() *Selection {
	return &Selection{}
}

// Cells returns the current shape, nil when nothing is selected.
func (s *Selection) Cells() SelectedCells { return s.cells }

// IsSelecting reports whether a drag selection is in progress.
func (s *Selection) IsSelecting() bool { return s.selecting }

// SelectCell replaces the selection with a single cell.
func (s *Selection) SelectCell(pos dataset.Position) {
	s.cells = Single{Pos: pos}
	s.active = &pos
	s.selecting = false
	s.start = nil
}

// SelectRange replaces the selection with a range. Endpoints are stored
// un-normalized; the active cell lands on the start endpoint.
func (s *Selection) SelectRange(start, end dataset.Position) {
	s.cells = RangeSel{Range: dataset.Range{Start: start, End: end}}
	s.active = &start
}

// ToggleCell adds or removes pos from a multi-selection. A range selection
// collapses to a single cell: switching modes discards the range.
func (s *Selection) ToggleCell(pos dataset.Position) {
	switch cells := s.cells.(type) {
	case nil:
		s.SelectCell(pos)
	case Single:
		if cells.Pos == pos {
			s.Clear()
			return
		}
		s.cells = Multiple{Cells: []dataset.Position{cells.Pos, pos}}
		s.active = &pos
	case Multiple:
		idx := -1
		for i, c := range cells.Cells {
			if c == pos {
				idx = i
				break
			}
		}
		if idx < 0 {
			list := append(append([]dataset.Position{}, cells.Cells...), pos)
			s.cells = Multiple{Cells: list}
			s.active = &pos
			return
		}
		remaining := append(append([]dataset.Position{}, cells.Cells[:idx]...), cells.Cells[idx+1:]...)
		switch len(remaining) {
		case 0:
			s.Clear()
		case 1:
			s.SelectCell(remaining[0])
		default:
			s.cells = Multiple{Cells: remaining}
			last := remaining[len(remaining)-1]
			s.active = &last
		}
	case RangeSel:
		s.SelectCell(pos)
	}
}

// StartSelection begins a drag selection at pos.
func (s *Selection) StartSelection(pos dataset.Position) {
	s.selecting = true
	s.start = &pos
	s.cells = Single{Pos: pos}
	s.active = &pos
}

// UpdateSelection extends an in-progress drag to pos. Dragging back onto the
// start keeps the selection single; anywhere else it becomes a range with
// the active cell pinned to the drag origin.
func (s *Selection) UpdateSelection(pos dataset.Position) {
	if !s.selecting || s.start == nil {
		return
	}
	start := *s.start
	if pos == start {
		s.cells = Single{Pos: start}
	} else {
		s.cells = RangeSel{Range: dataset.Range{Start: start, End: pos}}
	}
	s.active = &start
}

// EndSelection finishes the drag, preserving the resulting shape.
func (s *Selection) EndSelection() {
	s.selecting = false
	s.start = nil
}

// Clear resets to the initial all-none state.
func (s *Selection) Clear() {
	s.cells = nil
	s.selecting = false
	s.start = nil
	s.active = nil
}

// IsCellSelected reports whether pos is an exact selection member: the
// single cell, one of the two range endpoints, or a multi-selection member.
// Interior range cells are a containment query, not a selection hit.
func (s *Selection) IsCellSelected(pos dataset.Position) bool {
	switch cells := s.cells.(type) {
	case Single:
		return cells.Pos == pos
	case RangeSel:
		return cells.Range.Start == pos || cells.Range.End == pos
	case Multiple:
		for _, c := range cells.Cells {
			if c == pos {
				return true
			}
		}
	}
	return false
}

// IsCellInRange reports whether pos falls inside a range selection's
// normalized bounding box, endpoints included.
func (s *Selection) IsCellInRange(pos dataset.Position) bool {
	r, ok := s.cells.(RangeSel)
	return ok && r.Range.Contains(pos)
}

// CurrentCell returns the single selection when that is the shape, and the
// active cell for range or multiple selections.
func (s *Selection) CurrentCell() (dataset.Position, bool) {
	if single, ok := s.cells.(Single); ok {
		return single.Pos, true
	}
	return s.ActiveCell()
}

// ActiveCell returns the active cell verbatim.
func (s *Selection) ActiveCell() (dataset.Position, bool) {
	if s.active == nil {
		return dataset.Position{}, false
	}
	return *s.active, true
}

// NavigateWithinRange moves the active cell one step in row-major order
// inside a range selection, wrapping around the bounding box. It reports
// false when no range is active.
func (s *Selection) NavigateWithinRange(dir Direction) bool {
	r, ok := s.cells.(RangeSel)
	if !ok || s.active == nil {
		return false
	}
	tl, br := r.Range.Normalize()
	pos := *s.active
	if dir == Next {
		pos.Col++
		if pos.Col > br.Col {
			pos.Col = tl.Col
			pos.Row++
		}
		if pos.Row > br.Row {
			pos = tl
		}
	} else {
		pos.Col--
		if pos.Col < tl.Col {
			pos.Col = br.Col
			pos.Row--
		}
		if pos.Row < tl.Row {
			pos = br
		}
	}
	s.active = &pos
	return true
}

// Flatten expands the selection to a position list for formatting commands.
func (s *Selection) Flatten() []dataset.Position {
	if s.cells == nil {
		return nil
	}
	return s.cells.Flatten()
}
