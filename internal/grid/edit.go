package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

// EditSession is the single permitted in-place edit. It is created by
// Grid.StartEdit and destroyed on a successful save or a cancel; a failed
// save keeps it open for retry with the error set.
type EditSession struct {
	pos      dataset.Position
	cellType dataset.CellType
	original any
	value    string
	valid    bool
	errMsg   string
	saving   bool
}

func newEditSession(pos dataset.Position, cellType dataset.CellType, original any) *EditSession {
	return &EditSession{
		pos:      pos,
		cellType: cellType,
		original: original,
		value:    valueString(original),
		valid:    true,
	}
}

func (e *EditSession) Pos() dataset.Position { return e.pos }
func (e *EditSession) Value() string         { return e.value }
func (e *EditSession) Valid() bool           { return e.valid }
func (e *EditSession) Error() string         { return e.errMsg }
func (e *EditSession) Saving() bool          { return e.saving }

// UpdateValue replaces the draft value and revalidates it against the
// cell's declared type. A previous error clears the moment the value
// becomes valid again.
func (e *EditSession) UpdateValue(v string) {
	e.value = v
	if e.cellType.Numeric() && !validNumber(v) {
		e.valid = false
		e.errMsg = fmt.Sprintf("%q is not a valid number", v)
		return
	}
	e.valid = true
	e.errMsg = ""
}

// parsedValue converts the draft to the cell's target type: a float for
// numeric types, the raw string otherwise.
func (e *EditSession) parsedValue() any {
	if e.cellType.Numeric() {
		if strings.TrimSpace(e.value) == "" {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(e.value), 64)
		if err != nil {
			return e.value
		}
		return n
	}
	return e.value
}

// validNumber accepts the empty string and any finite number.
func validNumber(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	n, err := strconv.ParseFloat(v, 64)
	return err == nil && !math.IsInf(n, 0) && !math.IsNaN(n)
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
