package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kiselovlex/keye-interactive-grid/internal/config"
	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
)

type styles struct {
	main      tcell.Style
	header    tcell.Style
	rowNumber tcell.Style
	selected  tcell.Style
	inRange   tcell.Style
	active    tcell.Style
	editing   tcell.Style
	status    tcell.Style
	errText   tcell.Style
}

func newStyles(theme config.Theme) styles {
	fg := parseColor(theme.Foreground, tcell.ColorWhite)
	bg := parseColor(theme.Background, tcell.ColorBlack)
	main := tcell.StyleDefault.Foreground(fg).Background(bg)
	return styles{
		main: main,
		header: tcell.StyleDefault.
			Foreground(parseColor(theme.HeaderForeground, fg)).
			Background(parseColor(theme.HeaderBackground, bg)).Bold(true),
		rowNumber: tcell.StyleDefault.
			Foreground(parseColor(theme.RowNumberForeground, fg)).Background(bg),
		selected: tcell.StyleDefault.
			Foreground(parseColor(theme.SelectionForeground, bg)).
			Background(parseColor(theme.SelectionBackground, fg)),
		inRange: tcell.StyleDefault.
			Foreground(parseColor(theme.RangeForeground, fg)).
			Background(parseColor(theme.RangeBackground, bg)),
		active: tcell.StyleDefault.
			Foreground(parseColor(theme.ActiveForeground, bg)).
			Background(parseColor(theme.ActiveBackground, fg)),
		editing: tcell.StyleDefault.
			Foreground(parseColor(theme.EditForeground, bg)).
			Background(parseColor(theme.EditBackground, fg)),
		status: tcell.StyleDefault.
			Foreground(parseColor(theme.StatusForeground, fg)).
			Background(parseColor(theme.StatusBackground, bg)),
		errText: tcell.StyleDefault.
			Foreground(parseColor(theme.ErrorForeground, tcell.ColorRed)).
			Background(parseColor(theme.StatusBackground, bg)),
	}
}

func parseColor(value string, fallback tcell.Color) tcell.Color {
	if value == "" {
		return fallback
	}
	c := tcell.GetColor(value)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

const headerRows = 1

func (g *Grid) gutterWidth() int {
	if !g.rowNumbers {
		return 0
	}
	w := len(strconv.Itoa(g.model.RowCount()))
	if w < 3 {
		w = 3
	}
	return w + 1
}

// cellAt converts screen coordinates to a grid position.
func (g *Grid) cellAt(x, y int) (dataset.Position, bool) {
	row := y - headerRows + g.scroll
	col := (x - g.gutterWidth()) / g.colWidth
	if x < g.gutterWidth() || row < 0 || col < 0 {
		return dataset.Position{}, false
	}
	pos := dataset.Position{Row: row, Col: col}
	if !g.model.Contains(pos) {
		return dataset.Position{}, false
	}
	return pos, true
}

// ensureVisible scrolls the row window so pos is inside it.
func (g *Grid) ensureVisible(pos dataset.Position) {
	if g.viewHeight <= 0 {
		return
	}
	if pos.Row < g.scroll {
		g.scroll = pos.Row
	}
	if pos.Row >= g.scroll+g.viewHeight {
		g.scroll = pos.Row - g.viewHeight + 1
	}
}

// Render draws the visible row window: only rows inside the viewport are
// touched, so large datasets cost the screen height, not the row count.
func (g *Grid) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	statusY := h - 1
	g.viewHeight = h - headerRows - 1
	if g.viewHeight < 0 {
		g.viewHeight = 0
	}

	s.SetStyle(g.styles.main)
	s.Clear()

	gutter := g.gutterWidth()
	g.drawHeader(s, w, gutter)

	for y := 0; y < g.viewHeight; y++ {
		rowIdx := g.scroll + y
		if rowIdx >= g.model.RowCount() {
			break
		}
		g.drawRow(s, y+headerRows, w, gutter, rowIdx)
	}

	g.drawStatus(s, w, statusY)
	s.Show()
}

func (g *Grid) drawHeader(s tcell.Screen, w, gutter int) {
	for x := 0; x < w; x++ {
		s.SetContent(x, 0, ' ', nil, g.styles.header)
	}
	x := gutter
	for _, col := range g.model.Columns() {
		drawText(s, x, 0, g.colWidth, col.Name, g.styles.header)
		x += g.colWidth
		if x >= w {
			break
		}
	}
}

func (g *Grid) drawRow(s tcell.Screen, y, w, gutter, rowIdx int) {
	if gutter > 0 {
		num := strconv.Itoa(rowIdx + 1)
		drawText(s, 0, y, gutter-1, num, g.styles.rowNumber)
	}
	for colIdx := range g.model.Columns() {
		pos := dataset.Position{Row: rowIdx, Col: colIdx}
		x := gutter + colIdx*g.colWidth
		if x >= w {
			break
		}
		g.drawCell(s, x, y, pos)
	}
}

// drawCell resolves the cell's presentation from selection/edit state:
// editing > active > selected endpoint > in-range > plain.
func (g *Grid) drawCell(s tcell.Screen, x, y int, pos dataset.Position) {
	var text string
	style := g.styles.main

	meta, hasMeta := g.model.MetadataAt(pos)
	if g.edit != nil && g.edit.pos == pos {
		text = g.edit.value + "▏"
		style = g.styles.editing
		if !g.edit.valid {
			style = g.styles.errText
		}
	} else {
		raw, _ := g.model.ValueAt(pos)
		text = displayValue(raw, meta)
		active, hasActive := g.sel.ActiveCell()
		switch {
		case hasActive && active == pos:
			style = g.styles.active
		case g.sel.IsCellSelected(pos):
			style = g.styles.selected
		case g.sel.IsCellInRange(pos):
			style = g.styles.inRange
		}
	}

	if hasMeta {
		f := meta.Formatting
		style = style.Bold(f.Bold).Italic(f.Italic).StrikeThrough(f.Strikethrough)
		if f.TextColor != "" {
			style = style.Foreground(parseColor(f.TextColor, tcell.ColorWhite))
		}
		if f.BackgroundColor != "" {
			style = style.Background(parseColor(f.BackgroundColor, tcell.ColorBlack))
		}
		text = alignText(text, g.colWidth-1, f.Alignment)
	}
	drawText(s, x, y, g.colWidth, text, style)
}

func (g *Grid) drawStatus(s tcell.Screen, w, y int) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, g.styles.status)
	}
	left := g.model.DatasetID()
	if pos, ok := g.sel.ActiveCell(); ok {
		left += "  " + pos.String()
	}
	if cells := g.sel.Flatten(); len(cells) > 1 {
		left += fmt.Sprintf("  %d cells", len(cells))
	}
	drawText(s, 0, y, w, left, g.styles.status)

	msg := g.statusErr
	if g.edit != nil && g.edit.errMsg != "" {
		msg = g.edit.errMsg
	}
	if msg != "" {
		drawText(s, w-len([]rune(msg))-1, y, len([]rune(msg))+1, msg, g.styles.errText)
	}
}

func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
}

func alignText(text string, width int, align dataset.Alignment) string {
	runes := []rune(text)
	if width <= 0 || len(runes) >= width {
		return text
	}
	pad := width - len(runes)
	switch align {
	case dataset.AlignRight:
		return spaces(pad) + text
	case dataset.AlignCenter:
		left := pad / 2
		return spaces(left) + text + spaces(pad-left)
	default:
		return text
	}
}

func spaces(n int) string {
	return strings.Repeat(" ", n)
}

// displayValue renders a raw value for its cell type.
func displayValue(raw any, meta dataset.Metadata) string {
	s := valueString(raw)
	if s == "" {
		return ""
	}
	switch meta.Type {
	case dataset.TypeCurrency:
		return "$" + s
	case dataset.TypePercentage:
		return s + "%"
	default:
		return s
	}
}
