package grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kiselovlex/keye-interactive-grid/internal/config"
	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
	"github.com/kiselovlex/keye-interactive-grid/internal/logger"
	"github.com/kiselovlex/keye-interactive-grid/internal/store"
)

// ErrEditOpen is returned when StartEdit is called while a session exists.
var ErrEditOpen = errors.New("an edit session is already open")

// Grid is the interactive widget: model, selection engine, edit session and
// syncer behind a single key/mouse entry point.
type Grid struct {
	model  *Model
	sel    *Selection
	syncer *Syncer
	edit   *EditSession

	keymap map[string]string
	styles styles

	colWidth   int
	rowNumbers bool
	scroll     int
	viewHeight int
	statusErr  string
}

func New(cfg config.Config, model *Model, st store.Store) *Grid {
	return &Grid{
		model:      model,
		sel:        NewSelection(),
		syncer:     NewSyncer(model, st),
		keymap:     cfg.Keymap.Navigation,
		styles:     newStyles(cfg.Theme),
		colWidth:   cfg.Grid.ColumnWidth,
		rowNumbers: cfg.Grid.RowNumbers,
	}
}

func (g *Grid) Model() *Model         { return g.model }
func (g *Grid) Selection() *Selection { return g.sel }
func (g *Grid) Edit() *EditSession    { return g.edit }
func (g *Grid) Scroll() int           { return g.scroll }

// SetScroll restores a remembered scroll offset, clamped to the row range.
func (g *Grid) SetScroll(n int) {
	g.scroll = clamp(n, 0, g.model.RowCount()-1)
}

// StartEdit opens an edit session on pos, seeding the draft from the cell's
// current raw value. Only one session may exist at a time.
func (g *Grid) StartEdit(pos dataset.Position) error {
	if g.edit != nil {
		return ErrEditOpen
	}
	if !g.model.Contains(pos) {
		return fmt.Errorf("position %v out of bounds", pos)
	}
	raw, _ := g.model.ValueAt(pos)
	cellType := dataset.TypeText
	if meta, ok := g.model.MetadataAt(pos); ok {
		cellType = meta.Type
	}
	g.edit = newEditSession(pos, cellType, raw)
	return nil
}

// SaveEdit commits the open session through the syncer. It is a no-op when
// no session is open or the draft is invalid. On success the session is
// destroyed; on failure it stays open with the error set, for retry or
// cancel.
func (g *Grid) SaveEdit(ctx context.Context) error {
	if g.edit == nil || !g.edit.valid {
		return nil
	}
	g.edit.saving = true
	err := g.syncer.CommitCell(ctx, g.edit.pos, g.edit.parsedValue())
	if err != nil {
		g.edit.saving = false
		g.edit.errMsg = err.Error()
		logger.Warn("cell commit failed", "cell", g.model.CellKey(g.edit.pos), "err", err)
		return err
	}
	g.edit = nil
	return nil
}

// CancelEdit destroys the session unconditionally, discarding the draft.
func (g *Grid) CancelEdit() {
	g.edit = nil
}

// HandleKey is the single key-event entry point. Dispatch splits on whether
// an edit session is open; within navigation mode, actions resolve through
// the keymap. Returns true when the event was consumed.
func (g *Grid) HandleKey(ev *tcell.EventKey) bool {
	if g.edit != nil {
		return g.handleEditKey(ev)
	}
	return g.handleNavigationKey(ev)
}

func (g *Grid) handleEditKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		_ = g.SaveEdit(context.Background())
		return true
	case tcell.KeyEscape:
		g.CancelEdit()
		return true
	case tcell.KeyTab, tcell.KeyBacktab:
		delta := 1
		if ev.Key() == tcell.KeyBacktab || ev.Modifiers()&tcell.ModShift != 0 {
			delta = -1
		}
		if !g.edit.valid {
			return true
		}
		if err := g.SaveEdit(context.Background()); err != nil {
			return true
		}
		// Confirm-and-move: one column over, clamped, no row wrap.
		g.moveCurrent(0, delta)
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v := g.edit.value
		if len(v) > 0 {
			runes := []rune(v)
			g.edit.UpdateValue(string(runes[:len(runes)-1]))
		}
		return true
	case tcell.KeyRune:
		g.edit.UpdateValue(g.edit.value + string(ev.Rune()))
		return true
	}
	return false
}

func (g *Grid) handleNavigationKey(ev *tcell.EventKey) bool {
	key := keyString(ev)
	if key == "" {
		return false
	}
	action, ok := g.keymap[key]
	if !ok {
		return false
	}
	return g.execAction(action)
}

func (g *Grid) execAction(action string) bool {
	ctx := context.Background()
	switch action {
	case actionToggleBold:
		g.recordSyncErr(g.syncer.ToggleBold(ctx, g.sel.Flatten()))
	case actionToggleItalic:
		g.recordSyncErr(g.syncer.ToggleItalic(ctx, g.sel.Flatten()))
	case actionToggleStrikethrough:
		g.recordSyncErr(g.syncer.ToggleStrikethrough(ctx, g.sel.Flatten()))
	case actionAlignLeft:
		g.recordSyncErr(g.syncer.SetAlignment(ctx, g.sel.Flatten(), dataset.AlignLeft))
	case actionAlignCenter:
		g.recordSyncErr(g.syncer.SetAlignment(ctx, g.sel.Flatten(), dataset.AlignCenter))
	case actionAlignRight:
		g.recordSyncErr(g.syncer.SetAlignment(ctx, g.sel.Flatten(), dataset.AlignRight))
	case actionMoveLeft:
		g.moveCurrent(0, -1)
	case actionMoveRight:
		g.moveCurrent(0, 1)
	case actionMoveUp:
		g.moveCurrent(-1, 0)
	case actionMoveDown:
		g.moveCurrent(1, 0)
	case actionNavigateNext:
		if !g.sel.NavigateWithinRange(Next) {
			g.moveCurrent(0, 1)
		}
	case actionNavigatePrevious:
		if !g.sel.NavigateWithinRange(Previous) {
			g.moveCurrent(0, -1)
		}
	case actionStartEdit:
		if pos, ok := g.sel.ActiveCell(); ok {
			if err := g.StartEdit(pos); err != nil {
				logger.Warn("start edit failed", "pos", pos, "err", err)
			}
		}
	case actionClearSelection:
		g.sel.Clear()
	default:
		return false
	}
	return true
}

// moveCurrent moves the current cell by the given delta, clamped to grid
// bounds. With no selection the move lands on the origin cell.
func (g *Grid) moveCurrent(dRow, dCol int) {
	pos, ok := g.sel.CurrentCell()
	if !ok {
		pos = dataset.Position{}
	} else {
		pos.Row += dRow
		pos.Col += dCol
	}
	pos.Row = clamp(pos.Row, 0, g.model.RowCount()-1)
	pos.Col = clamp(pos.Col, 0, g.model.ColCount()-1)
	g.sel.SelectCell(pos)
	g.ensureVisible(pos)
}

// HandleMouse maps pointer events onto the drag-selection lifecycle.
// Ctrl/Cmd+click toggles membership in a multi-selection.
func (g *Grid) HandleMouse(ev *tcell.EventMouse) bool {
	pos, ok := g.cellAt(ev.Position())
	switch ev.Buttons() {
	case tcell.Button1:
		if !ok {
			return false
		}
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModMeta) != 0 {
			g.sel.ToggleCell(pos)
			return true
		}
		if g.sel.IsSelecting() {
			g.sel.UpdateSelection(pos)
		} else {
			g.sel.StartSelection(pos)
		}
		return true
	case tcell.ButtonNone:
		if g.sel.IsSelecting() {
			g.sel.EndSelection()
			return true
		}
	}
	return false
}

func (g *Grid) recordSyncErr(err error) {
	if err != nil {
		g.statusErr = err.Error()
		return
	}
	g.statusErr = ""
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
