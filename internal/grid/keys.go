package grid

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Router action names bound through the navigation keymap.
const (
	actionToggleBold          = "toggle_bold"
	actionToggleItalic        = "toggle_italic"
	actionToggleStrikethrough = "toggle_strikethrough"
	actionAlignLeft           = "align_left"
	actionAlignCenter         = "align_center"
	actionAlignRight          = "align_right"
	actionMoveLeft            = "move_left"
	actionMoveRight           = "move_right"
	actionMoveUp              = "move_up"
	actionMoveDown            = "move_down"
	actionNavigateNext        = "navigate_next"
	actionNavigatePrevious    = "navigate_previous"
	actionStartEdit           = "start_edit"
	actionClearSelection      = "clear_selection"
)

// keyString maps a tcell key event to the chord notation used by the keymap
// ("ctrl+shift+s", "cmd+b", "shift+tab", "f2", ...). Empty string means the
// event has no chord representation.
func keyString(ev *tcell.EventKey) string {
	if ev.Modifiers()&tcell.ModMeta != 0 {
		if ev.Key() == tcell.KeyRune {
			r := strings.ToLower(string(ev.Rune()))
			if ev.Modifiers()&tcell.ModShift != 0 {
				return "cmd+shift+" + r
			}
			return "cmd+" + r
		}
	}
	// Check Tab before ctrlKeyName since KeyTab == KeyCtrlI (0x09). A set
	// ctrl modifier is the only way to tell the two apart.
	switch ev.Key() {
	case tcell.KeyTab:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return "ctrl+i"
		}
		if ev.Modifiers()&tcell.ModShift != 0 {
			return "shift+tab"
		}
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		if ev.Modifiers()&tcell.ModShift != 0 {
			return "ctrl+shift+" + strings.TrimPrefix(name, "ctrl+")
		}
		return name
	}
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return string(r)
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyDelete:
		return "del"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyF2:
		return "f2"
	}
	return ""
}

func ctrlKeyName(key tcell.Key) string {
	switch key {
	case tcell.KeyCtrlB:
		return "ctrl+b"
	case tcell.KeyCtrlE:
		return "ctrl+e"
	case tcell.KeyCtrlL:
		return "ctrl+l"
	case tcell.KeyCtrlR:
		return "ctrl+r"
	case tcell.KeyCtrlS:
		return "ctrl+s"
	}
	return ""
}
