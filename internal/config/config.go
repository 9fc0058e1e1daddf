package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Navigation map[string]string `toml:"navigation"`
}

type GridOptions struct {
	ColumnWidth int    `toml:"column-width"`
	RowNumbers  bool   `toml:"row-numbers"`
	Database    string `toml:"database"`
	Dataset     string `toml:"dataset"`
}

type Theme struct {
	Foreground          string `toml:"foreground"`
	Background          string `toml:"background"`
	HeaderForeground    string `toml:"header-foreground"`
	HeaderBackground    string `toml:"header-background"`
	RowNumberForeground string `toml:"row-number-foreground"`
	SelectionForeground string `toml:"selection-foreground"`
	SelectionBackground string `toml:"selection-background"`
	RangeForeground     string `toml:"range-foreground"`
	RangeBackground     string `toml:"range-background"`
	ActiveForeground    string `toml:"active-foreground"`
	ActiveBackground    string `toml:"active-background"`
	EditForeground      string `toml:"edit-foreground"`
	EditBackground      string `toml:"edit-background"`
	StatusForeground    string `toml:"status-foreground"`
	StatusBackground    string `toml:"status-background"`
	ErrorForeground     string `toml:"error-foreground"`
	TotalForeground     string `toml:"total-foreground"`
}

type Config struct {
	Grid   GridOptions `toml:"grid"`
	Theme  Theme       `toml:"theme"`
	Keymap Keymap      `toml:"keymap"`
}

func Default() Config {
	return Config{
		Grid: GridOptions{
			ColumnWidth: 14,
			RowNumbers:  true,
			Dataset:     "default",
		},
		Theme: Theme{
			Foreground:          "#B3B1AD",
			Background:          "#0A0E14",
			HeaderForeground:    "#59C2FF",
			HeaderBackground:    "#0F1419",
			RowNumberForeground: "#3E4B59",
			SelectionForeground: "#0A0E14",
			SelectionBackground: "#E6B450",
			RangeForeground:     "#B3B1AD",
			RangeBackground:     "#27425A",
			ActiveForeground:    "#0A0E14",
			ActiveBackground:    "#95E6CB",
			EditForeground:      "#0A0E14",
			EditBackground:      "#FFD173",
			StatusForeground:    "#B3B1AD",
			StatusBackground:    "#0F1419",
			ErrorForeground:     "#FF3333",
			TotalForeground:     "#FFD173",
		},
		Keymap: Keymap{
			Navigation: map[string]string{
				"ctrl+b":       "toggle_bold",
				"cmd+b":        "toggle_bold",
				"ctrl+i":       "toggle_italic",
				"cmd+i":        "toggle_italic",
				"ctrl+shift+s": "toggle_strikethrough",
				"cmd+shift+s":  "toggle_strikethrough",
				"ctrl+shift+l": "align_left",
				"cmd+shift+l":  "align_left",
				"ctrl+shift+e": "align_center",
				"cmd+shift+e":  "align_center",
				"ctrl+shift+r": "align_right",
				"cmd+shift+r":  "align_right",
				"left":         "move_left",
				"right":        "move_right",
				"up":           "move_up",
				"down":         "move_down",
				"tab":          "navigate_next",
				"shift+tab":    "navigate_previous",
				"enter":        "start_edit",
				"f2":           "start_edit",
				"esc":          "clear_selection",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if userCfg.Grid.ColumnWidth > 0 {
		cfg.Grid.ColumnWidth = userCfg.Grid.ColumnWidth
	}
	// presence check: false is a valid override of the default
	if md.IsDefined("grid", "row-numbers") {
		cfg.Grid.RowNumbers = userCfg.Grid.RowNumbers
	}
	if userCfg.Grid.Database != "" {
		cfg.Grid.Database = userCfg.Grid.Database
	}
	if userCfg.Grid.Dataset != "" {
		cfg.Grid.Dataset = userCfg.Grid.Dataset
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	if userCfg.Keymap.Navigation != nil {
		for k, v := range userCfg.Keymap.Navigation {
			cfg.Keymap.Navigation[k] = v
		}
	}
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.HeaderForeground != "" {
		dst.HeaderForeground = src.HeaderForeground
	}
	if src.HeaderBackground != "" {
		dst.HeaderBackground = src.HeaderBackground
	}
	if src.RowNumberForeground != "" {
		dst.RowNumberForeground = src.RowNumberForeground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.RangeForeground != "" {
		dst.RangeForeground = src.RangeForeground
	}
	if src.RangeBackground != "" {
		dst.RangeBackground = src.RangeBackground
	}
	if src.ActiveForeground != "" {
		dst.ActiveForeground = src.ActiveForeground
	}
	if src.ActiveBackground != "" {
		dst.ActiveBackground = src.ActiveBackground
	}
	if src.EditForeground != "" {
		dst.EditForeground = src.EditForeground
	}
	if src.EditBackground != "" {
		dst.EditBackground = src.EditBackground
	}
	if src.StatusForeground != "" {
		dst.StatusForeground = src.StatusForeground
	}
	if src.StatusBackground != "" {
		dst.StatusBackground = src.StatusBackground
	}
	if src.ErrorForeground != "" {
		dst.ErrorForeground = src.ErrorForeground
	}
	if src.TotalForeground != "" {
		dst.TotalForeground = src.TotalForeground
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("KEYEGRID_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "keyegrid"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "keyegrid"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
