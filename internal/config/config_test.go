package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("KEYEGRID_CONFIG_HOME", "/tmp/keyegrid-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/keyegrid-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/keyegrid-config")
	}

	t.Setenv("KEYEGRID_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/keyegrid" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/keyegrid")
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("KEYEGRID_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Grid.ColumnWidth != 14 {
		t.Fatalf("ColumnWidth = %d, want default 14", cfg.Grid.ColumnWidth)
	}
	if cfg.Keymap.Navigation["ctrl+b"] != "toggle_bold" {
		t.Fatalf("keymap ctrl+b = %q, want toggle_bold", cfg.Keymap.Navigation["ctrl+b"])
	}
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KEYEGRID_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[grid]
column-width = 20
dataset = "revenue"
database = "/tmp/grid.db"

[theme]
foreground = "#111111"
selection-background = "#123456"

[keymap.navigation]
"ctrl+b" = "align_left"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Grid.ColumnWidth != 20 {
		t.Fatalf("ColumnWidth = %d, want 20", cfg.Grid.ColumnWidth)
	}
	if cfg.Grid.Dataset != "revenue" {
		t.Fatalf("Dataset = %q, want revenue", cfg.Grid.Dataset)
	}
	if cfg.Grid.Database != "/tmp/grid.db" {
		t.Fatalf("Database = %q", cfg.Grid.Database)
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want #111111", cfg.Theme.Foreground)
	}
	if cfg.Theme.SelectionBackground != "#123456" {
		t.Fatalf("SelectionBackground = %q, want #123456", cfg.Theme.SelectionBackground)
	}
	// merged: user binding wins, untouched defaults survive
	if cfg.Keymap.Navigation["ctrl+b"] != "align_left" {
		t.Fatalf("keymap ctrl+b = %q, want user override", cfg.Keymap.Navigation["ctrl+b"])
	}
	if cfg.Keymap.Navigation["tab"] != "navigate_next" {
		t.Fatalf("keymap tab = %q, want default preserved", cfg.Keymap.Navigation["tab"])
	}
}

func TestLoadCanDisableRowNumbers(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KEYEGRID_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[grid]
row-numbers = false
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Grid.RowNumbers {
		t.Fatal("row-numbers = false did not override the default")
	}
}
