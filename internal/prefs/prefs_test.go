package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if p := Load(""); p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, ожидалось %q", p.Theme, defaultTheme)
	}
}

func TestLoadInvalidFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = \n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if p := Load(path); p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, ожидалось %q", p.Theme, defaultTheme)
	}
}

func TestSaveAndLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := Save("", Prefs{Theme: "Light"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "gbrowse", "prefs.toml")); err != nil {
		t.Fatalf("файл настроек не создан: %v", err)
	}
	if p := Load(""); p.Theme != "Light" {
		t.Fatalf("Theme = %q, ожидалось Light", p.Theme)
	}
}
