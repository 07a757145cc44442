// Package tui содержит тесты для TUI компонентов
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-gbrowse/internal/registry"
	"github.com/hazadus/go-gbrowse/internal/session"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/tui/app"
	"github.com/hazadus/go-gbrowse/internal/tui/tracklist"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	s := session.NewSession()
	if _, err := s.AddTrack(track.Model{Type: "bed", Name: "Peaks", File: "peaks.bed"}); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	return NewApp(app.Config{
		Session:   s,
		Registry:  registry.Default(nil),
		PrefsPath: t.TempDir() + "/prefs.toml",
	})
}

func TestMainModelRouting(t *testing.T) {
	model := newTestApp(t).newModel()
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	// Переключаемся на список треков
	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if view := model.View(); !strings.Contains(view, "Треки") {
		t.Errorf("ожидался экран списка треков:\n%s", view)
	}

	// Возврат к браузеру
	model.Update(tracklist.GoBackMsg{})
	if view := model.View(); !strings.Contains(view, "gbrowse") {
		t.Errorf("ожидался экран браузера:\n%s", view)
	}

	// Глобальные горячие клавиши
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected tea.Quit command after Ctrl+C")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ctrl+C должен завершать программу")
	}
}

func TestMainModelView(t *testing.T) {
	model := newTestApp(t).newModel()
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := model.View()
	for _, want := range []string{"Peaks", "hg38", "загрузка"} {
		if !strings.Contains(view, want) {
			t.Errorf("в отображении нет %q:\n%s", want, view)
		}
	}
}
