// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-gbrowse/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	config app.Config
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(config app.Config) *App {
	return &App{config: config}
}

func (tuiApp *App) newModel() *app.MainModel {
	return app.NewMainModel(tuiApp.config)
}

// Run запускает TUI приложение.
// Отслеживание движения мыши нужно для жестов перетаскивания и выделения,
// потеря фокуса терминалом отменяет начатый жест.
func (tuiApp *App) Run() error {
	model := tuiApp.newModel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	_, err := p.Run()
	return err
}
