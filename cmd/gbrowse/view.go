package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-gbrowse/internal/prefs"
	"github.com/hazadus/go-gbrowse/internal/tui"
	browser "github.com/hazadus/go-gbrowse/internal/tui/app"
	"github.com/hazadus/go-gbrowse/internal/tui/container"
)

const debugLogPath = "debug.log"

// createViewCommand создает команду view с привязкой к экземпляру приложения
func (app *Application) createViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Launch the genome browser TUI",
		Long:  `Launch the interactive genome browser. Tracks and region are saved to the session on every change.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}
}

// browserConfig собирает параметры главной модели из конфигурации и сессии
func (app *Application) browserConfig() (browser.Config, error) {
	assembly, err := app.Session.Assembly()
	if err != nil {
		return browser.Config{}, err
	}
	modifier, err := container.ParseModifier(app.Config.ModifierKey)
	if err != nil {
		return browser.Config{}, fmt.Errorf("ошибка в настройке modifier_key: %w", err)
	}

	return browser.Config{
		Session:    app.Session,
		Genome:     assembly,
		Registry:   app.registry(),
		Modifier:   modifier,
		LabelWidth: app.Config.LabelWidth,
		Threshold:  app.Config.MinDragDistance,
		PrefsPath:  prefs.DefaultPath(),
		SaveFunc:   app.SaveData,
	}, nil
}

func (app *Application) launchTUI() error {
	// Вывод log поверх альтернативного экрана портит интерфейс
	if app.debug {
		f, err := tea.LogToFile(debugLogPath, "gbrowse")
		if err != nil {
			return fmt.Errorf("ошибка открытия журнала: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := app.browserConfig()
	if err != nil {
		return err
	}

	// Создаем экземпляр TUI приложения и запускаем его
	tuiApp := tui.NewApp(cfg)
	if err := tuiApp.Run(); err != nil {
		return fmt.Errorf("ошибка TUI: %w", err)
	}
	return nil
}
