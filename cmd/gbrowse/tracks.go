package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-gbrowse/internal/utils"
)

// createTracksCommand создает команду tracks с привязкой к экземпляру приложения
func (app *Application) createTracksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List tracks of the session",
		Long:  `Display the tracks of the current session in display order.`,
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			app.listTracks()
		},
	}
}

func (app *Application) listTracks() {
	fmt.Printf("🧬 Сборка: %s", app.Session.Genome)
	if app.Session.Region != "" {
		fmt.Printf(" | Регион: %s", app.Session.Region)
	}
	fmt.Println()

	if len(app.Session.Tracks) == 0 {
		fmt.Println("📚 Сессия пуста. Добавьте треки с помощью команды 'add'.")
		return
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(app.Session.Tracks))

	// Выводим заголовок таблицы
	fmt.Printf("%-4s %s %s %s\n", "#", utils.FitWidth("Тип", 16), utils.FitWidth("Название", 30), "Источник")
	fmt.Println(strings.Repeat("-", 110))

	for i, t := range app.Session.Tracks {
		fmt.Printf("%-4d %s %s %s\n",
			i+1,
			utils.FitWidth(t.Type, 16),
			utils.FitWidth(t.Label(), 30),
			utils.TruncateString(t.Origin(), 60))
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'gbrowse view' для просмотра треков")
}
