package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createMoveCommand создает команду move с привязкой к экземпляру приложения
func (app *Application) createMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move [from] [to]",
		Short: "Move a track to another position",
		Long:  `Move a track from one position to another. Positions are numbers from 'gbrowse tracks'.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			from, err := app.parseTrackNumber(args[0])
			if err != nil {
				return err
			}
			to, err := app.parseTrackNumber(args[1])
			if err != nil {
				return err
			}
			return app.moveTrack(from, to)
		},
	}
}

func (app *Application) moveTrack(from, to int) error {
	if err := app.Session.MoveTrack(from, to); err != nil {
		return err
	}
	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	fmt.Printf("✅ Трек %s перемещен на позицию %d\n", app.Session.Tracks[to].Label(), to+1)
	return nil
}
