package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-gbrowse/internal/s3"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/uploader"
)

// parseTrackNumber разбирает номер трека из вывода команды tracks и возвращает индекс
func (app *Application) parseTrackNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("неверный номер '%s': номер должен быть числом", arg)
	}
	if n < 1 || n > len(app.Session.Tracks) {
		return 0, fmt.Errorf("трека с номером %d нет, в сессии треков: %d", n, len(app.Session.Tracks))
	}
	return n - 1, nil
}

// createRemoveCommand создает команду remove с привязкой к экземпляру приложения
func (app *Application) createRemoveCommand(ctx context.Context) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "remove [number]",
		Short: "Remove a track from the session",
		Long:  `Remove a track by its number from 'gbrowse tracks'. With --purge the s3:// file is deleted from S3 too.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := app.parseTrackNumber(args[0])
			if err != nil {
				return err
			}
			return app.removeTrack(ctx, index, purge)
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "delete the track file from S3")

	return cmd
}

func (app *Application) removeTrack(ctx context.Context, index int, purge bool) error {
	removed, err := app.Session.RemoveTrack(index)
	if err != nil {
		return err
	}

	fmt.Printf("🗑️  Удаляем трек: %s (%s)\n", removed.Label(), removed.Type)

	// Удаляем файл из S3, если трек там хранится
	if purge && s3.IsURL(removed.URL) {
		if err := app.purgeTrackFile(ctx, removed); err != nil {
			fmt.Printf("⚠️  Предупреждение: не удалось удалить файл из S3: %v\n", err)
		} else {
			fmt.Println("✅ Файл успешно удален из S3")
		}
	}

	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	fmt.Println("✅ Трек удален из сессии")
	return nil
}

func (app *Application) purgeTrackFile(ctx context.Context, removed track.Model) error {
	store, err := app.objects()
	if err != nil {
		return err
	}
	return uploader.NewService(store, app.Session).Purge(ctx, removed)
}
