package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/uploader"
)

const uploadTimeout = 10 * time.Minute

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand(ctx context.Context) *cobra.Command {
	var name string
	var upload bool

	cmd := &cobra.Command{
		Use:   "add [type] [file path or URL]",
		Short: "Add a track to the session",
		Long: `Add a track of the given type to the session.
The origin may be a local file, an http(s) URL or an s3:// URL.
With --upload a local file is uploaded to S3 first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if upload {
				// Создаем контекст с таймаутом для загрузки
				uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
				defer cancel()
				return app.uploadTrack(uploadCtx, args[0], args[1], name)
			}
			return app.addTrack(args[0], args[1], name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "track name shown in the label column")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload the local file to S3 and reference it by s3:// URL")

	return cmd
}

// addTrack добавляет в сессию трек с локальным файлом или URL
func (app *Application) addTrack(trackType, origin, name string) error {
	if _, err := app.registry().Lookup(trackType); err != nil {
		return err
	}

	if !track.IsRemote(origin) {
		abs, err := filepath.Abs(origin)
		if err != nil {
			return fmt.Errorf("ошибка определения пути: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("файл не найден: %s", origin)
		}
		origin = abs
	}
	t := track.Model{Type: strings.ToLower(trackType), Name: name}.WithOrigin(origin)

	added, err := app.Session.AddTrack(t)
	if err != nil {
		return fmt.Errorf("ошибка добавления трека: %w", err)
	}
	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	fmt.Printf("✅ Трек %s (%s) добавлен под номером %d\n", added.Label(), added.Type, len(app.Session.Tracks))
	return nil
}

// uploadTrack загружает локальный файл в S3 с отображением прогресса и добавляет трек в сессию
func (app *Application) uploadTrack(ctx context.Context, trackType, filePath, name string) error {
	if _, err := app.registry().Lookup(trackType); err != nil {
		return err
	}
	if track.IsRemote(filePath) {
		return fmt.Errorf("для загрузки нужен локальный файл, получено %s", filePath)
	}

	store, err := app.objects()
	if err != nil {
		return err
	}
	uploadService := uploader.NewService(store, app.Session)

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("файл не найден: %s", filePath)
	}
	size := info.Size()

	// Отображаем информацию о загрузке
	fmt.Printf("📤 Загружаем файл в S3:\n")
	fmt.Printf("   Файл: %s\n", filePath)
	fmt.Printf("   Размер: %s\n", uploader.FormatFileSize(size))
	fmt.Printf("   Бакет: %s\n", app.Config.AwsBucketName)
	fmt.Println()

	// Создаем канал для отслеживания прогресса
	progressChan := make(chan int64)
	done := make(chan struct{})

	// Запускаем горутину для отображения прогресса
	go func() {
		defer close(done)
		startTime := time.Now()

		for progress := range progressChan {
			if progress <= 0 || size == 0 {
				continue
			}
			elapsed := time.Since(startTime)
			percentage := float64(progress) / float64(size) * 100

			// Вычисляем скорость загрузки и оставшееся время
			var speed float64
			if elapsed > 0 {
				speed = float64(progress) / elapsed.Seconds()
			}
			var remainingTime time.Duration
			if speed > 0 {
				remainingTime = time.Duration(float64(size-progress)/speed) * time.Second
			}

			fmt.Printf("\r📊 Прогресс: %.1f%% | Скорость: %s/s | Прошло: %s | Осталось: %s",
				percentage,
				uploader.FormatFileSize(int64(speed)),
				uploader.FormatDuration(elapsed),
				uploader.FormatDuration(remainingTime))
		}
	}()

	result, err := uploadService.UploadFile(ctx, filePath, func(bytesRead int64) {
		progressChan <- bytesRead
	})

	// Закрываем канал прогресса и ждем последнюю строку
	close(progressChan)
	<-done

	if ctx.Err() != nil {
		fmt.Printf("\n🚫 Загрузка отменена\n")
		return fmt.Errorf("операция отменена: %w", ctx.Err())
	}
	if err != nil {
		return fmt.Errorf("ошибка загрузки файла: %w", err)
	}

	fmt.Printf("\n✅ Файл загружен за %s\n", uploader.FormatDuration(result.Duration))
	fmt.Printf("   URL: %s\n", result.URL)

	added, err := uploadService.AddToSession(result, strings.ToLower(trackType), name)
	if err != nil {
		return fmt.Errorf("ошибка добавления трека: %w", err)
	}
	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	fmt.Printf("\n📦 Трек %s добавлен в %s\n", added.Label(), app.sessionPath())
	return nil
}
