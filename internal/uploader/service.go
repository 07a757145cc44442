// Package uploader загружает файлы треков в S3 и добавляет их в сессию
package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hazadus/go-gbrowse/internal/s3"
	"github.com/hazadus/go-gbrowse/internal/session"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// KeyPrefix каталог в бакете для файлов треков
const KeyPrefix = "tracks/"

// Store хранилище файлов треков
type Store interface {
	Upload(ctx context.Context, reader io.Reader, key string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// Service управляет загрузкой и удалением файлов треков
type Service struct {
	store   Store
	session *session.Session
}

// NewService создает новый сервис загрузки
func NewService(store Store, sess *session.Session) *Service {
	return &Service{store: store, session: sess}
}

// UploadResult содержит результат загрузки
type UploadResult struct {
	URL      string
	Key      string
	Size     int64
	Duration time.Duration
}

// UploadFile загружает локальный файл трека в S3
func (s *Service) UploadFile(ctx context.Context, filePath string, progressCallback func(int64)) (*UploadResult, error) {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("файл не найден: %s", filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s является каталогом", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if progressCallback != nil {
		reader = &ProgressReader{
			Reader:     file,
			Size:       info.Size(),
			OnProgress: progressCallback,
		}
	}

	key := KeyPrefix + filepath.Base(filePath)
	started := time.Now()
	url, err := s.store.Upload(ctx, reader, key)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки в S3: %w", err)
	}

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     info.Size(),
		Duration: time.Since(started),
	}, nil
}

// AddToSession добавляет загруженный файл в сессию как трек с s3:// адресом
func (s *Service) AddToSession(result *UploadResult, trackType, name string) (track.Model, error) {
	if name == "" {
		name = filepath.Base(result.Key)
	}
	return s.session.AddTrack(track.Model{
		Type: trackType,
		Name: name,
		URL:  result.URL,
	})
}

// Purge удаляет из S3 файл трека
func (s *Service) Purge(ctx context.Context, t track.Model) error {
	if !s3.IsURL(t.URL) {
		return fmt.Errorf("трек %s не хранится в S3", t.Label())
	}
	bucket, key, err := s3.ParseURL(t.URL)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, bucket, key)
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}

// FormatFileSize форматирует размер файла в читаемом виде
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDuration форматирует длительность загрузки
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%d:%02d", m, d/time.Second)
}
