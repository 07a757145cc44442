package source

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hazadus/go-gbrowse/internal/s3"
)

// ErrS3NotConfigured возвращается при обращении к s3:// без настроек S3
var ErrS3NotConfigured = errors.New("доступ к S3 не настроен")

// Opener открывает источник данных трека по его адресу
type Opener interface {
	Open(ctx context.Context, origin string) (io.ReadCloser, error)
}

// ObjectStore читает объекты из S3
type ObjectStore interface {
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Loader открывает локальные файлы, HTTP(S) и s3:// адреса.
// Файлы с расширением .gz распаковываются на лету.
type Loader struct {
	HTTP    *http.Client
	Objects ObjectStore
}

// NewLoader создает Loader. objects может быть nil, если S3 не используется.
func NewLoader(objects ObjectStore) *Loader {
	return &Loader{HTTP: NewHTTPClient(), Objects: objects}
}

// Open открывает origin на чтение
func (l *Loader) Open(ctx context.Context, origin string) (io.ReadCloser, error) {
	rc, err := l.openRaw(ctx, origin)
	if err != nil {
		return nil, err
	}
	if !isGzip(origin) {
		return rc, nil
	}

	gz, err := gzip.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("ошибка распаковки %s: %w", origin, err)
	}
	return &gzipReadCloser{Reader: gz, underlying: rc}, nil
}

func (l *Loader) openRaw(ctx context.Context, origin string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(origin, "http://"), strings.HasPrefix(origin, "https://"):
		client := l.HTTP
		if client == nil {
			client = http.DefaultClient
		}
		return openHTTP(ctx, client, origin)
	case s3.IsURL(origin):
		if l.Objects == nil {
			return nil, ErrS3NotConfigured
		}
		bucket, key, err := s3.ParseURL(origin)
		if err != nil {
			return nil, err
		}
		return l.Objects.Open(ctx, bucket, key)
	default:
		f, err := os.Open(strings.TrimPrefix(origin, "file://"))
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия файла: %w", err)
		}
		return f, nil
	}
}

func isGzip(origin string) bool {
	path, _, _ := strings.Cut(origin, "?")
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

type gzipReadCloser struct {
	*gzip.Reader
	underlying io.ReadCloser
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if cerr := g.underlying.Close(); err == nil {
		err = cerr
	}
	return err
}

// OpenerFunc позволяет использовать функцию как Opener
type OpenerFunc func(ctx context.Context, origin string) (io.ReadCloser, error)

// Open вызывает f
func (f OpenerFunc) Open(ctx context.Context, origin string) (io.ReadCloser, error) {
	return f(ctx, origin)
}
