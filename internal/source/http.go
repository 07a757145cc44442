package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const httpBufferSize = 64 * 1024

// NewHTTPClient создает HTTP клиент для потокового чтения файлов треков.
// Общего таймаута нет: крупные файлы читаются долго, остановка идет через контекст.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       300 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// httpReader буферизованный поток HTTP ответа
type httpReader struct {
	reader *bufio.Reader
	body   io.ReadCloser
}

func openHTTP(ctx context.Context, client *http.Client, url string) (*httpReader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Сжатие делаем сами по расширению файла
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("User-Agent", "go-gbrowse/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &httpReader{
		reader: bufio.NewReaderSize(resp.Body, httpBufferSize),
		body:   resp.Body,
	}, nil
}

// Read реализует io.Reader
func (r *httpReader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

// Close закрывает соединение
func (r *httpReader) Close() error {
	return r.body.Close()
}
