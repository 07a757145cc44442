// Package s3 предоставляет доступ к трекам, хранящимся в Amazon S3
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Scheme префикс URL треков в S3
const Scheme = "s3://"

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

type uploaderAPI interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

type objectAPI interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// Client обертка над S3 для загрузки, чтения и удаления файлов треков
type Client struct {
	uploader uploaderAPI
	objects  objectAPI
	config   *Config
}

// NewClient создает новый S3 клиент
func NewClient(config *Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return newClient(config, s3manager.NewUploader(sess), s3.New(sess)), nil
}

func newClient(config *Config, uploader uploaderAPI, objects objectAPI) *Client {
	return &Client{uploader: uploader, objects: objects, config: config}
}

// Upload загружает файл в бакет из настроек и возвращает его s3:// URL
func (c *Client) Upload(ctx context.Context, reader io.Reader, key string) (string, error) {
	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}
	return URL(c.config.BucketName, key), nil
}

// Open открывает объект на чтение
func (c *Client) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := c.objects.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла из S3: %w", err)
	}
	return out.Body, nil
}

// Delete удаляет объект из S3
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.objects.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}
	return nil
}

// URL формирует s3:// URL объекта
func URL(bucket, key string) string {
	return Scheme + bucket + "/" + key
}

// IsURL сообщает, указывает ли строка на объект в S3
func IsURL(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseURL разбирает s3://bucket/key на бакет и ключ
func ParseURL(s string) (bucket, key string, err error) {
	if !IsURL(s) {
		return "", "", fmt.Errorf("не S3 URL: %q", s)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(s, Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("в S3 URL должны быть указаны бакет и ключ: %q", s)
	}
	return bucket, key, nil
}
