// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-gbrowse/internal/s3"
)

// Значения по умолчанию
const (
	DefaultPath        = "~/.gbrowse/config.yaml"
	DefaultSessionFile = "~/.gbrowse/session.yaml"
	DefaultGenome      = "hg38"
	DefaultModifierKey = "ctrl"
	DefaultLabelWidth  = 16
	DefaultMinDrag     = 20
)

// Config структура для хранения конфигурации приложения
type Config struct {
	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`

	SessionFile     string `yaml:"session_file"`
	Genome          string `yaml:"genome"`
	MinDragDistance int    `yaml:"min_drag_distance"`
	ModifierKey     string `yaml:"modifier_key"`
	LabelWidth      int    `yaml:"label_width"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Если файла нет, возвращается конфигурация по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	config.applyDefaults()

	// Раскрываем тильду в пути к сессии
	config.SessionFile = strings.Replace(config.SessionFile, "~", home, 1)

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.SessionFile == "" {
		c.SessionFile = DefaultSessionFile
	}
	if c.Genome == "" {
		c.Genome = DefaultGenome
	}
	if c.MinDragDistance <= 0 {
		c.MinDragDistance = DefaultMinDrag
	}
	if c.ModifierKey == "" {
		c.ModifierKey = DefaultModifierKey
	}
	if c.LabelWidth <= 0 {
		c.LabelWidth = DefaultLabelWidth
	}
}

// HasS3 сообщает, заданы ли настройки S3
func (c *Config) HasS3() bool {
	return c.AwsBucketName != "" && c.AwsAccessKey != "" && c.AwsSecretKey != ""
}

// S3 возвращает настройки клиента S3
func (c *Config) S3() *s3.Config {
	return &s3.Config{
		Region:     c.AwsRegion,
		AccessKey:  c.AwsAccessKey,
		SecretKey:  c.AwsSecretKey,
		Endpoint:   c.AwsEndpoint,
		BucketName: c.AwsBucketName,
	}
}
