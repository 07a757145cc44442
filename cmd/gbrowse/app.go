package main

import (
	"fmt"

	"github.com/hazadus/go-gbrowse/internal/config"
	"github.com/hazadus/go-gbrowse/internal/registry"
	"github.com/hazadus/go-gbrowse/internal/s3"
	"github.com/hazadus/go-gbrowse/internal/session"
	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/uploader"
)

// objectStore операции с S3, которые нужны командам
type objectStore interface {
	uploader.Store
	source.ObjectStore
}

// Application хранит состояние, общее для всех команд
type Application struct {
	Config      *config.Config
	Session     *session.Session
	SessionPath string

	debug bool
	store objectStore
}

// load загружает конфигурацию и сессию
func (app *Application) load(configPath, sessionPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	app.Config = cfg

	app.SessionPath = sessionPath
	if app.SessionPath == "" {
		app.SessionPath = cfg.SessionFile
	}

	sess := session.NewSession()
	if err := sess.Load(app.SessionPath); err != nil {
		return fmt.Errorf("ошибка загрузки сессии: %w", err)
	}
	// Новая сессия открывается в сборке из конфигурации
	if len(sess.Tracks) == 0 && sess.Region == "" {
		sess.Genome = cfg.Genome
	}
	app.Session = sess
	return nil
}

// SaveData сохраняет сессию в файл
func (app *Application) SaveData() error {
	return app.Session.Save(app.sessionPath())
}

func (app *Application) sessionPath() string {
	if app.SessionPath != "" {
		return app.SessionPath
	}
	return app.Config.SessionFile
}

// objects возвращает клиент S3 или ошибку, если S3 не настроен
func (app *Application) objects() (objectStore, error) {
	if app.store != nil {
		return app.store, nil
	}
	if !app.Config.HasS3() {
		return nil, source.ErrS3NotConfigured
	}
	client, err := s3.NewClient(app.Config.S3())
	if err != nil {
		return nil, fmt.Errorf("ошибка создания S3 клиента: %w", err)
	}
	app.store = client
	return client, nil
}

// registry возвращает реестр типов. Без настроек S3 треки s3:// не открываются.
func (app *Application) registry() *registry.Registry {
	loader := source.NewLoader(nil)
	if store, err := app.objects(); err == nil {
		loader = source.NewLoader(store)
	}
	return registry.Default(loader)
}
