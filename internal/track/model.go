// Package track содержит модель трека и чистые операции над списком треков
package track

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoOrigin возвращается, если у трека не задан ни URL, ни файл
	ErrNoOrigin = errors.New("у трека не задан источник данных")
	// ErrBothOrigins возвращается, если у трека заданы одновременно URL и файл
	ErrBothOrigins = errors.New("у трека заданы одновременно URL и файл")
)

// Options хранит параметры отображения трека, специфичные для его типа
type Options map[string]any

// Clone возвращает независимую копию параметров
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	dup := make(Options, len(o))
	for k, v := range o {
		dup[k] = v
	}
	return dup
}

// String возвращает строковое значение параметра или def
func (o Options) String(key, def string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return def
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return def
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}

// Int возвращает целое значение параметра или def.
// Значения из YAML могут прийти как int, int64, float64 или строка.
func (o Options) Int(key string, def int) int {
	v, ok := o[key]
	if !ok || v == nil {
		return def
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// Model описывает один трек браузера.
// Модель неизменяема по соглашению: любые изменения делаются через копию.
type Model struct {
	ID         string  `yaml:"id"`
	Type       string  `yaml:"type"`
	Name       string  `yaml:"name,omitempty"`
	URL        string  `yaml:"url,omitempty"`  // Удаленный источник: http(s):// или s3://
	File       string  `yaml:"file,omitempty"` // Локальный файл
	Options    Options `yaml:"options,omitempty"`
	IsSelected bool    `yaml:"-"`
}

// Validate проверяет, что задан ровно один источник данных
func (m Model) Validate() error {
	switch {
	case m.URL == "" && m.File == "":
		return ErrNoOrigin
	case m.URL != "" && m.File != "":
		return ErrBothOrigins
	}
	return nil
}

// Origin возвращает источник данных трека
func (m Model) Origin() string {
	if m.File != "" {
		return m.File
	}
	return m.URL
}

// Label возвращает подпись трека для отображения
func (m Model) Label() string {
	if label := m.Options.String("label", ""); label != "" {
		return label
	}
	if m.Name != "" {
		return m.Name
	}
	return m.Type
}

// Clone возвращает копию трека с независимыми параметрами
func (m Model) Clone() Model {
	dup := m
	dup.Options = m.Options.Clone()
	return dup
}

// WithSelected возвращает копию трека с другим признаком выделения
func (m Model) WithSelected(selected bool) Model {
	dup := m.Clone()
	dup.IsSelected = selected
	return dup
}

// WithOption возвращает копию трека с измененным параметром
func (m Model) WithOption(key string, value any) Model {
	dup := m.Clone()
	if dup.Options == nil {
		dup.Options = make(Options, 1)
	}
	dup.Options[key] = value
	return dup
}

// WithName возвращает копию трека с другим именем
func (m Model) WithName(name string) Model {
	dup := m.Clone()
	dup.Name = name
	return dup
}

// IsRemote сообщает, указывает ли источник на удаленный объект (http(s)://, s3:// и т.п.)
func IsRemote(origin string) bool {
	scheme, _, ok := strings.Cut(origin, "://")
	return ok && scheme != "" && scheme != "file"
}

// WithOrigin возвращает копию трека с новым источником.
// Удаленный адрес записывается в URL, остальное считается локальным файлом.
func (m Model) WithOrigin(origin string) Model {
	dup := m.Clone()
	dup.URL, dup.File = "", ""
	if IsRemote(origin) {
		dup.URL = origin
	} else {
		dup.File = strings.TrimPrefix(origin, "file://")
	}
	return dup
}
