// Package registry сопоставляет тип трека с его источником данных, отрисовкой,
// редакторами параметров и правилами повторной загрузки
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/visual"
)

// ErrUnknownType возвращается для типа трека, которого нет в реестре
var ErrUnknownType = errors.New("неизвестный тип трека")

// Config описывает один тип трека
type Config struct {
	Type        string
	Description string

	// NewSource создает источник данных для адреса трека
	NewSource func(opener source.Opener, origin string) source.Source
	Render    visual.Renderer
	Editors   []options.Editor

	// ShouldFetchBecauseOptionChange сообщает, требует ли смена параметров повторной загрузки
	ShouldFetchBecauseOptionChange func(old, new track.Options) bool
	// ShouldFetchBecauseRegionChange сообщает, требует ли смена региона повторной загрузки
	ShouldFetchBecauseRegionChange func(opts track.Options, old, new genome.Region) bool
}

// Registry неизменяемая таблица типов треков
type Registry struct {
	opener  source.Opener
	configs map[string]Config
}

// New создает реестр из набора конфигураций
func New(opener source.Opener, configs ...Config) *Registry {
	r := &Registry{opener: opener, configs: make(map[string]Config, len(configs))}
	for _, c := range configs {
		r.configs[strings.ToLower(c.Type)] = c
	}
	return r
}

// Lookup возвращает конфигурацию типа
func (r *Registry) Lookup(trackType string) (Config, error) {
	c, ok := r.configs[strings.ToLower(trackType)]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownType, trackType)
	}
	return c, nil
}

// Types возвращает зарегистрированные типы в алфавитном порядке
func (r *Registry) Types() []Config {
	types := make([]Config, 0, len(r.configs))
	for _, c := range r.configs {
		types = append(types, c)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Type < types[j].Type })
	return types
}

// NewSource создает источник данных трека.
// Локальный файл имеет приоритет над URL.
func (r *Registry) NewSource(m track.Model) (source.Source, error) {
	c, err := r.Lookup(m.Type)
	if err != nil {
		return nil, err
	}
	origin := m.File
	if origin == "" {
		origin = m.URL
	}
	if origin == "" {
		return nil, track.ErrNoOrigin
	}
	return c.NewSource(r.opener, origin), nil
}

// Editors возвращает редакторы, общие для всех переданных треков.
// Треки неизвестных типов пропускаются.
func (r *Registry) Editors(tracks []track.Model) []options.Editor {
	var sets [][]options.Editor
	for _, m := range tracks {
		c, err := r.Lookup(m.Type)
		if err != nil {
			continue
		}
		sets = append(sets, c.Editors)
	}
	return options.Common(sets...)
}
