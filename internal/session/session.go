// Package session содержит сохраняемое состояние браузера: сборку, регион и треки
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// DefaultGenome используется, если в сессии не указана сборка
const DefaultGenome = "hg38"

// Session хранит сессию браузера
type Session struct {
	Genome string        `yaml:"genome"`
	Region string        `yaml:"region,omitempty"`
	Tracks []track.Model `yaml:"tracks"`
}

// NewSession создает пустую сессию
func NewSession() *Session {
	return &Session{
		Genome: DefaultGenome,
		Tracks: make([]track.Model, 0),
	}
}

// Load загружает сессию из файла
func (s *Session) Load(filePath string) error {
	path, err := expandHome(filePath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Если файл не найден, начинаем с пустой сессии
		if os.IsNotExist(err) {
			*s = *NewSession()
			return nil
		}
		return fmt.Errorf("ошибка чтения файла сессии: %w", err)
	}
	if len(data) == 0 {
		*s = *NewSession()
		return nil
	}

	loaded := NewSession()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("ошибка разбора сессии: %w", err)
	}
	if loaded.Genome == "" {
		loaded.Genome = DefaultGenome
	}
	*s = *loaded
	return nil
}

// Save сохраняет сессию в файл, создавая каталог при необходимости
func (s *Session) Save(filePath string) error {
	path, err := expandHome(filePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ошибка создания каталога сессии: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ошибка записи файла сессии: %w", err)
	}
	return nil
}

// AddTrack проверяет трек, присваивает ему ID и добавляет в конец списка
func (s *Session) AddTrack(t track.Model) (track.Model, error) {
	if strings.TrimSpace(t.Type) == "" {
		return track.Model{}, fmt.Errorf("не указан тип трека")
	}
	if err := t.Validate(); err != nil {
		return track.Model{}, err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.IsSelected = false
	s.Tracks = append(s.Tracks, t)
	return t, nil
}

// RemoveTrack удаляет трек по индексу и возвращает его
func (s *Session) RemoveTrack(index int) (track.Model, error) {
	if index < 0 || index >= len(s.Tracks) {
		return track.Model{}, fmt.Errorf("трека с индексом %d не найдено", index)
	}
	removed := s.Tracks[index]
	s.Tracks = track.Remove(s.Tracks, index)
	return removed, nil
}

// MoveTrack переставляет трек с позиции from на позицию to
func (s *Session) MoveTrack(from, to int) error {
	if from < 0 || from >= len(s.Tracks) || to < 0 || to >= len(s.Tracks) {
		return fmt.Errorf("неверные индексы перестановки: %d -> %d", from, to)
	}
	s.Tracks = track.Move(s.Tracks, from, to)
	return nil
}

// TrackByID возвращает трек по ID
func (s *Session) TrackByID(id string) (*track.Model, error) {
	for i := range s.Tracks {
		if s.Tracks[i].ID == id {
			return &s.Tracks[i], nil
		}
	}
	return nil, fmt.Errorf("трека с ID %s не найдено", id)
}

// SetTracks заменяет список треков целиком
func (s *Session) SetTracks(tracks []track.Model) {
	dup := make([]track.Model, len(tracks))
	copy(dup, tracks)
	s.Tracks = dup
}

// SetRegion запоминает текущий регион
func (s *Session) SetRegion(r genome.Region) {
	s.Region = r.String()
}

// Assembly возвращает сборку генома сессии
func (s *Session) Assembly() (*genome.Genome, error) {
	name := s.Genome
	if name == "" {
		name = DefaultGenome
	}
	return genome.Lookup(name)
}

// ViewRegion возвращает сохраненный регион или регион по умолчанию для сборки
func (s *Session) ViewRegion(g *genome.Genome) genome.Region {
	if s.Region != "" {
		if r, err := genome.Parse(s.Region, g); err == nil {
			return g.Clamp(r)
		}
	}
	return g.DefaultRegion()
}

func expandHome(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("ошибка определения домашнего каталога: %w", err)
	}
	return strings.Replace(filePath, "~", home, 1), nil
}
