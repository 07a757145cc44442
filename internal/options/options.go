// Package options описывает параметры отображения треков и их редакторы
package options

import (
	"strconv"

	"github.com/hazadus/go-gbrowse/internal/track"
)

// Ключи параметров трека
const (
	KeyColor       = "color"
	KeyHeight      = "height"
	KeyLabel       = "label"
	KeyDisplayMode = "displayMode"
	KeyRegion      = "region"
	KeyResolution  = "resolution"
	KeyAggregate   = "aggregate"
)

// Режимы региона для треков, умеющих показывать агрегированный вид
const (
	ModeRegion     = "REGION"
	ModeChromosome = "CHROMOSOME"
	ModeGenome     = "GENOME"
)

// Значения по умолчанию
const (
	DefaultHeight     = 3
	DefaultResolution = 200000
	MaxHeight         = 10
)

// Kind задает способ редактирования параметра
type Kind int

const (
	// KindCycle перебирает фиксированный набор значений
	KindCycle Kind = iota
	// KindText редактируется вводом текста
	KindText
)

// Editor описывает редактор одного параметра в контекстном меню
type Editor struct {
	Key     string
	Label   string
	Kind    Kind
	Choices []string
	Default string
	Numeric bool // Значение хранится как целое число
}

// Current возвращает текущее значение параметра трека в виде строки
func (e Editor) Current(m track.Model) string {
	return m.Options.String(e.Key, e.Default)
}

// Next возвращает следующее значение после cur
func (e Editor) Next(cur string) string {
	return e.step(cur, 1)
}

// Prev возвращает предыдущее значение перед cur
func (e Editor) Prev(cur string) string {
	return e.step(cur, -1)
}

func (e Editor) step(cur string, delta int) string {
	if len(e.Choices) == 0 {
		return cur
	}
	idx := -1
	for i, c := range e.Choices {
		if c == cur {
			idx = i
			break
		}
	}
	if idx == -1 {
		return e.Choices[0]
	}
	n := len(e.Choices)
	return e.Choices[((idx+delta)%n+n)%n]
}

// Value переводит строковое значение в то, что хранится в параметрах трека
func (e Editor) Value(s string) any {
	if !e.Numeric {
		return s
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	return n
}

// Редакторы, общие для всех типов треков
var (
	Color = Editor{
		Key:     KeyColor,
		Label:   "Цвет",
		Kind:    KindCycle,
		Choices: []string{"default", "red", "green", "blue", "yellow", "magenta", "cyan"},
		Default: "default",
	}
	Height = Editor{
		Key:     KeyHeight,
		Label:   "Высота",
		Kind:    KindCycle,
		Choices: heightChoices(),
		Default: strconv.Itoa(DefaultHeight),
		Numeric: true,
	}
	Label = Editor{
		Key:   KeyLabel,
		Label: "Подпись",
		Kind:  KindText,
	}
)

// Редакторы отдельных типов треков
var (
	DisplayMode = Editor{
		Key:     KeyDisplayMode,
		Label:   "Вид",
		Kind:    KindCycle,
		Choices: []string{"full", "collapsed"},
		Default: "full",
	}
	RegionMode = Editor{
		Key:     KeyRegion,
		Label:   "Режим региона",
		Kind:    KindCycle,
		Choices: []string{ModeRegion, ModeChromosome, ModeGenome},
		Default: ModeRegion,
	}
	Resolution = Editor{
		Key:     KeyResolution,
		Label:   "Разрешение",
		Kind:    KindCycle,
		Choices: []string{"10000", "50000", "200000", "1000000"},
		Default: strconv.Itoa(DefaultResolution),
		Numeric: true,
	}
	Aggregate = Editor{
		Key:     KeyAggregate,
		Label:   "Агрегация",
		Kind:    KindCycle,
		Choices: []string{"mean", "max"},
		Default: "mean",
	}
)

func heightChoices() []string {
	choices := make([]string, 0, MaxHeight)
	for h := 1; h <= MaxHeight; h++ {
		choices = append(choices, strconv.Itoa(h))
	}
	return choices
}

// HeightOf возвращает высоту трека в строках терминала
func HeightOf(m track.Model) int {
	h := m.Options.Int(KeyHeight, DefaultHeight)
	if h < 1 {
		return 1
	}
	if h > MaxHeight {
		return MaxHeight
	}
	return h
}

// Apply применяет значение параметра к трекам с индексами indices.
// Каждый затронутый трек клонируется и заменяется, исходный срез не меняется.
func Apply(tracks []track.Model, indices []int, key string, value any) []track.Model {
	result := make([]track.Model, len(tracks))
	copy(result, tracks)
	for _, i := range indices {
		if i < 0 || i >= len(result) {
			continue
		}
		result[i] = result[i].WithOption(key, value)
	}
	return result
}

// Common возвращает редакторы, присутствующие во всех наборах.
// Порядок берется из первого набора.
func Common(sets ...[]Editor) []Editor {
	if len(sets) == 0 {
		return nil
	}
	var common []Editor
	for _, e := range sets[0] {
		inAll := true
		for _, set := range sets[1:] {
			if !contains(set, e.Key) {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, e)
		}
	}
	return common
}

func contains(set []Editor, key string) bool {
	for _, e := range set {
		if e.Key == key {
			return true
		}
	}
	return false
}
