// Package source содержит источники данных треков
package source

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// Data результат запроса к источнику: Features, Signal или *Structure
type Data interface {
	Len() int
}

// ErrClosed возвращается источником после Close
var ErrClosed = errors.New("источник закрыт")

// Source загружает данные трека для региона.
// Файл читается один раз, Close прерывает чтение и освобождает данные.
type Source interface {
	Fetch(ctx context.Context, region genome.Region, opts track.Options) (Data, error)
	Close() error
}

// Block экзон или другой блок BED12 в абсолютных координатах
type Block struct {
	Start int64
	End   int64
}

// Feature одна запись BED
type Feature struct {
	Chrom      string
	Start      int64
	End        int64
	Name       string
	Score      float64
	Strand     byte // '+', '-' или 0
	ThickStart int64
	ThickEnd   int64
	Blocks     []Block
}

// Features набор записей BED, упорядоченный по началу
type Features []Feature

// Len возвращает количество записей
func (f Features) Len() int { return len(f) }

// Point одно значение сигнала bedGraph
type Point struct {
	Chrom string
	Start int64
	End   int64
	Value float64
}

// Signal набор значений сигнала, упорядоченный по началу
type Signal []Point

// Len возвращает количество значений
func (s Signal) Len() int { return len(s) }

// Coordinate одна точка 3D структуры генома
type Coordinate struct {
	Chrom string
	Start int64
	X     float64
	Y     float64
	Z     float64
}

// Structure точки 3D структуры для одного разрешения
type Structure struct {
	Resolution int
	Mode       string
	Points     []Coordinate
	Available  []int // Все разрешения, имеющиеся в файле
}

// Len возвращает количество точек
func (s *Structure) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// canonicalChrom приводит имя хромосомы к виду chrN
func canonicalChrom(name string) string {
	if len(name) >= 3 && strings.EqualFold(name[:3], "chr") {
		return "chr" + name[3:]
	}
	return "chr" + name
}

// cache разбирает файл один раз и хранит результат.
// Загрузка идет в контексте источника: отмена запроса прекращает только ожидание,
// а следующий запрос дожидается той же загрузки. Ошибка не кэшируется.
type cache[T any] struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
	loaded  bool
	value   T
	pending *load[T]
}

// load незавершенная загрузка файла
type load[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func (c *cache[T]) get(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	switch {
	case c.loaded:
		value := c.value
		c.mu.Unlock()
		return value, nil
	case c.closed:
		c.mu.Unlock()
		return zero, ErrClosed
	}
	call := c.pending
	if call == nil {
		call = c.start(fn)
	}
	c.mu.Unlock()

	select {
	case <-call.done:
		return call.value, call.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// start запускает загрузку. Вызывается под c.mu.
func (c *cache[T]) start(fn func(context.Context) (T, error)) *load[T] {
	if c.ctx == nil {
		c.ctx, c.cancel = context.WithCancel(context.Background())
	}
	call := &load[T]{done: make(chan struct{})}
	c.pending = call
	ctx := c.ctx

	go func() {
		value, err := fn(ctx)

		c.mu.Lock()
		if err == nil && !c.closed {
			c.value = value
			c.loaded = true
		}
		c.pending = nil
		c.mu.Unlock()

		call.value, call.err = value, err
		close(call.done)
	}()
	return call
}

// close прерывает незавершенную загрузку и освобождает данные
func (c *cache[T]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	var zero T
	c.closed = true
	c.loaded = false
	c.value = zero
}

func sortFeatures(f Features) {
	sort.SliceStable(f, func(i, j int) bool {
		if f[i].Chrom != f[j].Chrom {
			return f[i].Chrom < f[j].Chrom
		}
		return f[i].Start < f[j].Start
	})
}
