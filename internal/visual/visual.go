// Package visual отрисовывает данные треков в строки терминала
package visual

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// Frame область отрисовки одного трека
type Frame struct {
	Width  int
	Height int
	Region genome.Region
}

// Scale возвращает отображение региона на ширину кадра
func (f Frame) Scale() genome.Scale {
	return genome.NewScale(f.Region, f.Width)
}

// Renderer отрисовывает данные трека.
// Результат содержит ровно Height строк шириной Width ячеек терминала без стилей.
type Renderer func(frame Frame, model track.Model, data source.Data) []string

// canvas прямоугольник ячеек терминала.
// Широкий символ занимает две ячейки, вторая хранит пустую строку.
type canvas [][]string

func newCanvas(width, height int) canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := make(canvas, height)
	for i := range c {
		c[i] = blankRow(width)
	}
	return c
}

func blankRow(width int) []string {
	row := make([]string, width)
	for i := range row {
		row[i] = " "
	}
	return row
}

// clearCell освобождает ячейку вместе с широким символом, частью которого она была
func clearCell(row []string, x int) {
	if row[x] == "" && x > 0 {
		row[x-1] = " "
	}
	if x+1 < len(row) && row[x+1] == "" {
		row[x+1] = " "
	}
	row[x] = " "
}

// put записывает в ячейку x символ шириной w. Символ, не помещающийся целиком, пропускается.
func put(row []string, x int, s string, w int) bool {
	if w <= 0 || x < 0 || x+w > len(row) {
		return false
	}
	for i := x; i < x+w; i++ {
		clearCell(row, i)
	}
	row[x] = s
	for i := x + 1; i < x+w; i++ {
		row[i] = ""
	}
	return true
}

func (c canvas) set(x, y int, r rune) {
	if y < 0 || y >= len(c) {
		return
	}
	put(c[y], x, string(r), ansi.StringWidth(string(r)))
}

func (c canvas) fill(from, to, y int, r rune) {
	for x := from; x < to; x++ {
		c.set(x, y, r)
	}
}

// text пишет строку с колонки x, сдвигаясь на ширину каждого символа
func (c canvas) text(x, y int, s string) {
	if y < 0 || y >= len(c) {
		return
	}
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		put(c[y], x, string(r), w)
		x += w
	}
}

func (c canvas) lines() []string {
	out := make([]string, len(c))
	for i, row := range c {
		out[i] = strings.Join(row, "")
	}
	return out
}

// cells раскладывает строку по ячейкам терминала
func cells(row string) []string {
	out := make([]string, 0, len(row))
	for _, r := range row {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		out = append(out, string(r))
		for i := 1; i < w; i++ {
			out = append(out, "")
		}
	}
	return out
}

// Placeholder выводит сообщение по центру кадра: загрузка, ошибка или пустой трек
func Placeholder(frame Frame, message string) []string {
	c := newCanvas(frame.Width, frame.Height)
	if frame.Height == 0 || frame.Width <= 0 {
		return c.lines()
	}
	message = ansi.Truncate(message, frame.Width, "")
	x := (frame.Width - ansi.StringWidth(message)) / 2
	c.text(x, frame.Height/2, message)
	return c.lines()
}

// Shift сдвигает готовые строки на dx колонок, освобождая место пробелами.
// Широкий символ, который пересекает край, заменяется пробелами.
func Shift(rows []string, dx int) []string {
	if dx == 0 {
		return rows
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		src := cells(row)
		shifted := blankRow(len(src))
		for x, cell := range src {
			if cell == "" {
				continue
			}
			w := 1
			for x+w < len(src) && src[x+w] == "" {
				w++
			}
			put(shifted, x+dx, cell, w)
		}
		out[i] = strings.Join(shifted, "")
	}
	return out
}
