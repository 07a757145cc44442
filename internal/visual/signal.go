package visual

import (
	"math"

	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/track"
)

var bars = []rune(" ▁▂▃▄▅▆▇█")

// Columns сводит сигнал к одному значению на колонку: среднему или максимуму.
// Колонки без данных получают NaN.
func Columns(frame Frame, signal source.Signal, aggregate string) []float64 {
	sums := make([]float64, frame.Width)
	counts := make([]int, frame.Width)
	values := make([]float64, frame.Width)
	for i := range values {
		values[i] = math.NaN()
	}

	scale := frame.Scale()
	for _, p := range signal {
		from, to := scale.Span(p.Start, p.End)
		for x := from; x < to; x++ {
			if aggregate == "max" {
				if counts[x] == 0 || p.Value > values[x] {
					values[x] = p.Value
				}
			} else {
				sums[x] += p.Value
			}
			counts[x]++
		}
	}

	if aggregate != "max" {
		for x := range values {
			if counts[x] > 0 {
				values[x] = sums[x] / float64(counts[x])
			}
		}
	}
	return values
}

// Signal отрисовывает bedGraph столбчатой диаграммой высотой в кадр
func Signal(frame Frame, model track.Model, data source.Data) []string {
	signal, ok := data.(source.Signal)
	if !ok {
		return Placeholder(frame, "нет данных")
	}
	c := newCanvas(frame.Width, frame.Height)
	if frame.Height == 0 || frame.Width == 0 {
		return c.lines()
	}

	aggregate := model.Options.String(options.KeyAggregate, options.Aggregate.Default)
	values := Columns(frame, signal, aggregate)

	peak := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	if peak == 0 {
		return c.lines()
	}

	steps := frame.Height * (len(bars) - 1)
	for x, v := range values {
		if math.IsNaN(v) {
			continue
		}
		level := int(math.Round(math.Abs(v) / peak * float64(steps)))
		for row := 0; row < frame.Height && level > 0; row++ {
			part := level
			if part > len(bars)-1 {
				part = len(bars) - 1
			}
			c.set(x, frame.Height-1-row, bars[part])
			level -= part
		}
	}
	return c.lines()
}
