package visual

import (
	"fmt"
	"math"

	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// Structure выводит сводку 3D структуры и проекцию точек на плоскость XY
func Structure(frame Frame, model track.Model, data source.Data) []string {
	structure, ok := data.(*source.Structure)
	if !ok || structure == nil {
		return Placeholder(frame, "нет данных")
	}
	c := newCanvas(frame.Width, frame.Height)
	if frame.Height == 0 || frame.Width == 0 {
		return c.lines()
	}

	c.text(0, 0, fmt.Sprintf("3D: %d точек, разрешение %d, режим %s",
		structure.Len(), structure.Resolution, structure.Mode))
	if frame.Height < 2 || structure.Len() == 0 {
		return c.lines()
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range structure.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	plotHeight := frame.Height - 1
	project := func(v, lo, hi float64, size int) int {
		if hi == lo || size <= 1 {
			return 0
		}
		return int(math.Round((v - lo) / (hi - lo) * float64(size-1)))
	}

	for _, p := range structure.Points {
		x := project(p.X, minX, maxX, frame.Width)
		y := project(p.Y, minY, maxY, plotHeight)
		c.set(x, 1+plotHeight-1-y, '•')
	}
	return c.lines()
}
