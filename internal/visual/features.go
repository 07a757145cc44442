package visual

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// packRows раскладывает интервалы по строкам так, чтобы они не перекрывались.
// Интервалы, не поместившиеся в height строк, попадают в последнюю строку.
func packRows(spans [][2]int, height int) []int {
	rows := make([]int, len(spans))
	ends := make([]int, 0, height)
	for i, span := range spans {
		placed := false
		for r, end := range ends {
			if span[0] > end {
				ends[r] = span[1]
				rows[i] = r
				placed = true
				break
			}
		}
		if placed {
			continue
		}
		if len(ends) < height {
			ends = append(ends, span[1])
			rows[i] = len(ends) - 1
		} else {
			rows[i] = height - 1
		}
	}
	return rows
}

func collapsed(m track.Model) bool {
	return m.Options.String(options.KeyDisplayMode, options.DisplayMode.Default) == "collapsed"
}

// Features отрисовывает записи BED прямоугольниками с направлением цепи
func Features(frame Frame, model track.Model, data source.Data) []string {
	features, ok := data.(source.Features)
	if !ok {
		return Placeholder(frame, "нет данных")
	}
	c := newCanvas(frame.Width, frame.Height)
	if frame.Height == 0 || frame.Width == 0 {
		return c.lines()
	}

	scale := frame.Scale()
	spans := make([][2]int, len(features))
	for i, f := range features {
		from, to := scale.Span(f.Start, f.End)
		spans[i] = [2]int{from, to}
	}

	rows := make([]int, len(features))
	if !collapsed(model) {
		rows = packRows(spans, frame.Height)
	}

	for i, f := range features {
		from, to, y := spans[i][0], spans[i][1], rows[i]
		c.fill(from, to, y, '█')
		if to-from >= 3 {
			switch f.Strand {
			case '+':
				c.set(to-1, y, '▶')
			case '-':
				c.set(from, y, '◀')
			}
		}
	}
	return c.lines()
}

// Genes отрисовывает модели генов: интроны линией, экзоны блоками, имя под геном
func Genes(frame Frame, model track.Model, data source.Data) []string {
	features, ok := data.(source.Features)
	if !ok {
		return Placeholder(frame, "нет данных")
	}
	c := newCanvas(frame.Width, frame.Height)
	if frame.Height == 0 || frame.Width == 0 {
		return c.lines()
	}

	scale := frame.Scale()
	withNames := frame.Height >= 2 && !collapsed(model)
	laneHeight := 1
	if withNames {
		laneHeight = 2
	}
	lanes := frame.Height / laneHeight

	spans := make([][2]int, len(features))
	for i, f := range features {
		from, to := scale.Span(f.Start, f.End)
		if withNames {
			if n := ansi.StringWidth(f.Name); to-from < n {
				to = from + n
			}
		}
		spans[i] = [2]int{from, to}
	}

	rows := make([]int, len(features))
	if !collapsed(model) {
		rows = packRows(spans, lanes)
	}

	for i, f := range features {
		y := rows[i] * laneHeight
		from, to := scale.Span(f.Start, f.End)

		intron := '─'
		switch f.Strand {
		case '+':
			intron = '>'
		case '-':
			intron = '<'
		}
		c.fill(from, to, y, intron)

		if len(f.Blocks) == 0 {
			drawExon(c, scale.Span, f.Start, f.End, f.ThickStart, f.ThickEnd, y)
		}
		for _, b := range f.Blocks {
			drawExon(c, scale.Span, b.Start, b.End, f.ThickStart, f.ThickEnd, y)
		}

		if withNames && f.Name != "" {
			c.text(from, y+1, f.Name)
		}
	}
	return c.lines()
}

// drawExon рисует блок: кодирующая часть полным символом, UTR половинным
func drawExon(c canvas, span func(int64, int64) (int, int), start, end, thickStart, thickEnd int64, y int) {
	from, to := span(start, end)
	c.fill(from, to, y, '▄')

	cs, ce := max64(start, thickStart), min64(end, thickEnd)
	if cs < ce {
		from, to = span(cs, ce)
		c.fill(from, to, y, '█')
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
