// Package genome содержит определения, связанные с геномными координатами
package genome

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRegion возвращается, если строку не удалось разобрать как регион
var ErrInvalidRegion = errors.New("неверный формат региона")

// Region задает интервал на хромосоме.
// Start и End задают полуоткрытый интервал [Start, End) в парах оснований
// с отсчетом от нуля. Значение неизменяемо: навигация заменяет регион целиком.
type Region struct {
	Chrom string
	Start int64
	End   int64
}

// Width возвращает длину региона в парах оснований
func (r Region) Width() int64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Equal сообщает, совпадают ли два региона
func (r Region) Equal(other Region) bool {
	return r.Chrom == other.Chrom && r.Start == other.Start && r.End == other.End
}

// IsZero сообщает, что регион не задан
func (r Region) IsZero() bool {
	return r.Chrom == "" && r.Start == 0 && r.End == 0
}

// Overlaps сообщает, пересекается ли регион с интервалом [start, end) на хромосоме chrom
func (r Region) Overlaps(chrom string, start, end int64) bool {
	return r.Chrom == chrom && start < r.End && end > r.Start
}

// WithBounds возвращает новый регион на той же хромосоме с другими границами
func (r Region) WithBounds(start, end int64) Region {
	if end < start {
		start, end = end, start
	}
	return Region{Chrom: r.Chrom, Start: start, End: end}
}

// Center возвращает середину региона
func (r Region) Center() int64 {
	return r.Start + r.Width()/2
}

// String возвращает регион в формате chr1:1001-2000 (координаты с отсчетом от единицы)
func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start+1, r.End)
}

// Parse разбирает строку вида chr1:1001-2000 или chr1:1,001-2,000.
// Координаты во входной строке считаются с единицы, конец включительно.
// Строка из одного имени хромосомы дает регион во всю хромосому, если genome не nil.
func Parse(s string, genome *Genome) (Region, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Region{}, fmt.Errorf("%w: пустая строка", ErrInvalidRegion)
	}

	chrom, rng, hasRange := strings.Cut(trimmed, ":")
	if chrom == "" {
		return Region{}, fmt.Errorf("%w: не указана хромосома в %q", ErrInvalidRegion, s)
	}

	if !hasRange {
		if genome == nil {
			return Region{}, fmt.Errorf("%w: не указан интервал в %q", ErrInvalidRegion, s)
		}
		c, ok := genome.Chromosome(chrom)
		if !ok {
			return Region{}, fmt.Errorf("%w: неизвестная хромосома %q", ErrInvalidRegion, chrom)
		}
		return Region{Chrom: c.Name, Start: 0, End: c.Length}, nil
	}

	startStr, endStr, ok := strings.Cut(rng, "-")
	if !ok {
		return Region{}, fmt.Errorf("%w: ожидался интервал start-end в %q", ErrInvalidRegion, s)
	}

	start, err := parseCoordinate(startStr)
	if err != nil {
		return Region{}, fmt.Errorf("%w: начало: %v", ErrInvalidRegion, err)
	}
	end, err := parseCoordinate(endStr)
	if err != nil {
		return Region{}, fmt.Errorf("%w: конец: %v", ErrInvalidRegion, err)
	}
	if start < 1 || end < start {
		return Region{}, fmt.Errorf("%w: некорректные границы %d-%d", ErrInvalidRegion, start, end)
	}

	region := Region{Chrom: chrom, Start: start - 1, End: end}
	if genome != nil {
		if c, ok := genome.Chromosome(chrom); ok {
			region.Chrom = c.Name
		}
	}
	return region, nil
}

func parseCoordinate(s string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseInt(cleaned, 10, 64)
}
