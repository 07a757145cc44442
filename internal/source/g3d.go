package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// g3dFile содержимое файла 3D структуры, сгруппированное по разрешениям
type g3dFile struct {
	byResolution map[int][]Coordinate
	resolutions  []int
}

// G3dSource источник 3D структуры генома.
// Текстовый формат: resolution chrom start x y z, по одной точке на строку.
type G3dSource struct {
	opener Opener
	origin string
	cache  cache[*g3dFile]
}

// NewG3dSource создает источник 3D структуры для origin
func NewG3dSource(opener Opener, origin string) *G3dSource {
	return &G3dSource{opener: opener, origin: origin}
}

// Close прерывает чтение файла
func (s *G3dSource) Close() error {
	s.cache.close()
	return nil
}

// Fetch возвращает точки ближайшего к запрошенному разрешения.
// Отбор точек зависит от режима региона: весь геном, хромосома или регион.
func (s *G3dSource) Fetch(ctx context.Context, region genome.Region, opts track.Options) (Data, error) {
	file, err := s.cache.get(ctx, func(ctx context.Context) (*g3dFile, error) {
		return loadWith(ctx, s.opener, s.origin, parseG3d)
	})
	if err != nil {
		return nil, err
	}

	mode := strings.ToUpper(opts.String(options.KeyRegion, options.ModeRegion))
	resolution := nearestResolution(file.resolutions, opts.Int(options.KeyResolution, options.DefaultResolution))
	structure := &Structure{
		Resolution: resolution,
		Mode:       mode,
		Points:     make([]Coordinate, 0),
		Available:  append([]int(nil), file.resolutions...),
	}

	chrom := canonicalChrom(region.Chrom)
	for _, p := range file.byResolution[resolution] {
		switch mode {
		case options.ModeGenome:
		case options.ModeChromosome:
			if p.Chrom != chrom {
				continue
			}
		default:
			if p.Chrom != chrom || p.Start < region.Start || p.Start >= region.End {
				continue
			}
		}
		structure.Points = append(structure.Points, p)
	}
	return structure, nil
}

func nearestResolution(available []int, want int) int {
	if len(available) == 0 {
		return want
	}
	best := available[0]
	for _, r := range available[1:] {
		if abs(r-want) < abs(best-want) {
			best = r
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// parseG3d разбирает текстовый файл 3D структуры
func parseG3d(r io.Reader) (*g3dFile, error) {
	scanner := newScanner(r)
	file := &g3dFile{byResolution: make(map[int][]Coordinate)}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, fmt.Errorf("строка %d: ожидалось 6 полей, получено %d", lineNo, len(fields))
		}

		resolution, err := strconv.Atoi(fields[0])
		if err != nil || resolution <= 0 {
			return nil, fmt.Errorf("строка %d: неверное разрешение %q", lineNo, fields[0])
		}
		start, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("строка %d: неверное начало %q", lineNo, fields[2])
		}
		var xyz [3]float64
		for i := range xyz {
			xyz[i], err = strconv.ParseFloat(fields[3+i], 64)
			if err != nil {
				return nil, fmt.Errorf("строка %d: неверная координата %q", lineNo, fields[3+i])
			}
		}

		file.byResolution[resolution] = append(file.byResolution[resolution], Coordinate{
			Chrom: canonicalChrom(fields[1]),
			Start: start,
			X:     xyz[0],
			Y:     xyz[1],
			Z:     xyz[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения: %w", err)
	}

	for resolution, points := range file.byResolution {
		sort.SliceStable(points, func(i, j int) bool {
			if points[i].Chrom != points[j].Chrom {
				return points[i].Chrom < points[j].Chrom
			}
			return points[i].Start < points[j].Start
		})
		file.resolutions = append(file.resolutions, resolution)
	}
	sort.Ints(file.resolutions)
	return file, nil
}
