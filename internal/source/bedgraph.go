package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// BedGraphSource источник числового сигнала в формате bedGraph
type BedGraphSource struct {
	opener Opener
	origin string
	cache  cache[Signal]
}

// NewBedGraphSource создает источник bedGraph для origin
func NewBedGraphSource(opener Opener, origin string) *BedGraphSource {
	return &BedGraphSource{opener: opener, origin: origin}
}

// Close прерывает чтение файла
func (s *BedGraphSource) Close() error {
	s.cache.close()
	return nil
}

// Fetch возвращает значения, пересекающиеся с регионом
func (s *BedGraphSource) Fetch(ctx context.Context, region genome.Region, _ track.Options) (Data, error) {
	all, err := s.cache.get(ctx, func(ctx context.Context) (Signal, error) {
		return loadWith(ctx, s.opener, s.origin, ParseBedGraph)
	})
	if err != nil {
		return nil, err
	}

	chrom := canonicalChrom(region.Chrom)
	result := make(Signal, 0)
	for _, p := range all {
		if p.Chrom == chrom && p.Start < region.End && p.End > region.Start {
			result = append(result, p)
		}
	}
	return result, nil
}

// ParseBedGraph разбирает поток bedGraph: chrom start end value
func ParseBedGraph(r io.Reader) (Signal, error) {
	scanner := newScanner(r)
	signal := make(Signal, 0)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if skipLine(line) {
			continue
		}
		fields := splitFields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("строка %d: ожидалось 4 поля, получено %d", lineNo, len(fields))
		}
		start, err1 := strconv.ParseInt(fields[1], 10, 64)
		end, err2 := strconv.ParseInt(fields[2], 10, 64)
		value, err3 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("строка %d: неверные значения", lineNo)
		}
		signal = append(signal, Point{Chrom: canonicalChrom(fields[0]), Start: start, End: end, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения: %w", err)
	}

	sort.SliceStable(signal, func(i, j int) bool {
		if signal[i].Chrom != signal[j].Chrom {
			return signal[i].Chrom < signal[j].Chrom
		}
		return signal[i].Start < signal[j].Start
	})
	return signal, nil
}
