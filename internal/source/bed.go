package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/track"
)

const maxLineSize = 1024 * 1024

// BedSource источник записей BED (BED3..BED12)
type BedSource struct {
	opener Opener
	origin string
	cache  cache[Features]
}

// NewBedSource создает источник BED для origin
func NewBedSource(opener Opener, origin string) *BedSource {
	return &BedSource{opener: opener, origin: origin}
}

// Close прерывает чтение файла
func (s *BedSource) Close() error {
	s.cache.close()
	return nil
}

// Fetch возвращает записи, пересекающиеся с регионом
func (s *BedSource) Fetch(ctx context.Context, region genome.Region, _ track.Options) (Data, error) {
	all, err := s.cache.get(ctx, func(ctx context.Context) (Features, error) {
		return loadWith(ctx, s.opener, s.origin, ParseBED)
	})
	if err != nil {
		return nil, err
	}

	chrom := canonicalChrom(region.Chrom)
	result := make(Features, 0)
	for _, f := range all {
		if f.Chrom == chrom && f.Start < region.End && f.End > region.Start {
			result = append(result, f)
		}
	}
	return result, nil
}

func loadWith[T any](ctx context.Context, opener Opener, origin string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := opener.Open(ctx, origin)
	if err != nil {
		return zero, err
	}
	defer rc.Close()

	value, err := parse(rc)
	if err != nil {
		return zero, fmt.Errorf("ошибка разбора %s: %w", origin, err)
	}
	return value, nil
}

// skipLine сообщает, что строка не содержит данных
func skipLine(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "track") ||
		strings.HasPrefix(line, "browser")
}

func splitFields(line string) []string {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		fields = strings.Fields(line)
	}
	return fields
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

// ParseBED разбирает BED поток
func ParseBED(r io.Reader) (Features, error) {
	scanner := newScanner(r)
	features := make(Features, 0)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if skipLine(line) {
			continue
		}
		f, err := parseBEDLine(splitFields(line))
		if err != nil {
			return nil, fmt.Errorf("строка %d: %w", lineNo, err)
		}
		features = append(features, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения: %w", err)
	}

	sortFeatures(features)
	return features, nil
}

func parseBEDLine(fields []string) (Feature, error) {
	if len(fields) < 3 {
		return Feature{}, fmt.Errorf("ожидалось не менее 3 полей, получено %d", len(fields))
	}
	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Feature{}, fmt.Errorf("неверное начало %q", fields[1])
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Feature{}, fmt.Errorf("неверный конец %q", fields[2])
	}
	if end < start {
		return Feature{}, fmt.Errorf("конец %d меньше начала %d", end, start)
	}

	f := Feature{
		Chrom:      canonicalChrom(fields[0]),
		Start:      start,
		End:        end,
		ThickStart: start,
		ThickEnd:   end,
	}
	if len(fields) > 3 {
		f.Name = fields[3]
	}
	if len(fields) > 4 {
		// Score в некоторых файлах равен "."
		f.Score, _ = strconv.ParseFloat(fields[4], 64)
	}
	if len(fields) > 5 && (fields[5] == "+" || fields[5] == "-") {
		f.Strand = fields[5][0]
	}
	if len(fields) > 7 {
		ts, err1 := strconv.ParseInt(fields[6], 10, 64)
		te, err2 := strconv.ParseInt(fields[7], 10, 64)
		if err1 == nil && err2 == nil {
			f.ThickStart, f.ThickEnd = ts, te
		}
	}
	if len(fields) > 11 {
		blocks, err := parseBlocks(start, fields[9], fields[10], fields[11])
		if err != nil {
			return Feature{}, err
		}
		f.Blocks = blocks
	}
	return f, nil
}

func parseBlocks(start int64, countStr, sizesStr, startsStr string) ([]Block, error) {
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("неверное число блоков %q", countStr)
	}
	sizes := splitList(sizesStr)
	starts := splitList(startsStr)
	if len(sizes) < count || len(starts) < count {
		return nil, fmt.Errorf("число блоков %d не совпадает со списками", count)
	}

	blocks := make([]Block, 0, count)
	for i := 0; i < count; i++ {
		size, err1 := strconv.ParseInt(sizes[i], 10, 64)
		offset, err2 := strconv.ParseInt(starts[i], 10, 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("неверный блок %d", i)
		}
		blocks = append(blocks, Block{Start: start + offset, End: start + offset + size})
	}
	return blocks, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' })
}
