package source

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/track"
)

const bedData = `track name=peaks
# comment
chr1	100	200	a	5	+
1	150	400	b	0	-
chr1	1000	1100	c
chr2	0	50	d
`

const bed12Line = "chr1\t1000\t5000\tNM_1\t0\t+\t1200\t4800\t0\t3\t100,200,300,\t0,1500,3700,\n"

const g3dData = `# resolution chrom start x y z
200000	chr1	0	0.0	0.0	0.0
200000	chr1	200000	1.0	0.5	0.2
200000	chr2	0	2.0	1.0	0.4
1000000	chr1	0	0.0	0.0	0.0
`

func region(chrom string, start, end int64) genome.Region {
	return genome.Region{Chrom: chrom, Start: start, End: end}
}

// countingOpener считает открытия и отдает заданное содержимое
type countingOpener struct {
	content string
	opens   int
	err     error
}

func (o *countingOpener) Open(ctx context.Context, origin string) (io.ReadCloser, error) {
	o.opens++
	if o.err != nil {
		return nil, o.err
	}
	return io.NopCloser(strings.NewReader(o.content)), nil
}

func TestParseBED(t *testing.T) {
	features, err := ParseBED(strings.NewReader(bedData))
	if err != nil {
		t.Fatalf("ParseBED: %v", err)
	}
	if len(features) != 4 {
		t.Fatalf("ожидалось 4 записи, получено %d", len(features))
	}
	if features[1].Chrom != "chr1" || features[1].Name != "b" || features[1].Strand != '-' {
		t.Errorf("запись без префикса chr разобрана неверно: %+v", features[1])
	}
	if features[3].Chrom != "chr2" {
		t.Errorf("записи должны быть упорядочены: %+v", features)
	}
}

func TestParseBED12Blocks(t *testing.T) {
	features, err := ParseBED(strings.NewReader(bed12Line))
	if err != nil {
		t.Fatalf("ParseBED: %v", err)
	}
	f := features[0]
	if f.ThickStart != 1200 || f.ThickEnd != 4800 {
		t.Errorf("thick = %d-%d", f.ThickStart, f.ThickEnd)
	}
	want := []Block{{1000, 1100}, {2500, 2700}, {4700, 5000}}
	if len(f.Blocks) != len(want) {
		t.Fatalf("ожидалось %d блоков, получено %d", len(want), len(f.Blocks))
	}
	for i := range want {
		if f.Blocks[i] != want[i] {
			t.Errorf("блок %d = %+v, ожидалось %+v", i, f.Blocks[i], want[i])
		}
	}
}

func TestParseBEDErrors(t *testing.T) {
	inputs := []string{"chr1\t10\n", "chr1\tx\t20\n", "chr1\t30\t20\n"}
	for _, in := range inputs {
		if _, err := ParseBED(strings.NewReader(in)); err == nil {
			t.Errorf("ожидалась ошибка для %q", in)
		}
	}
}

func TestBedSourceFetchFiltersAndCaches(t *testing.T) {
	opener := &countingOpener{content: bedData}
	src := NewBedSource(opener, "peaks.bed")

	data, err := src.Fetch(context.Background(), region("chr1", 120, 1050), nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	features := data.(Features)
	if len(features) != 3 {
		t.Fatalf("ожидалось 3 записи, получено %d", len(features))
	}

	data, err = src.Fetch(context.Background(), region("chr2", 100, 200), nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data.Len() != 0 {
		t.Errorf("ожидался пустой результат, получено %d", data.Len())
	}
	if opener.opens != 1 {
		t.Errorf("файл должен открываться один раз, открыт %d", opener.opens)
	}
}

func TestFetchErrorIsNotCached(t *testing.T) {
	opener := &countingOpener{content: bedData, err: errors.New("нет сети")}
	src := NewBedSource(opener, "peaks.bed")

	if _, err := src.Fetch(context.Background(), region("chr1", 0, 10), nil); err == nil {
		t.Fatal("ожидалась ошибка")
	}
	opener.err = nil
	if _, err := src.Fetch(context.Background(), region("chr1", 0, 10), nil); err != nil {
		t.Fatalf("повторная загрузка: %v", err)
	}
	if opener.opens != 2 {
		t.Errorf("ожидалось 2 открытия, получено %d", opener.opens)
	}
}

// gatedOpener держит чтение файла до закрытия release
type gatedOpener struct {
	opens   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newGatedOpener() *gatedOpener {
	return &gatedOpener{started: make(chan struct{}, 4), release: make(chan struct{})}
}

func (o *gatedOpener) Open(ctx context.Context, _ string) (io.ReadCloser, error) {
	o.opens.Add(1)
	o.started <- struct{}{}
	select {
	case <-o.release:
		return io.NopCloser(strings.NewReader(bedData)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCancelledFetchKeepsLoading(t *testing.T) {
	opener := newGatedOpener()
	src := NewBedSource(opener, "peaks.bed")

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := src.Fetch(ctx, region("chr1", 0, 500), nil)
		errs <- err
	}()
	<-opener.started
	cancel()
	if err := <-errs; !errors.Is(err, context.Canceled) {
		t.Fatalf("ожидалась отмена, получено %v", err)
	}

	results := make(chan Data, 1)
	go func() {
		data, err := src.Fetch(context.Background(), region("chr1", 1000, 2000), nil)
		if err != nil {
			t.Errorf("Fetch: %v", err)
		}
		results <- data
	}()
	close(opener.release)

	if data := <-results; data == nil || data.Len() != 1 {
		t.Errorf("ожидалась 1 запись, получено %v", data)
	}
	if n := opener.opens.Load(); n != 1 {
		t.Errorf("файл должен открываться один раз, открыт %d", n)
	}
}

func TestCloseStopsLoading(t *testing.T) {
	opener := newGatedOpener()
	src := NewBedSource(opener, "peaks.bed")

	errs := make(chan error, 1)
	go func() {
		_, err := src.Fetch(context.Background(), region("chr1", 0, 500), nil)
		errs <- err
	}()
	<-opener.started
	if err := src.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := <-errs; !errors.Is(err, context.Canceled) {
		t.Errorf("чтение должно прерываться, получено %v", err)
	}
	if _, err := src.Fetch(context.Background(), region("chr1", 0, 500), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("ожидалась ErrClosed, получено %v", err)
	}
}

func TestBedGraphSource(t *testing.T) {
	opener := &countingOpener{content: "chr1\t0\t10\t1.5\nchr1\t10\t20\t3\nchr1\t20\t30\t-2\n"}
	src := NewBedGraphSource(opener, "signal.bedgraph")

	data, err := src.Fetch(context.Background(), region("chr1", 5, 15), nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	signal := data.(Signal)
	if len(signal) != 2 || signal[0].Value != 1.5 || signal[1].Value != 3 {
		t.Errorf("получено %+v", signal)
	}

	if _, err := ParseBedGraph(strings.NewReader("chr1\t0\t10\n")); err == nil {
		t.Error("ожидалась ошибка для строки без значения")
	}
}

func TestG3dSourceModes(t *testing.T) {
	tests := []struct {
		name  string
		opts  track.Options
		count int
		res   int
	}{
		{"region", track.Options{}, 1, 200000},
		{"chromosome", track.Options{options.KeyRegion: options.ModeChromosome}, 2, 200000},
		{"genome", track.Options{options.KeyRegion: options.ModeGenome}, 3, 200000},
		{"nearest resolution", track.Options{options.KeyResolution: 900000}, 1, 1000000},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			src := NewG3dSource(&countingOpener{content: g3dData}, "s.g3d")
			data, err := src.Fetch(context.Background(), region("chr1", 0, 100000), test.opts)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			structure := data.(*Structure)
			if structure.Len() != test.count {
				t.Errorf("ожидалось %d точек, получено %d", test.count, structure.Len())
			}
			if structure.Resolution != test.res {
				t.Errorf("разрешение %d, ожидалось %d", structure.Resolution, test.res)
			}
			if len(structure.Available) != 2 {
				t.Errorf("доступные разрешения: %v", structure.Available)
			}
		})
	}
}

func TestParseG3dErrors(t *testing.T) {
	inputs := []string{"200000 chr1 0 1 2\n", "x chr1 0 1 2 3\n", "200000 chr1 0 1 y 3\n"}
	for _, in := range inputs {
		if _, err := parseG3d(strings.NewReader(in)); err == nil {
			t.Errorf("ожидалась ошибка для %q", in)
		}
	}
}

func TestLoaderLocalAndGzip(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.bed")
	if err := os.WriteFile(plain, []byte("chr1\t1\t2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte("chr1\t3\t4\n"))
	gz.Close()
	packed := filepath.Join(dir, "b.bed.gz")
	if err := os.WriteFile(packed, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(nil)
	for path, want := range map[string]string{plain: "chr1\t1\t2\n", packed: "chr1\t3\t4\n"} {
		rc, err := loader.Open(context.Background(), path)
		if err != nil {
			t.Fatalf("Open(%s): %v", path, err)
		}
		body, _ := io.ReadAll(rc)
		rc.Close()
		if string(body) != want {
			t.Errorf("Open(%s) = %q, ожидалось %q", path, body, want)
		}
	}

	if _, err := loader.Open(context.Background(), filepath.Join(dir, "missing.bed")); err == nil {
		t.Error("ожидалась ошибка для отсутствующего файла")
	}
}

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Encoding") != "identity" {
			t.Errorf("Accept-Encoding = %q", r.Header.Get("Accept-Encoding"))
		}
		if r.URL.Path == "/missing.bed" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(bedData))
	}))
	defer server.Close()

	src := NewBedSource(NewLoader(nil), server.URL+"/peaks.bed")
	data, err := src.Fetch(context.Background(), region("chr2", 0, 100), nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if data.Len() != 1 {
		t.Errorf("ожидалась 1 запись, получено %d", data.Len())
	}

	if _, err := NewLoader(nil).Open(context.Background(), server.URL+"/missing.bed"); err == nil {
		t.Error("ожидалась ошибка HTTP 404")
	}
}

type mockStore struct {
	openFunc func(bucket, key string) (io.ReadCloser, error)
}

func (m *mockStore) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return m.openFunc(bucket, key)
}

func TestLoaderS3(t *testing.T) {
	if _, err := NewLoader(nil).Open(context.Background(), "s3://tracks/a.bed"); !errors.Is(err, ErrS3NotConfigured) {
		t.Errorf("ожидалась ErrS3NotConfigured, получено %v", err)
	}

	store := &mockStore{openFunc: func(bucket, key string) (io.ReadCloser, error) {
		if bucket != "tracks" || key != "dir/a.bed" {
			t.Errorf("неверный объект %s/%s", bucket, key)
		}
		return io.NopCloser(strings.NewReader("ok")), nil
	}}
	rc, err := NewLoader(store).Open(context.Background(), "s3://tracks/dir/a.bed")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	if body, _ := io.ReadAll(rc); string(body) != "ok" {
		t.Errorf("получено %q", body)
	}
}
