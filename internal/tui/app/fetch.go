package app

import (
	"context"
	"errors"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/registry"
	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/track"
)

// trackDataMsg результат загрузки данных трека
type trackDataMsg struct {
	ID   string
	Seq  int
	Data source.Data
	Err  error
}

// fetcher запускает загрузку данных треков.
// Для каждого трека учитывается номер последнего запроса: устаревшие ответы отбрасываются,
// а незавершенный запрос отменяется при запуске нового. Отмена запроса не прерывает
// чтение файла источником, его прерывает только закрытие источника.
type fetcher struct {
	registry *registry.Registry

	seq     map[string]int
	cancels map[string]context.CancelFunc
	sources map[string]cachedSource
}

type cachedSource struct {
	key string
	src source.Source
}

func newFetcher(reg *registry.Registry) *fetcher {
	return &fetcher{
		registry: reg,
		seq:      make(map[string]int),
		cancels:  make(map[string]context.CancelFunc),
		sources:  make(map[string]cachedSource),
	}
}

// source возвращает источник трека. Источник пересоздается при смене типа или адреса.
func (f *fetcher) source(m track.Model) (source.Source, error) {
	key := strings.ToLower(m.Type) + "|" + m.Origin()
	if cached, ok := f.sources[m.ID]; ok && cached.key == key {
		return cached.src, nil
	}
	f.release(m.ID)
	src, err := f.registry.NewSource(m)
	if err != nil {
		return nil, err
	}
	f.sources[m.ID] = cachedSource{key: key, src: src}
	return src, nil
}

// fetch возвращает команду загрузки данных трека для региона
func (f *fetcher) fetch(m track.Model, region genome.Region) tea.Cmd {
	f.seq[m.ID]++
	seq := f.seq[m.ID]
	id := m.ID

	if cancel, ok := f.cancels[id]; ok {
		cancel()
	}

	src, err := f.source(m)
	if err != nil {
		delete(f.cancels, id)
		return func() tea.Msg {
			return trackDataMsg{ID: id, Seq: seq, Err: err}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.cancels[id] = cancel
	opts := m.Options.Clone()

	return func() tea.Msg {
		defer cancel()
		data, err := src.Fetch(ctx, region, opts)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, source.ErrClosed) {
			log.Printf("ошибка загрузки трека %s: %v", id, err)
		}
		return trackDataMsg{ID: id, Seq: seq, Data: data, Err: err}
	}
}

// accept сообщает, что ответ относится к последнему запросу трека
func (f *fetcher) accept(msg trackDataMsg) bool {
	if f.seq[msg.ID] != msg.Seq {
		return false
	}
	delete(f.cancels, msg.ID)
	return true
}

// forget освобождает все, что связано с удаленным треком
func (f *fetcher) forget(id string) {
	if cancel, ok := f.cancels[id]; ok {
		cancel()
	}
	delete(f.cancels, id)
	f.release(id)
	// Номер запроса сохраняется, чтобы опоздавший ответ не был принят
	f.seq[id]++
}

// release закрывает источник трека
func (f *fetcher) release(id string) {
	if cached, ok := f.sources[id]; ok {
		if err := cached.src.Close(); err != nil {
			log.Printf("ошибка закрытия источника %s: %v", id, err)
		}
		delete(f.sources, id)
	}
}

// stop отменяет все незавершенные запросы и закрывает источники
func (f *fetcher) stop() {
	for id, cancel := range f.cancels {
		cancel()
		delete(f.cancels, id)
	}
	for id := range f.sources {
		f.release(id)
	}
}

// refetchPlan определяет треки, данные которых нужно загрузить заново.
// Новый трек или трек со сменившимся источником загружается всегда,
// в остальных случаях решают правила типа трека. Треки неизвестных типов пропускаются.
func refetchPlan(reg *registry.Registry, old, new []track.Model, oldRegion, newRegion genome.Region) []track.Model {
	previous := make(map[string]track.Model, len(old))
	for _, m := range old {
		previous[m.ID] = m
	}

	var plan []track.Model
	for _, m := range new {
		cfg, err := reg.Lookup(m.Type)
		if err != nil {
			continue
		}
		prev, ok := previous[m.ID]
		switch {
		case !ok, !strings.EqualFold(prev.Type, m.Type), prev.Origin() != m.Origin():
			plan = append(plan, m)
		case cfg.ShouldFetchBecauseOptionChange != nil && cfg.ShouldFetchBecauseOptionChange(prev.Options, m.Options):
			plan = append(plan, m)
		case !oldRegion.Equal(newRegion) && cfg.ShouldFetchBecauseRegionChange != nil &&
			cfg.ShouldFetchBecauseRegionChange(m.Options, oldRegion, newRegion):
			plan = append(plan, m)
		}
	}
	return plan
}

// removedIDs возвращает ID треков, которых больше нет в списке
func removedIDs(old, new []track.Model) []string {
	present := make(map[string]bool, len(new))
	for _, m := range new {
		present[m.ID] = true
	}
	var removed []string
	for _, m := range old {
		if !present[m.ID] {
			removed = append(removed, m.ID)
		}
	}
	return removed
}
