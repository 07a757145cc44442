package container

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/registry"
	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/tui/gesture"
	"github.com/hazadus/go-gbrowse/internal/tui/menu"
	"github.com/hazadus/go-gbrowse/internal/tui/theme"
)

// DefaultLabelWidth ширина колонки подписей треков
const DefaultLabelWidth = 16

// TrackData состояние загрузки данных трека
type TrackData struct {
	Data    source.Data
	Loading bool
	Err     error
}

// Config настройки контейнера
type Config struct {
	Registry   *registry.Registry
	Modifier   Modifier
	LabelWidth int
	Threshold  int
}

// Container отображает треки и переводит действия мыши в изменения треков и региона
type Container struct {
	registry   *registry.Registry
	modifier   Modifier
	labelWidth int

	state  State
	props  Props
	data   map[string]TrackData
	top    int
	width  int
	menu   *menu.Model
	styles theme.Styles

	reported map[string]bool

	// OnNewRegion вызывается с новыми границами региона
	OnNewRegion func(start, end int64)
	// OnTracksChanged вызывается с новым полным списком треков
	OnTracksChanged func(tracks []track.Model)
	// OnReport вызывается для проблем, не мешающих работе, например неизвестного типа трека
	OnReport func(err error)
}

// New создает контейнер
func New(cfg Config) *Container {
	labelWidth := cfg.LabelWidth
	if labelWidth <= 0 {
		labelWidth = DefaultLabelWidth
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = gesture.MinDragDistance
	}
	return &Container{
		registry:   cfg.Registry,
		modifier:   cfg.Modifier,
		labelWidth: labelWidth,
		state:      NewState(threshold),
		props:      Props{Threshold: threshold},
		data:       make(map[string]TrackData),
		menu:       menu.New(),
		styles:     theme.ByName("").Styles(),
		reported:   make(map[string]bool),
	}
}

// SetProps обновляет треки, регион и ширину контейнера
func (c *Container) SetProps(tracks []track.Model, region genome.Region, width int) {
	c.width = width
	c.props.Tracks = tracks
	c.props.Region = region
	c.props.Frame = c.layout()
}

// SetData обновляет данные треков по ID
func (c *Container) SetData(data map[string]TrackData) {
	c.data = data
}

// SetTop задает экранную строку первого трека
func (c *Container) SetTop(row int) {
	c.top = row
}

// SetStyles задает стили темы
func (c *Container) SetStyles(styles theme.Styles) {
	c.styles = styles
}

// State возвращает текущее состояние
func (c *Container) State() State {
	return c.state
}

// Tool возвращает активный инструмент
func (c *Container) Tool() gesture.Tool {
	return c.state.Tool
}

// MenuOpen сообщает, открыто ли контекстное меню
func (c *Container) MenuOpen() bool {
	return c.state.Menu != nil
}

// Frame возвращает геометрию области данных
func (c *Container) Frame() gesture.Frame {
	return c.props.Frame
}

// Dispatch применяет действие и передает результаты родителю
func (c *Container) Dispatch(a Action) {
	wasOpen := c.state.Menu != nil
	next, effects := Reduce(c.state, c.props, a)
	c.state = next
	if !wasOpen && c.state.Menu != nil {
		c.menu = menu.New()
	}
	c.emit(effects)
}

func (c *Container) emit(effects Effects) {
	if effects.Tracks != nil {
		// Родитель передаст новые треки обратно через SetProps,
		// до этого контейнер работает со своей копией
		c.props.Tracks = effects.Tracks
		c.props.Frame = c.layout()
		if c.OnTracksChanged != nil {
			c.OnTracksChanged(effects.Tracks)
		}
	}
	if effects.Region != nil && c.OnNewRegion != nil {
		c.OnNewRegion(effects.Region.Start, effects.Region.End)
	}
}

// HandleKey передает клавишу открытому меню. Возвращает false, если меню закрыто.
func (c *Container) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.state.Menu == nil {
		return false, nil
	}
	result, cmd := c.menu.Update(msg, c.editors(), c.props.Tracks)
	c.applyMenu(result)
	return true, cmd
}

// MenuEditing сообщает, что в меню идет ввод текста
func (c *Container) MenuEditing() bool {
	return c.state.Menu != nil && c.menu.Editing()
}

func (c *Container) applyMenu(result menu.Result) {
	c.emit(Effects{Tracks: result.Tracks})
	if result.Close {
		// Закрытие из самого меню не снимает выделение
		c.Dispatch(CloseContextMenu{InsideTracks: true})
	}
}

func (c *Container) editors() []options.Editor {
	var selected []track.Model
	for _, i := range track.SelectedIndices(c.props.Tracks) {
		selected = append(selected, c.props.Tracks[i])
	}
	if c.registry == nil || len(selected) == 0 {
		return nil
	}
	return c.registry.Editors(selected)
}

// dataWidth ширина области данных: общая ширина без подписей и разделителя
func (c *Container) dataWidth() int {
	w := c.width - c.labelWidth - 1
	if w < 0 {
		return 0
	}
	return w
}

// layout раскладывает треки по строкам.
// Трек неизвестного типа получает нулевую высоту и не отображается.
func (c *Container) layout() gesture.Frame {
	frame := gesture.Frame{Width: c.dataWidth(), Region: c.props.Region}
	top := 0
	for _, m := range c.props.Tracks {
		height := 0
		if _, err := c.lookup(m); err == nil {
			height = options.HeightOf(m)
		}
		frame.Lanes = append(frame.Lanes, gesture.Lane{Top: top, Height: height})
		top += height
	}
	return frame
}

func (c *Container) lookup(m track.Model) (registry.Config, error) {
	if c.registry == nil {
		return registry.Config{}, registry.ErrUnknownType
	}
	cfg, err := c.registry.Lookup(m.Type)
	if err != nil {
		key := m.ID + "|" + strings.ToLower(m.Type)
		if !c.reported[key] {
			c.reported[key] = true
			log.Printf("трек %s пропущен: %v", m.Label(), err)
			if c.OnReport != nil {
				c.OnReport(err)
			}
		}
	}
	return cfg, err
}
