// Package app содержит основную логику TUI приложения
package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/prefs"
	"github.com/hazadus/go-gbrowse/internal/registry"
	"github.com/hazadus/go-gbrowse/internal/session"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/tui/container"
	"github.com/hazadus/go-gbrowse/internal/tui/editor"
	"github.com/hazadus/go-gbrowse/internal/tui/gesture"
	"github.com/hazadus/go-gbrowse/internal/tui/theme"
	"github.com/hazadus/go-gbrowse/internal/tui/tracklist"
	"github.com/hazadus/go-gbrowse/internal/utils"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// BrowserScreen - экран треков
	BrowserScreen ScreenType = iota
	// TracklistScreen - экран списка треков
	TracklistScreen
	// EditorScreen - экран редактирования
	EditorScreen
)

// headerHeight строки заголовка над треками: сводка и линейка
const headerHeight = 2

// Шаги навигации с клавиатуры
const (
	panFraction = 4 // Сдвиг на четверть региона
	zoomFactor  = 3
	minWidth    = 10 // Минимальная ширина региона в парах оснований
)

// Config параметры главной модели
type Config struct {
	Session    *session.Session
	Genome     *genome.Genome
	Registry   *registry.Registry
	Modifier   container.Modifier
	LabelWidth int
	Threshold  int
	PrefsPath  string
	SaveFunc   func() error // Функция для сохранения сессии
}

// MainModel представляет главную модель TUI.
// Модель владеет списком треков и регионом, контейнер только предлагает изменения.
type MainModel struct {
	session  *session.Session
	genome   *genome.Genome
	registry *registry.Registry
	saveFunc func() error

	tracks []track.Model
	region genome.Region
	data   map[string]container.TrackData

	container      *container.Container
	fetcher        *fetcher
	currentScreen  ScreenType
	tracklistModel *tracklist.Model
	editorModel    *editor.Model

	gotoInput textinput.Model
	going     bool
	keys      keyMap
	help      help.Model
	loading   progress.Model

	theme     theme.Theme
	styles    theme.Styles
	prefsPath string

	status  string
	width   int
	height  int
	pending []tea.Cmd // Команды, появившиеся в обратных вызовах контейнера
}

// NewMainModel создает новую главную модель
func NewMainModel(cfg Config) *MainModel {
	g := cfg.Genome
	if g == nil {
		g, _ = genome.Lookup(session.DefaultGenome)
	}

	gotoInput := textinput.New()
	gotoInput.Placeholder = "chr1:1,000,000-2,000,000"
	gotoInput.Prompt = "Перейти: "
	gotoInput.CharLimit = 64

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 20

	current := theme.ByName(prefs.Load(cfg.PrefsPath).Theme)

	m := &MainModel{
		session:   cfg.Session,
		genome:    g,
		registry:  cfg.Registry,
		saveFunc:  cfg.SaveFunc,
		tracks:    append([]track.Model(nil), cfg.Session.Tracks...),
		region:    cfg.Session.ViewRegion(g),
		data:      make(map[string]container.TrackData),
		fetcher:   newFetcher(cfg.Registry),
		gotoInput: gotoInput,
		keys:      defaultKeyMap(),
		help:      help.New(),
		loading:   bar,
		theme:     current,
		styles:    current.Styles(),
		prefsPath: cfg.PrefsPath,
	}

	m.container = container.New(container.Config{
		Registry:   cfg.Registry,
		Modifier:   cfg.Modifier,
		LabelWidth: cfg.LabelWidth,
		Threshold:  cfg.Threshold,
	})
	m.container.OnTracksChanged = m.setTracks
	m.container.OnNewRegion = m.setRegion
	m.container.OnReport = func(err error) {
		m.status = err.Error()
	}
	m.container.SetTop(headerHeight)
	m.container.SetStyles(m.styles)
	m.container.SetData(m.data)
	m.container.SetProps(m.tracks, m.region, m.width)

	m.tracklistModel = tracklist.NewModel(m.tracks)

	return m
}

// Init запускает загрузку данных всех треков
func (m *MainModel) Init() tea.Cmd {
	for _, t := range refetchPlan(m.registry, nil, m.tracks, m.region, m.region) {
		m.startFetch(t)
	}
	return m.flush()
}

// Tracks возвращает текущий список треков
func (m *MainModel) Tracks() []track.Model {
	return m.tracks
}

// Region возвращает текущий регион
func (m *MainModel) Region() genome.Region {
	return m.region
}

// startFetch помечает трек загружающимся и откладывает команду загрузки
func (m *MainModel) startFetch(t track.Model) {
	state := m.data[t.ID]
	state.Loading = true
	m.data[t.ID] = state
	m.pending = append(m.pending, m.fetcher.fetch(t, m.region))
}

// flush возвращает накопленные команды одной пачкой
func (m *MainModel) flush(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.pending...)
	m.pending = nil
	return tea.Batch(cmds...)
}

// setTracks принимает новый список треков от контейнера или экранов
func (m *MainModel) setTracks(tracks []track.Model) {
	plan := refetchPlan(m.registry, m.tracks, tracks, m.region, m.region)
	for _, id := range removedIDs(m.tracks, tracks) {
		m.fetcher.forget(id)
		delete(m.data, id)
	}

	m.tracks = tracks
	m.container.SetProps(m.tracks, m.region, m.width)
	m.tracklistModel.SetTracks(m.tracks)
	m.session.SetTracks(m.tracks)
	m.save()

	for _, t := range plan {
		m.startFetch(t)
	}
}

// setRegion принимает новые границы региона на текущей хромосоме
func (m *MainModel) setRegion(start, end int64) {
	m.goTo(m.region.WithBounds(start, end))
}

// goTo переходит к региону, удерживая его в границах хромосомы
func (m *MainModel) goTo(r genome.Region) {
	next := m.genome.Clamp(r)
	if next.Width() < minWidth {
		center := next.Center()
		next = m.genome.Clamp(next.WithBounds(center-minWidth/2, center+minWidth/2))
	}
	if next.Equal(m.region) {
		return
	}

	plan := refetchPlan(m.registry, m.tracks, m.tracks, m.region, next)
	m.region = next
	m.container.SetProps(m.tracks, m.region, m.width)
	m.session.SetRegion(m.region)
	m.save()

	for _, t := range plan {
		m.startFetch(t)
	}
}

func (m *MainModel) save() {
	if m.saveFunc == nil {
		return
	}
	if err := m.saveFunc(); err != nil {
		log.Printf("ошибка сохранения сессии: %v", err)
		m.status = fmt.Sprintf("Ошибка сохранения: %v", err)
	}
}

func (m *MainModel) pan(direction int64) {
	shift := direction * m.region.Width() / panFraction
	m.goTo(m.region.WithBounds(m.region.Start+shift, m.region.End+shift))
}

func (m *MainModel) zoom(in bool) {
	center := m.region.Center()
	width := m.region.Width() * zoomFactor
	if in {
		width = m.region.Width() / zoomFactor
	}
	m.goTo(m.region.WithBounds(center-width/2, center-width/2+width))
}

func (m *MainModel) cycleTheme() {
	m.theme = theme.Next(m.theme.Name)
	m.styles = m.theme.Styles()
	m.container.SetStyles(m.styles)
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		log.Printf("ошибка сохранения настроек: %v", err)
	}
	m.status = "Тема: " + m.theme.Name
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.fetcher.stop()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.container.SetProps(m.tracks, m.region, m.width)
		var tracklistCmd, editorCmd tea.Cmd
		m.tracklistModel, tracklistCmd = m.tracklistModel.Update(msg)
		if m.editorModel != nil {
			m.editorModel, editorCmd = m.editorModel.Update(msg)
		}
		return m, tea.Batch(tracklistCmd, editorCmd)

	case tea.BlurMsg:
		m.container.Blur()
		return m, nil

	case trackDataMsg:
		if !m.fetcher.accept(msg) {
			return m, nil
		}
		m.data[msg.ID] = container.TrackData{Data: msg.Data, Err: msg.Err}
		m.container.SetData(m.data)
		return m, nil

	case tracklist.TrackChosenMsg:
		m.currentScreen = BrowserScreen
		if msg.Index >= 0 && msg.Index < len(m.tracks) {
			m.setTracks(track.SelectOnly(m.tracks, msg.Index))
		}
		return m, m.flush()

	case tracklist.TrackMoveMsg:
		m.container.Dispatch(container.RequestReorder{From: msg.From, To: msg.To})
		return m, m.flush()

	case tracklist.TrackEditMsg:
		return m, m.openEditor(msg.Index)

	case tracklist.GoBackMsg:
		m.currentScreen = BrowserScreen
		return m, nil

	case editor.GoBackMsg:
		m.currentScreen = BrowserScreen
		m.editorModel = nil
		return m, nil

	case editor.TrackSavedMsg:
		m.currentScreen = BrowserScreen
		m.editorModel = nil
		if msg.Index >= 0 && msg.Index < len(m.tracks) && m.tracks[msg.Index].ID == msg.Track.ID {
			m.setTracks(track.Replace(m.tracks, msg.Index, msg.Track))
			m.status = "Трек сохранен: " + msg.Track.Label()
		}
		return m, m.flush()
	}

	switch m.currentScreen {
	case TracklistScreen:
		var cmd tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		return m, cmd

	case EditorScreen:
		if m.editorModel != nil {
			var cmd tea.Cmd
			m.editorModel, cmd = m.editorModel.Update(msg)
			return m, cmd
		}
	}

	return m.updateBrowser(msg)
}

// updateBrowser обрабатывает сообщения экрана треков
func (m *MainModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if m.going {
			return m, nil
		}
		cmd := m.container.HandleMouse(msg)
		return m, m.flush(cmd)

	case tea.KeyMsg:
		if m.going {
			return m, m.updateGoto(msg)
		}

		// Открытое меню получает клавиши первым
		if handled, cmd := m.container.HandleKey(msg); handled {
			return m, m.flush(cmd)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.fetcher.stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Drag):
			m.container.Dispatch(container.SelectTool{Tool: gesture.ToolDrag})
		case key.Matches(msg, m.keys.Zoom):
			m.container.Dispatch(container.SelectTool{Tool: gesture.ToolZoom})
		case key.Matches(msg, m.keys.Reorder):
			m.container.Dispatch(container.SelectTool{Tool: gesture.ToolReorder})
		case key.Matches(msg, m.keys.PanLeft):
			m.pan(-1)
		case key.Matches(msg, m.keys.PanRight):
			m.pan(1)
		case key.Matches(msg, m.keys.ZoomIn):
			m.zoom(true)
		case key.Matches(msg, m.keys.ZoomOut):
			m.zoom(false)
		case key.Matches(msg, m.keys.Goto):
			m.going = true
			m.gotoInput.SetValue("")
			return m, m.gotoInput.Focus()
		case key.Matches(msg, m.keys.Theme):
			m.cycleTheme()
		case key.Matches(msg, m.keys.TrackList):
			m.currentScreen = TracklistScreen
			m.tracklistModel.SetTracks(m.tracks)
		case key.Matches(msg, m.keys.Edit):
			selected := track.SelectedIndices(m.tracks)
			if len(selected) == 0 {
				m.status = "Выделите трек для редактирования"
				return m, nil
			}
			return m, m.openEditor(selected[0])
		case key.Matches(msg, m.keys.Escape):
			m.status = ""
		}
		return m, m.flush()
	}
	return m, nil
}

// updateGoto обрабатывает ввод региона
func (m *MainModel) updateGoto(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.going = false
		m.gotoInput.Blur()
		return nil
	case "enter":
		m.going = false
		m.gotoInput.Blur()
		r, err := genome.Parse(m.gotoInput.Value(), m.genome)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		if _, ok := m.genome.Chromosome(r.Chrom); !ok {
			m.status = fmt.Sprintf("Хромосома %s отсутствует в сборке %s", r.Chrom, m.genome.Name)
			return nil
		}
		m.status = ""
		m.goTo(r)
		return m.flush()
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return cmd
}

func (m *MainModel) openEditor(index int) tea.Cmd {
	if index < 0 || index >= len(m.tracks) {
		return nil
	}
	m.currentScreen = EditorScreen
	m.editorModel = editor.NewModel(index, m.tracks[index], m.trackTypes())
	_, cmd := m.editorModel.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return tea.Batch(m.editorModel.Init(), cmd)
}

// trackTypes возвращает имена зарегистрированных типов треков
func (m *MainModel) trackTypes() []string {
	configs := m.registry.Types()
	types := make([]string, len(configs))
	for i, c := range configs {
		types[i] = c.Type
	}
	return types
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case TracklistScreen:
		return m.tracklistModel.View()

	case EditorScreen:
		if m.editorModel != nil {
			return m.editorModel.View()
		}
		return "Ошибка: модель редактора не инициализирована"
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.ruler())
	b.WriteString("\n")
	b.WriteString(m.container.View())
	b.WriteString("\n\n")

	switch {
	case m.going:
		b.WriteString(m.gotoInput.View())
	case m.status != "":
		b.WriteString(m.styles.Danger.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

// header строка со сборкой, регионом, инструментом и ходом загрузки
func (m *MainModel) header() string {
	parts := []string{
		"gbrowse",
		m.genome.Name,
		fmt.Sprintf("%s:%s-%s", m.region.Chrom, utils.FormatPosition(m.region.Start+1), utils.FormatPosition(m.region.End)),
		utils.FormatBases(m.region.Width()),
		"Инструмент: " + m.container.Tool().String(),
	}
	line := m.styles.Header.Render(strings.Join(parts, " │ "))

	if loading, total := m.loadingCount(); loading > 0 {
		done := float64(total-loading) / float64(total)
		line += "  " + m.loading.ViewAs(done) + m.styles.Muted.Render(fmt.Sprintf(" %d/%d", total-loading, total))
	}
	return line
}

func (m *MainModel) loadingCount() (loading, total int) {
	for _, t := range m.tracks {
		state, ok := m.data[t.ID]
		if !ok {
			continue
		}
		total++
		if state.Loading {
			loading++
		}
	}
	return loading, total
}

// ruler строка с координатами краев и середины области данных
func (m *MainModel) ruler() string {
	frame := m.container.Frame()
	if frame.Width <= 0 {
		return ""
	}
	left := utils.FormatPosition(m.region.Start + 1)
	mid := utils.FormatPosition(m.region.Center())
	right := utils.FormatPosition(m.region.End)

	line := []rune(strings.Repeat("─", frame.Width))
	place := func(x int, s string) {
		runes := []rune(s)
		if x+len(runes) > len(line) {
			x = len(line) - len(runes)
		}
		if x < 0 {
			return
		}
		copy(line[x:], runes)
	}
	place(0, left)
	place(frame.Width/2-len(mid)/2, mid)
	place(frame.Width-len(right), right)

	labelWidth := m.width - frame.Width - 1
	if labelWidth < 0 {
		labelWidth = 0
	}
	return m.styles.Muted.Render(strings.Repeat(" ", labelWidth) + "┬" + string(line))
}
