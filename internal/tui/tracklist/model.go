// Package tracklist содержит модель экрана списка треков для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

// TrackChosenMsg отправляется при выборе трека: он становится единственным выделенным
type TrackChosenMsg struct {
	Index int
}

// TrackEditMsg отправляется при выборе трека для редактирования
type TrackEditMsg struct {
	Index int
}

// TrackMoveMsg отправляется при переносе трека клавишами
type TrackMoveMsg struct {
	From int
	To   int
}

// GoBackMsg отправляется для возврата к браузеру
type GoBackMsg struct{}

// trackItem реализует интерфейс list.Item для трека
type trackItem struct {
	index int
	track track.Model
}

func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", i.track.Label(), i.track.Type, i.track.Origin())
}

// trackItemDelegate реализует отображение элементов списка
type trackItemDelegate struct{}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	// Номер | Подпись | Тип | Источник
	mark := " "
	if i.track.IsSelected {
		mark = "*"
	}
	str := fmt.Sprintf("%s%-3d %s %s %s",
		mark,
		i.index+1,
		utils.FitWidth(i.track.Label(), 20),
		utils.FitWidth(i.track.Type, 14),
		utils.TruncateString(i.track.Origin(), 50))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана списка треков
type Model struct {
	list list.Model
}

// NewModel создает новую модель списка треков
func NewModel(tracks []track.Model) *Model {
	l := list.New(items(tracks), trackItemDelegate{}, 0, 0)
	l.Title = "Треки"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{list: l}
}

func items(tracks []track.Model) []list.Item {
	result := make([]list.Item, len(tracks))
	for i, t := range tracks {
		result[i] = trackItem{index: i, track: t}
	}
	return result
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetTracks обновляет данные модели без пересоздания
func (m *Model) SetTracks(tracks []track.Model) {
	m.list.SetItems(items(tracks))
}

// Index возвращает позицию курсора
func (m *Model) Index() int {
	return m.list.Index()
}

func (m *Model) selected() (trackItem, bool) {
	item, ok := m.list.SelectedItem().(trackItem)
	return item, ok
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4) // Оставляем место для заголовка и справки
		return m, nil

	case tea.KeyMsg:
		// Во время фильтрации клавиши принадлежат полю ввода
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "esc", "q":
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, func() tea.Msg { return GoBackMsg{} }

		case "enter":
			if item, ok := m.selected(); ok {
				return m, func() tea.Msg { return TrackChosenMsg{Index: item.index} }
			}

		case "e":
			if item, ok := m.selected(); ok {
				return m, func() tea.Msg { return TrackEditMsg{Index: item.index} }
			}

		case "K", "shift+up":
			if item, ok := m.selected(); ok && item.index > 0 && m.list.FilterState() == list.Unfiltered {
				m.list.Select(item.index - 1)
				return m, func() tea.Msg { return TrackMoveMsg{From: item.index, To: item.index - 1} }
			}
			return m, nil

		case "J", "shift+down":
			if item, ok := m.selected(); ok && item.index < len(m.list.Items())-1 && m.list.FilterState() == list.Unfiltered {
				m.list.Select(item.index + 1)
				return m, func() tea.Msg { return TrackMoveMsg{From: item.index, To: item.index + 1} }
			}
			return m, nil
		}
	}

	// Обновляем список
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	view := m.list.View()
	extraHelp := helpStyle.Render("Enter: выделить • e: редактировать • K/J: переместить • Esc: назад")
	return view + "\n" + extraHelp
}
