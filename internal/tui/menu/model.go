// Package menu содержит контекстное меню параметров выделенных треков
package menu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/tui/theme"
)

// ItemsTop строка первого пункта внутри панели: рамка и заголовок
const ItemsTop = 2

const removeLabel = "Удалить трек"

// Result результат работы с меню
type Result struct {
	Tracks []track.Model // Новый список треков, nil если не изменился
	Close  bool
}

// Model состояние контекстного меню.
// Пункты не хранятся: они вычисляются из выделенных треков при каждом вызове.
type Model struct {
	focus   int
	editing bool
	input   textinput.Model
}

// New создает меню
func New() *Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 24
	ti.Prompt = "> "
	return &Model{input: ti}
}

// Editing сообщает, идет ли ввод текста
func (m *Model) Editing() bool {
	return m.editing
}

// Focus возвращает индекс пункта под курсором
func (m *Model) Focus() int {
	return m.focus
}

func (m *Model) clampFocus(editors []options.Editor) {
	count := len(editors) + 1
	if m.focus < 0 {
		m.focus = 0
	}
	if m.focus >= count {
		m.focus = count - 1
	}
}

// Update обрабатывает нажатие клавиши
func (m *Model) Update(msg tea.KeyMsg, editors []options.Editor, tracks []track.Model) (Result, tea.Cmd) {
	selected := track.SelectedIndices(tracks)
	if len(selected) == 0 {
		return Result{Close: true}, nil
	}
	m.clampFocus(editors)

	if m.editing {
		switch msg.String() {
		case "enter":
			m.editing = false
			m.input.Blur()
			e := editors[m.focus]
			value := strings.TrimSpace(m.input.Value())
			return Result{Tracks: options.Apply(tracks, selected, e.Key, e.Value(value))}, nil
		case "esc":
			m.editing = false
			m.input.Blur()
			return Result{}, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return Result{}, cmd
	}

	switch msg.String() {
	case "up", "k":
		m.focus--
		m.clampFocus(editors)
	case "down", "j":
		m.focus++
		m.clampFocus(editors)
	case "left", "h":
		return m.cycle(editors, tracks, selected, -1), nil
	case "right", "l", " ":
		return m.cycle(editors, tracks, selected, 1), nil
	case "enter":
		return m.activate(editors, tracks, selected)
	case "esc":
		return Result{Close: true}, nil
	}
	return Result{}, nil
}

// Click активирует пункт item, например по щелчку мыши
func (m *Model) Click(item int, editors []options.Editor, tracks []track.Model) (Result, tea.Cmd) {
	selected := track.SelectedIndices(tracks)
	if len(selected) == 0 {
		return Result{Close: true}, nil
	}
	if item < 0 || item > len(editors) {
		return Result{}, nil
	}
	m.focus = item
	if m.editing {
		m.editing = false
		m.input.Blur()
	}
	return m.activate(editors, tracks, selected)
}

func (m *Model) activate(editors []options.Editor, tracks []track.Model, selected []int) (Result, tea.Cmd) {
	if m.focus == len(editors) {
		return Result{Tracks: removeAll(tracks, selected), Close: true}, nil
	}
	e := editors[m.focus]
	if e.Kind == options.KindText {
		m.editing = true
		m.input.SetValue(e.Current(tracks[selected[0]]))
		m.input.CursorEnd()
		return Result{}, m.input.Focus()
	}
	return m.cycle(editors, tracks, selected, 1), nil
}

func (m *Model) cycle(editors []options.Editor, tracks []track.Model, selected []int, dir int) Result {
	if m.focus >= len(editors) {
		return Result{}
	}
	e := editors[m.focus]
	if e.Kind != options.KindCycle {
		return Result{}
	}
	cur := e.Current(tracks[selected[0]])
	next := e.Next(cur)
	if dir < 0 {
		next = e.Prev(cur)
	}
	return Result{Tracks: options.Apply(tracks, selected, e.Key, e.Value(next))}
}

func removeAll(tracks []track.Model, selected []int) []track.Model {
	indices := append([]int(nil), selected...)
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	result := tracks
	for _, i := range indices {
		result = track.Remove(result, i)
	}
	return result
}

// View отображает меню
func (m *Model) View(editors []options.Editor, tracks []track.Model, styles theme.Styles) string {
	selected := track.SelectedIndices(tracks)
	m.clampFocus(editors)

	var b strings.Builder
	title := fmt.Sprintf("Выделено треков: %d", len(selected))
	if len(selected) == 1 {
		title = tracks[selected[0]].Label()
	}
	b.WriteString(styles.Accent.Render(title))

	for i, e := range editors {
		b.WriteString("\n")
		line := fmt.Sprintf("%-14s %s", e.Label+":", currentValue(e, tracks, selected))
		if m.editing && i == m.focus {
			line = fmt.Sprintf("%-14s %s", e.Label+":", m.input.View())
		}
		b.WriteString(itemStyle(styles, i == m.focus).Render(line))
	}
	b.WriteString("\n")
	b.WriteString(itemStyle(styles, m.focus == len(editors)).Render(removeLabel))

	return styles.Menu.Render(b.String())
}

func itemStyle(styles theme.Styles, focused bool) lipgloss.Style {
	if focused {
		return styles.MenuFocus
	}
	return styles.MenuItem
}

// currentValue возвращает общее значение параметра или "*", если оно различается
func currentValue(e options.Editor, tracks []track.Model, selected []int) string {
	if len(selected) == 0 {
		return ""
	}
	first := e.Current(tracks[selected[0]])
	for _, i := range selected[1:] {
		if e.Current(tracks[i]) != first {
			return "*"
		}
	}
	if first == "" {
		return "-"
	}
	return first
}
