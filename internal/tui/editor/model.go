// Package editor содержит экран редактирования трека: название, тип и источник данных
package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-gbrowse/internal/track"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(12)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
)

// TrackSavedMsg отправляется когда изменения трека прошли проверку
type TrackSavedMsg struct {
	Index int
	Track track.Model
}

// GoBackMsg отправляется при отмене редактирования
type GoBackMsg struct{}

// field элемент формы, на котором может стоять фокус
type field int

const (
	nameField field = iota
	typeField
	originField
	saveButton
	numFields
)

// Model представляет модель экрана редактирования трека
type Model struct {
	index    int
	original track.Model
	name     textinput.Model
	origin   textinput.Model
	types    []string
	typeIdx  int
	focus    field
	err      string
}

// NewModel создает редактор трека с позицией index в списке.
// types задает типы, между которыми можно переключаться; текущий тип трека сохраняется всегда.
func NewModel(index int, trackToEdit track.Model, types []string) *Model {
	name := textinput.New()
	name.Placeholder = "Название трека"
	name.SetValue(trackToEdit.Name)

	origin := textinput.New()
	origin.Placeholder = "Путь к файлу, https://... или s3://bucket/key"
	origin.SetValue(trackToEdit.Origin())

	m := &Model{
		index:    index,
		original: trackToEdit,
		name:     name,
		origin:   origin,
	}

	current := strings.ToLower(trackToEdit.Type)
	for _, t := range types {
		if strings.ToLower(t) == current {
			m.typeIdx = len(m.types)
		}
		m.types = append(m.types, t)
	}
	if len(m.types) == 0 || strings.ToLower(m.types[m.typeIdx]) != current {
		m.typeIdx = len(m.types)
		m.types = append(m.types, trackToEdit.Type)
	}

	m.setFocus(nameField)
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Err возвращает ошибку проверки последнего сохранения
func (m *Model) Err() string {
	return m.err
}

// Type возвращает выбранный тип трека
func (m *Model) Type() string {
	return m.types[m.typeIdx]
}

// setFocus переводит фокус на поле f и возвращает команду мигания курсора
func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = (f + numFields) % numFields

	var cmd tea.Cmd
	for _, entry := range []struct {
		input *textinput.Model
		field field
	}{{&m.name, nameField}, {&m.origin, originField}} {
		if entry.field == m.focus {
			cmd = entry.input.Focus()
			entry.input.PromptStyle = focusedStyle
			entry.input.TextStyle = focusedStyle
		} else {
			entry.input.Blur()
			entry.input.PromptStyle = blurredStyle
			entry.input.TextStyle = blurredStyle
		}
	}
	return cmd
}

// cycleType переключает тип трека на delta позиций
func (m *Model) cycleType(delta int) {
	n := len(m.types)
	m.typeIdx = ((m.typeIdx+delta)%n + n) % n
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case "ctrl+s":
			return m, m.saveTrack()

		case "enter":
			if m.focus == saveButton {
				return m, m.saveTrack()
			}
			return m, m.setFocus(m.focus + 1)

		case "tab", "down":
			return m, m.setFocus(m.focus + 1)

		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)

		case "left", "right", " ":
			if m.focus == typeField {
				if msg.String() == "left" {
					m.cycleType(-1)
				} else {
					m.cycleType(1)
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.name.Width = msg.Width - 20
		m.origin.Width = msg.Width - 20
		return m, nil
	}

	// Обновляем активное поле ввода
	var cmd tea.Cmd
	switch m.focus {
	case nameField:
		m.name, cmd = m.name.Update(msg)
	case originField:
		m.origin, cmd = m.origin.Update(msg)
	}
	return m, cmd
}

// saveTrack проверяет поля и отправляет измененный трек.
// Проверка выполняется сразу, чтобы ошибка была видна в следующем кадре.
func (m *Model) saveTrack() tea.Cmd {
	updated := m.original.WithOrigin(strings.TrimSpace(m.origin.Value()))
	updated.Name = strings.TrimSpace(m.name.Value())
	updated.Type = m.Type()

	if err := updated.Validate(); err != nil {
		m.err = fmt.Sprintf("Ошибка: %v", err)
		return nil
	}

	m.err = ""
	index := m.index
	return func() tea.Msg {
		return TrackSavedMsg{Index: index, Track: updated}
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + " " + value
}

func (m *Model) typeView() string {
	value := fmt.Sprintf("‹ %s ›", m.Type())
	if m.focus == typeField {
		return focusedStyle.Render(value) + "  " + hintStyle.Render("←/→: сменить тип")
	}
	return blurredStyle.Render(value)
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Редактирование трека %s", m.original.Label())))
	b.WriteString("\n\n")

	rows := []string{
		row("Название:", m.name.View()),
		row("Тип:", m.typeView()),
		row("Источник:", m.origin.View()),
	}
	b.WriteString(strings.Join(rows, "\n\n"))
	b.WriteString("\n\n")

	button := "[ Сохранить ]"
	if m.focus == saveButton {
		button = focusedStyle.Render(button)
	} else {
		button = blurredStyle.Render(button)
	}
	b.WriteString(button)
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("Tab/↓: следующее поле • Shift+Tab/↑: предыдущее • Ctrl+S: сохранить • Esc: отмена"))

	return b.String()
}
