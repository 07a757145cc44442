package container

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-gbrowse/internal/tui/gesture"
	"github.com/hazadus/go-gbrowse/internal/tui/menu"
)

// Modifier клавиша-модификатор для множественного выделения
type Modifier string

const (
	ModifierCtrl  Modifier = "ctrl"
	ModifierAlt   Modifier = "alt"
	ModifierShift Modifier = "shift"
)

// ParseModifier разбирает имя модификатора. Пустая строка дает ctrl.
func ParseModifier(s string) (Modifier, error) {
	switch m := Modifier(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModifierCtrl, nil
	case ModifierCtrl, ModifierAlt, ModifierShift:
		return m, nil
	default:
		return "", fmt.Errorf("неизвестный модификатор %q: ожидался ctrl, alt или shift", s)
	}
}

// Held сообщает, удерживался ли модификатор во время события
func (m Modifier) Held(msg tea.MouseMsg) bool {
	switch m {
	case ModifierAlt:
		return msg.Alt
	case ModifierShift:
		return msg.Shift
	default:
		return msg.Ctrl
	}
}

// tracksHeight высота области треков в строках
func (c *Container) tracksHeight() int {
	return c.props.Frame.Height()
}

// onTracks сообщает, что экранная точка над треками, включая колонку подписей
func (c *Container) onTracks(x, y int) bool {
	row := y - c.top
	return x >= 0 && x < c.width && row >= 0 && row < c.tracksHeight()
}

// trackAt возвращает индекс трека в экранной строке y или -1
func (c *Container) trackAt(x, y int) int {
	if !c.onTracks(x, y) {
		return -1
	}
	return c.props.Frame.TrackAt(y - c.top)
}

// menuRect возвращает положение панели меню на экране
func (c *Container) menuRect() (left, top, width, height int) {
	view := c.menuView()
	width, height = lipgloss.Width(view), lipgloss.Height(view)
	left = 0
	if c.state.Menu != nil {
		left = c.state.Menu.X
	}
	if left+width > c.width {
		left = c.width - width
	}
	if left < 0 {
		left = 0
	}
	return left, c.top + c.tracksHeight() + 1, width, height
}

func (c *Container) pointer(msg tea.MouseMsg, action gesture.Action) gesture.Pointer {
	return gesture.Pointer{
		X:        msg.X - c.labelWidth - 1,
		Y:        msg.Y - c.top,
		Action:   action,
		Primary:  msg.Button == tea.MouseButtonLeft,
		Modifier: c.modifier.Held(msg),
	}
}

// HandleMouse переводит событие мыши в действия контейнера.
// Возвращает команду, если ее запустило меню.
func (c *Container) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	modifier := c.modifier.Held(msg)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return c.leftPress(msg, modifier)
		case tea.MouseButtonRight:
			if i := c.trackAt(msg.X, msg.Y); i >= 0 {
				c.Dispatch(OpenContextMenu{Index: i, X: msg.X, Y: msg.Y, Modifier: modifier})
			} else if c.state.Menu != nil {
				c.Dispatch(CloseContextMenu{InsideTracks: false, Modifier: modifier})
			}
		}

	case tea.MouseActionMotion:
		// Движение без кнопки: отпускание произошло за пределами терминала
		if msg.Button == tea.MouseButtonNone {
			c.Blur()
			return nil
		}
		c.Dispatch(PointerEvent{Pointer: c.pointer(msg, gesture.Motion)})

	case tea.MouseActionRelease:
		c.Dispatch(PointerEvent{Pointer: c.pointer(msg, gesture.Release)})
	}
	return nil
}

// Blur отменяет незавершенный жест
func (c *Container) Blur() {
	if c.state.Gesture != nil && c.state.Gesture.Active() {
		c.Dispatch(PointerEvent{Pointer: gesture.Pointer{Action: gesture.Leave}})
	}
}

// leftPress сначала закрывает меню, затем обрабатывает щелчок по треку
// и только потом начинает жест
func (c *Container) leftPress(msg tea.MouseMsg, modifier bool) tea.Cmd {
	if c.state.Menu != nil {
		left, top, width, height := c.menuRect()
		if msg.X >= left && msg.X < left+width && msg.Y >= top && msg.Y < top+height {
			item := msg.Y - top - menu.ItemsTop
			result, cmd := c.menu.Click(item, c.editors(), c.props.Tracks)
			c.applyMenu(result)
			return cmd
		}
		c.Dispatch(CloseContextMenu{InsideTracks: c.onTracks(msg.X, msg.Y), Modifier: modifier})
	}

	if i := c.trackAt(msg.X, msg.Y); i >= 0 {
		c.Dispatch(TrackClicked{Index: i, Primary: true, Modifier: modifier})
	}
	c.Dispatch(PointerEvent{Pointer: c.pointer(msg, gesture.Press)})
	return nil
}
