package container

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/tui/gesture"
	"github.com/hazadus/go-gbrowse/internal/utils"
	"github.com/hazadus/go-gbrowse/internal/visual"
)

// View отображает треки через активный подконтейнер и меню под ними
func (c *Container) View() string {
	frame := c.props.Frame
	var elements []gesture.Element
	for i, m := range c.props.Tracks {
		lane := frame.Lanes[i]
		if lane.Height == 0 {
			continue
		}
		elements = append(elements, gesture.Element{Index: i, Lines: c.render(m, lane.Height)})
	}
	elements = c.state.Gesture.Decorate(elements, frame)

	var rows []string
	for _, e := range elements {
		rows = append(rows, c.renderElement(e)...)
	}
	if len(rows) == 0 {
		rows = append(rows, c.styles.Muted.Render("Нет треков. Добавьте трек командой gbrowse add."))
	}

	view := strings.Join(rows, "\n")
	if c.state.Menu != nil {
		left, _, _, _ := c.menuRect()
		panel := lipgloss.NewStyle().MarginLeft(left).Render(c.menuView())
		view += "\n\n" + panel
	}
	return view
}

func (c *Container) menuView() string {
	return c.menu.View(c.editors(), c.props.Tracks, c.styles)
}

// render строит строки данных одного трека без стилей
func (c *Container) render(m track.Model, height int) []string {
	cfg, err := c.lookup(m)
	frame := visual.Frame{Width: c.dataWidth(), Height: height, Region: c.props.Region}
	if err != nil {
		return visual.Placeholder(frame, "")
	}

	state, ok := c.data[m.ID]
	switch {
	case !ok || state.Loading:
		return visual.Placeholder(frame, "загрузка…")
	case state.Err != nil:
		return visual.Placeholder(frame, fmt.Sprintf("ошибка: %v", state.Err))
	case state.Data == nil || state.Data.Len() == 0:
		return visual.Placeholder(frame, "нет данных в регионе")
	}
	return cfg.Render(frame, m, state.Data)
}

// renderElement добавляет к строкам трека подпись, выделение и состояние жеста
func (c *Container) renderElement(e gesture.Element) []string {
	m := c.props.Tracks[e.Index]
	lines := visual.Shift(e.Lines, e.Offset)
	dataStyle := c.styles.Track(m.Options.String(options.KeyColor, options.Color.Default))

	labelStyle := c.styles.Label
	if m.IsSelected {
		labelStyle = c.styles.Selected
	}

	out := make([]string, len(lines))
	for row, line := range lines {
		label := ""
		if row == 0 {
			label = m.Label()
			if e.Lifted {
				label = "≡ " + label
			}
		}
		label = utils.FitWidth(label, c.labelWidth)

		sep := "│"
		switch {
		case e.InsertAbove && row == 0:
			sep = c.styles.Indicator.Render("▲")
		case e.InsertBelow && row == len(lines)-1:
			sep = c.styles.Indicator.Render("▼")
		default:
			sep = c.styles.Muted.Render(sep)
		}

		out[row] = labelStyle.Render(label) + sep + c.renderData(line, e, dataStyle)
	}
	return out
}

// renderData раскрашивает строку данных и подсвечивает полосу выделения
func (c *Container) renderData(line string, e gesture.Element, style lipgloss.Style) string {
	if e.BandTo <= e.BandFrom {
		return style.Render(line)
	}
	width := ansi.StringWidth(line)
	from, to := clamp(e.BandFrom, width), clamp(e.BandTo, width)
	return style.Render(ansi.Cut(line, 0, from)) +
		c.styles.Band.Inherit(style).Render(ansi.Cut(line, from, to)) +
		style.Render(ansi.Cut(line, to, width))
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}
