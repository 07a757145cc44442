// Package theme содержит цветовые темы интерфейса
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme палитра интерфейса
type Theme struct {
	Name string

	Text      string
	Muted     string
	Accent    string
	Selection string // Фон выделенного трека
	Band      string // Фон полосы выделения при увеличении
	Danger    string
	Surface   string

	// Цвета треков по значению параметра color
	Tracks map[string]string
}

var themes = []Theme{
	{
		Name:      "Dracula",
		Text:      "#f8f8f2",
		Muted:     "#6272a4",
		Accent:    "#bd93f9",
		Selection: "#44475a",
		Band:      "#6272a4",
		Danger:    "#ff5555",
		Surface:   "#282a36",
		Tracks: map[string]string{
			"default": "#8be9fd",
			"red":     "#ff5555",
			"green":   "#50fa7b",
			"blue":    "#6272ff",
			"yellow":  "#f1fa8c",
			"magenta": "#ff79c6",
			"cyan":    "#8be9fd",
		},
	},
	{
		Name:      "Slate",
		Text:      "#d8dee9",
		Muted:     "#4c566a",
		Accent:    "#88c0d0",
		Selection: "#3b4252",
		Band:      "#434c5e",
		Danger:    "#bf616a",
		Surface:   "#2e3440",
		Tracks: map[string]string{
			"default": "#81a1c1",
			"red":     "#bf616a",
			"green":   "#a3be8c",
			"blue":    "#5e81ac",
			"yellow":  "#ebcb8b",
			"magenta": "#b48ead",
			"cyan":    "#88c0d0",
		},
	},
	{
		Name:      "Light",
		Text:      "#24292f",
		Muted:     "#8c959f",
		Accent:    "#0969da",
		Selection: "#ddf4ff",
		Band:      "#d0d7de",
		Danger:    "#cf222e",
		Surface:   "#ffffff",
		Tracks: map[string]string{
			"default": "#0550ae",
			"red":     "#cf222e",
			"green":   "#1a7f37",
			"blue":    "#0969da",
			"yellow":  "#9a6700",
			"magenta": "#8250df",
			"cyan":    "#1b7c83",
		},
	},
}

// ByName возвращает тему по имени или первую тему, если имя неизвестно
func ByName(name string) Theme {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return themes[0]
}

// Next возвращает тему, следующую за name
func Next(name string) Theme {
	for i, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// Styles готовые стили lipgloss для темы
type Styles struct {
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Danger    lipgloss.Style
	Label     lipgloss.Style
	Selected  lipgloss.Style
	Band      lipgloss.Style
	Indicator lipgloss.Style
	Menu      lipgloss.Style
	MenuItem  lipgloss.Style
	MenuFocus lipgloss.Style
	Header    lipgloss.Style
	Footer    lipgloss.Style

	theme Theme
}

// Styles строит стили для темы
func (t Theme) Styles() Styles {
	return Styles{
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color(t.Selection)).Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Band:      lipgloss.NewStyle().Background(lipgloss.Color(t.Band)),
		Indicator: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(0, 1),
		MenuItem:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MenuFocus: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Surface)).Background(lipgloss.Color(t.Accent)),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		theme:     t,
	}
}

// Track возвращает стиль данных трека по значению параметра color
func (s Styles) Track(color string) lipgloss.Style {
	c, ok := s.theme.Tracks[strings.ToLower(color)]
	if !ok {
		c = s.theme.Tracks["default"]
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}
