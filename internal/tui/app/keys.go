package app

import "github.com/charmbracelet/bubbles/key"

// keyMap описывает клавиши экрана браузера
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Drag      key.Binding
	Zoom      key.Binding
	Reorder   key.Binding
	PanLeft   key.Binding
	PanRight  key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Goto      key.Binding
	Theme     key.Binding
	TrackList key.Binding
	Edit      key.Binding
	Escape    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "выход"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "справка"),
		),
		Drag: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "перемещение"),
		),
		Zoom: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "увеличение"),
		),
		Reorder: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "порядок"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "влево"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "вправо"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "приблизить"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "отдалить"),
		),
		Goto: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "перейти"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "тема"),
		),
		TrackList: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "список треков"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "редактировать"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "закрыть меню"),
		),
	}
}

// ShortHelp возвращает клавиши для краткой справки
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drag, k.Zoom, k.Reorder, k.Goto, k.Help, k.Quit}
}

// FullHelp возвращает клавиши для полной справки
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Drag, k.Zoom, k.Reorder},
		{k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.Goto},
		{k.TrackList, k.Edit, k.Theme, k.Escape},
		{k.Help, k.Quit},
	}
}
