// Package container управляет набором треков: инструментами, выделением,
// контекстным меню и жестами мыши.
//
// Вся логика переходов собрана в чистой функции Reduce. Container лишь хранит
// состояние, вызывает Reduce и передает результаты наверх через обратные вызовы.
package container

import (
	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/tui/gesture"
)

// MenuEvent событие, открывшее контекстное меню
type MenuEvent struct {
	X     int
	Y     int
	Track int
}

// State внутреннее состояние контейнера. Наверх не передается.
type State struct {
	Tool    gesture.Tool
	Menu    *MenuEvent
	Gesture gesture.SubContainer
}

// NewState возвращает начальное состояние: инструмент перемещения, меню закрыто
func NewState(threshold int) State {
	return State{Tool: gesture.ToolDrag, Gesture: gesture.ForTool(gesture.ToolDrag, threshold)}
}

// Props данные, которыми владеет родитель
type Props struct {
	Tracks    []track.Model
	Region    genome.Region
	Frame     gesture.Frame
	Threshold int
}

// Action действие пользователя над контейнером
type Action interface {
	isAction()
}

// SelectTool выбирает инструмент
type SelectTool struct {
	Tool gesture.Tool
}

// TrackClicked щелчок по треку
type TrackClicked struct {
	Index    int
	Primary  bool
	Modifier bool
}

// OpenContextMenu запрос контекстного меню над треком
type OpenContextMenu struct {
	Index    int
	X        int
	Y        int
	Primary  bool
	Modifier bool
}

// CloseContextMenu закрытие меню. InsideTracks сообщает, что взаимодействие
// началось над треками.
type CloseContextMenu struct {
	InsideTracks bool
	Modifier     bool
}

// RequestReorder перенос трека с позиции From на позицию To
type RequestReorder struct {
	From int
	To   int
}

// PointerEvent событие указателя для активного инструмента
type PointerEvent struct {
	Pointer gesture.Pointer
}

func (SelectTool) isAction()       {}
func (TrackClicked) isAction()     {}
func (OpenContextMenu) isAction()  {}
func (CloseContextMenu) isAction() {}
func (RequestReorder) isAction()   {}
func (PointerEvent) isAction()     {}

// RegionChange новые границы региона
type RegionChange struct {
	Start int64
	End   int64
}

// Effects результаты действия, которые нужно передать родителю
type Effects struct {
	Tracks []track.Model // Новый список треков, nil если не изменился
	Region *RegionChange
}

// Empty сообщает, что действие ничего не меняет у родителя
func (e Effects) Empty() bool {
	return e.Tracks == nil && e.Region == nil
}

// Reduce вычисляет новое состояние и результаты действия
func Reduce(s State, p Props, a Action) (State, Effects) {
	if s.Gesture == nil {
		s.Gesture = gesture.ForTool(s.Tool, p.Threshold)
	}

	switch a := a.(type) {
	case SelectTool:
		// Незавершенный жест прежнего инструмента отбрасывается
		s.Tool = a.Tool
		s.Gesture = gesture.ForTool(a.Tool, p.Threshold)
		return s, Effects{}

	case TrackClicked:
		return s, trackClicked(p, a)

	case OpenContextMenu:
		if a.Primary {
			return s, trackClicked(p, TrackClicked{Index: a.Index, Primary: true, Modifier: a.Modifier})
		}
		if a.Modifier || !inRange(p.Tracks, a.Index) {
			return s, Effects{}
		}
		s.Menu = &MenuEvent{X: a.X, Y: a.Y, Track: a.Index}
		if p.Tracks[a.Index].IsSelected {
			return s, Effects{}
		}
		return s, Effects{Tracks: track.SelectOnly(p.Tracks, a.Index)}

	case CloseContextMenu:
		if a.InsideTracks && a.Modifier {
			// Продолжается множественное выделение
			return s, Effects{}
		}
		s.Menu = nil
		if !a.InsideTracks && !a.Modifier && len(track.SelectedIndices(p.Tracks)) > 0 {
			return s, Effects{Tracks: track.DeselectAll(p.Tracks)}
		}
		return s, Effects{}

	case RequestReorder:
		return s, reorder(p, a.From, a.To)

	case PointerEvent:
		frame := p.Frame
		frame.Region = p.Region
		next, eff := s.Gesture.Update(a.Pointer, frame)
		s.Gesture = next
		switch eff.Kind {
		case gesture.NewRegion:
			return s, Effects{Region: &RegionChange{Start: eff.Start, End: eff.End}}
		case gesture.TrackMoved:
			return s, reorder(p, eff.From, eff.To)
		}
		return s, Effects{}
	}
	return s, Effects{}
}

func trackClicked(p Props, a TrackClicked) Effects {
	if !a.Primary || !a.Modifier || !inRange(p.Tracks, a.Index) {
		return Effects{}
	}
	return Effects{Tracks: track.ToggleSelected(p.Tracks, a.Index)}
}

func reorder(p Props, from, to int) Effects {
	if from == to || !inRange(p.Tracks, from) || !inRange(p.Tracks, to) {
		return Effects{}
	}
	return Effects{Tracks: track.Move(p.Tracks, from, to)}
}

func inRange(tracks []track.Model, i int) bool {
	return i >= 0 && i < len(tracks)
}
