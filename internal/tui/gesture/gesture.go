// Package gesture переводит жесты мыши над треками в изменения региона и порядка треков.
//
// Каждый инструмент реализован отдельным подконтейнером с общим автоматом состояний:
// нажатие основной кнопки внутри поверхности начинает жест, отпускание завершает его,
// уход указателя с поверхности отменяет жест без результата.
package gesture

import (
	"github.com/hazadus/go-gbrowse/internal/genome"
)

// MinDragDistance минимальное смещение в колонках, после которого перетаскивание меняет регион
const MinDragDistance = 20

// Tool инструмент работы с треками
type Tool int

const (
	ToolDrag Tool = iota
	ToolZoom
	ToolReorder
)

// String возвращает название инструмента
func (t Tool) String() string {
	switch t {
	case ToolDrag:
		return "Перемещение"
	case ToolZoom:
		return "Увеличение"
	case ToolReorder:
		return "Порядок"
	default:
		return "?"
	}
}

// Action тип события указателя
type Action int

const (
	Press Action = iota
	Motion
	Release
	// Leave указатель покинул поверхность треков
	Leave
)

// Pointer событие указателя в координатах области данных треков
type Pointer struct {
	X        int
	Y        int
	Action   Action
	Primary  bool // Основная (левая) кнопка
	Modifier bool
}

// Lane вертикальное положение трека внутри поверхности
type Lane struct {
	Top    int
	Height int
}

// Frame геометрия поверхности треков
type Frame struct {
	Width  int
	Region genome.Region
	Lanes  []Lane
}

// Height возвращает общую высоту треков
func (f Frame) Height() int {
	if len(f.Lanes) == 0 {
		return 0
	}
	last := f.Lanes[len(f.Lanes)-1]
	return last.Top + last.Height
}

// Inside сообщает, находится ли точка над поверхностью треков
func (f Frame) Inside(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height()
}

// TrackAt возвращает индекс трека в строке y или -1
func (f Frame) TrackAt(y int) int {
	for i, lane := range f.Lanes {
		if y >= lane.Top && y < lane.Top+lane.Height {
			return i
		}
	}
	return -1
}

// Scale возвращает отображение региона на ширину поверхности
func (f Frame) Scale() genome.Scale {
	return genome.NewScale(f.Region, f.Width)
}

// EffectKind тип результата жеста
type EffectKind int

const (
	None EffectKind = iota
	NewRegion
	TrackMoved
)

// Effect результат завершенного жеста
type Effect struct {
	Kind  EffectKind
	Start int64
	End   int64
	From  int
	To    int
}

// Element отрисованный трек и визуальное состояние жеста над ним
type Element struct {
	Index       int
	Lines       []string
	Offset      int  // Сдвиг при перетаскивании
	BandFrom    int  // Выделение при увеличении: колонки [BandFrom, BandTo)
	BandTo      int
	Lifted      bool // Трек поднят для перестановки
	InsertAbove bool
	InsertBelow bool
}

// SubContainer стратегия отрисовки треков и обработки жестов для одного инструмента
type SubContainer interface {
	Update(p Pointer, f Frame) (SubContainer, Effect)
	Cancel() SubContainer
	Active() bool
	Decorate(elements []Element, f Frame) []Element
}

// ForTool создает подконтейнер инструмента в состоянии покоя
func ForTool(tool Tool, threshold int) SubContainer {
	switch tool {
	case ToolZoom:
		return Zoomable{}
	case ToolReorder:
		return Reorderable{}
	default:
		return NewDraggable(threshold)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
