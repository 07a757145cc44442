package gesture

// Draggable сдвигает регион перетаскиванием
type Draggable struct {
	Threshold int
	active    bool
	startX    int
	lastX     int
}

// NewDraggable создает Draggable с порогом threshold колонок.
// Неположительный порог заменяется на MinDragDistance.
func NewDraggable(threshold int) Draggable {
	if threshold <= 0 {
		threshold = MinDragDistance
	}
	return Draggable{Threshold: threshold}
}

// Active сообщает, идет ли перетаскивание
func (d Draggable) Active() bool { return d.active }

// Offset возвращает текущее смещение в колонках
func (d Draggable) Offset() int {
	if !d.active {
		return 0
	}
	return d.lastX - d.startX
}

// Cancel прерывает жест без результата
func (d Draggable) Cancel() SubContainer {
	return Draggable{Threshold: d.Threshold}
}

// Update обрабатывает событие указателя
func (d Draggable) Update(p Pointer, f Frame) (SubContainer, Effect) {
	switch p.Action {
	case Press:
		if p.Primary && f.Inside(p.X, p.Y) {
			return Draggable{Threshold: d.Threshold, active: true, startX: p.X, lastX: p.X}, Effect{}
		}
	case Motion:
		if !d.active {
			break
		}
		if !f.Inside(p.X, p.Y) {
			return d.Cancel(), Effect{}
		}
		d.lastX = p.X
		return d, Effect{}
	case Release:
		if !d.active {
			break
		}
		if !f.Inside(p.X, p.Y) {
			return d.Cancel(), Effect{}
		}
		dx := p.X - d.startX
		if abs(dx) < d.Threshold {
			// Короткое перемещение считается щелчком
			return d.Cancel(), Effect{}
		}
		// Перетаскивание вправо показывает то, что левее
		shift := f.Scale().PixelsToBases(dx)
		return d.Cancel(), Effect{
			Kind:  NewRegion,
			Start: f.Region.Start - shift,
			End:   f.Region.End - shift,
		}
	case Leave:
		return d.Cancel(), Effect{}
	}
	return d, Effect{}
}

// Decorate сдвигает все треки на текущее смещение
func (d Draggable) Decorate(elements []Element, f Frame) []Element {
	offset := d.Offset()
	out := make([]Element, len(elements))
	for i, e := range elements {
		e.Offset = offset
		out[i] = e
	}
	return out
}
