package gesture

// Reorderable переносит трек на другую позицию
type Reorderable struct {
	active bool
	from   int
	over   int
}

// Active сообщает, перетаскивается ли трек
func (r Reorderable) Active() bool { return r.active }

// Cancel прерывает перенос без результата
func (r Reorderable) Cancel() SubContainer {
	return Reorderable{}
}

// Update обрабатывает событие указателя
func (r Reorderable) Update(p Pointer, f Frame) (SubContainer, Effect) {
	switch p.Action {
	case Press:
		if !p.Primary || !f.Inside(p.X, p.Y) {
			break
		}
		if i := f.TrackAt(p.Y); i >= 0 {
			return Reorderable{active: true, from: i, over: i}, Effect{}
		}
	case Motion:
		if !r.active {
			break
		}
		if !f.Inside(p.X, p.Y) {
			return r.Cancel(), Effect{}
		}
		if i := f.TrackAt(p.Y); i >= 0 {
			r.over = i
		}
		return r, Effect{}
	case Release:
		if !r.active {
			break
		}
		to := f.TrackAt(p.Y)
		if !f.Inside(p.X, p.Y) || to < 0 || to == r.from {
			return r.Cancel(), Effect{}
		}
		return r.Cancel(), Effect{Kind: TrackMoved, From: r.from, To: to}
	case Leave:
		return r.Cancel(), Effect{}
	}
	return r, Effect{}
}

// Decorate поднимает переносимый трек и показывает место вставки
func (r Reorderable) Decorate(elements []Element, f Frame) []Element {
	out := make([]Element, len(elements))
	copy(out, elements)
	if !r.active {
		return out
	}
	for i := range out {
		switch {
		case out[i].Index == r.from:
			out[i].Lifted = true
		case out[i].Index == r.over && r.over < r.from:
			out[i].InsertAbove = true
		case out[i].Index == r.over && r.over > r.from:
			out[i].InsertBelow = true
		}
	}
	return out
}
