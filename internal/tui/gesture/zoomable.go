package gesture

// Zoomable увеличивает выделенный мышью участок региона
type Zoomable struct {
	active  bool
	anchorX int
	lastX   int
}

// Active сообщает, идет ли выделение
func (z Zoomable) Active() bool { return z.active }

// Band возвращает выделенные колонки [from, to)
func (z Zoomable) Band() (from, to int) {
	if !z.active {
		return 0, 0
	}
	if z.anchorX <= z.lastX {
		return z.anchorX, z.lastX
	}
	return z.lastX, z.anchorX
}

// Cancel прерывает выделение без результата
func (z Zoomable) Cancel() SubContainer {
	return Zoomable{}
}

// Update обрабатывает событие указателя
func (z Zoomable) Update(p Pointer, f Frame) (SubContainer, Effect) {
	switch p.Action {
	case Press:
		if p.Primary && f.Inside(p.X, p.Y) {
			return Zoomable{active: true, anchorX: p.X, lastX: p.X}, Effect{}
		}
	case Motion:
		if !z.active {
			break
		}
		if !f.Inside(p.X, p.Y) {
			return z.Cancel(), Effect{}
		}
		z.lastX = p.X
		return z, Effect{}
	case Release:
		if !z.active {
			break
		}
		if !f.Inside(p.X, p.Y) {
			return z.Cancel(), Effect{}
		}
		z.lastX = p.X
		from, to := z.Band()
		if from == to {
			return z.Cancel(), Effect{}
		}
		scale := f.Scale()
		start, end := scale.PixelToBase(float64(from)), scale.PixelToBase(float64(to))
		if end <= start {
			return z.Cancel(), Effect{}
		}
		return z.Cancel(), Effect{Kind: NewRegion, Start: start, End: end}
	case Leave:
		return z.Cancel(), Effect{}
	}
	return z, Effect{}
}

// Decorate отмечает выделенную полосу на всех треках
func (z Zoomable) Decorate(elements []Element, f Frame) []Element {
	from, to := z.Band()
	if z.active && to == from {
		to = from + 1
	}
	out := make([]Element, len(elements))
	for i, e := range elements {
		e.BandFrom, e.BandTo = from, to
		out[i] = e
	}
	return out
}
