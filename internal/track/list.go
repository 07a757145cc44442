package track

// Все операции над списком возвращают новый срез и не изменяют входной.
// Неизмененные элементы разделяются между старым и новым списком,
// поэтому сравнение по ID позволяет понять, какие треки изменились.

func clone(tracks []Model) []Model {
	dup := make([]Model, len(tracks))
	copy(dup, tracks)
	return dup
}

func inRange(tracks []Model, i int) bool {
	return i >= 0 && i < len(tracks)
}

// Replace заменяет трек с индексом i
func Replace(tracks []Model, i int, m Model) []Model {
	dup := clone(tracks)
	if inRange(tracks, i) {
		dup[i] = m
	}
	return dup
}

// ToggleSelected переключает выделение ровно одного трека
func ToggleSelected(tracks []Model, i int) []Model {
	if !inRange(tracks, i) {
		return clone(tracks)
	}
	return Replace(tracks, i, tracks[i].WithSelected(!tracks[i].IsSelected))
}

// SelectOnly делает трек i единственным выделенным
func SelectOnly(tracks []Model, i int) []Model {
	dup := clone(tracks)
	for j := range dup {
		want := j == i
		if dup[j].IsSelected != want {
			dup[j] = dup[j].WithSelected(want)
		}
	}
	return dup
}

// DeselectAll снимает выделение со всех треков
func DeselectAll(tracks []Model) []Model {
	return SelectOnly(tracks, -1)
}

// Move извлекает трек from и вставляет его на позицию to.
// Относительный порядок остальных треков сохраняется.
func Move(tracks []Model, from, to int) []Model {
	if !inRange(tracks, from) || !inRange(tracks, to) || from == to {
		return clone(tracks)
	}
	moved := tracks[from]
	rest := make([]Model, 0, len(tracks)-1)
	rest = append(rest, tracks[:from]...)
	rest = append(rest, tracks[from+1:]...)

	result := make([]Model, 0, len(tracks))
	result = append(result, rest[:to]...)
	result = append(result, moved)
	result = append(result, rest[to:]...)
	return result
}

// Remove удаляет трек с индексом i
func Remove(tracks []Model, i int) []Model {
	if !inRange(tracks, i) {
		return clone(tracks)
	}
	result := make([]Model, 0, len(tracks)-1)
	result = append(result, tracks[:i]...)
	return append(result, tracks[i+1:]...)
}

// SelectedIndices возвращает индексы выделенных треков
func SelectedIndices(tracks []Model) []int {
	var indices []int
	for i, t := range tracks {
		if t.IsSelected {
			indices = append(indices, i)
		}
	}
	return indices
}

// IndexByID ищет трек по ID
func IndexByID(tracks []Model, id string) int {
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
