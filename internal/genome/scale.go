package genome

import "math"

// Scale линейно отображает регион на ширину в пикселях (колонках терминала).
// Отображение монотонно и обратимо.
type Scale struct {
	Region Region
	Width  int
}

// NewScale создает отображение региона на ширину width
func NewScale(region Region, width int) Scale {
	return Scale{Region: region, Width: width}
}

// BasesPerPixel возвращает количество пар оснований на один пиксель
func (s Scale) BasesPerPixel() float64 {
	if s.Width <= 0 {
		return 0
	}
	return float64(s.Region.Width()) / float64(s.Width)
}

// BaseToPixel переводит координату в пиксель относительно левого края
func (s Scale) BaseToPixel(base int64) float64 {
	bpp := s.BasesPerPixel()
	if bpp == 0 {
		return 0
	}
	return float64(base-s.Region.Start) / bpp
}

// PixelToBase переводит пиксель в координату
func (s Scale) PixelToBase(pixel float64) int64 {
	return s.Region.Start + int64(math.Round(pixel*s.BasesPerPixel()))
}

// PixelsToBases переводит смещение в пикселях в смещение в парах оснований
func (s Scale) PixelsToBases(pixels int) int64 {
	return int64(math.Round(float64(pixels) * s.BasesPerPixel()))
}

// Span возвращает диапазон колонок [from, to), который занимает интервал [start, end).
// Интервал, попадающий в регион, занимает хотя бы одну колонку.
func (s Scale) Span(start, end int64) (from, to int) {
	from = int(math.Floor(s.BaseToPixel(start)))
	to = int(math.Ceil(s.BaseToPixel(end)))
	if to <= from {
		to = from + 1
	}
	if from < 0 {
		from = 0
	}
	if to > s.Width {
		to = s.Width
	}
	return from, to
}
