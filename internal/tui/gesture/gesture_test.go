package gesture

import (
	"testing"

	"github.com/hazadus/go-gbrowse/internal/genome"
)

// 100 колонок по 10 оснований, три трека по 2 строки
func testFrame() Frame {
	return Frame{
		Width:  100,
		Region: genome.Region{Chrom: "chr1", Start: 1000, End: 2000},
		Lanes:  []Lane{{Top: 0, Height: 2}, {Top: 2, Height: 2}, {Top: 4, Height: 2}},
	}
}

func press(x, y int) Pointer   { return Pointer{X: x, Y: y, Action: Press, Primary: true} }
func move(x, y int) Pointer    { return Pointer{X: x, Y: y, Action: Motion, Primary: true} }
func release(x, y int) Pointer { return Pointer{X: x, Y: y, Action: Release, Primary: true} }

// run прогоняет события и собирает все результаты
func run(sc SubContainer, f Frame, events ...Pointer) (SubContainer, []Effect) {
	var effects []Effect
	for _, p := range events {
		var eff Effect
		sc, eff = sc.Update(p, f)
		if eff.Kind != None {
			effects = append(effects, eff)
		}
	}
	return sc, effects
}

func TestDragBelowThresholdNeverChangesRegion(t *testing.T) {
	f := testFrame()
	for dx := -19; dx <= 19; dx++ {
		sc, effects := run(NewDraggable(0), f, press(50, 1), move(50+dx/2, 1), release(50+dx, 1))
		if len(effects) != 0 {
			t.Errorf("dx=%d: ожидалось отсутствие результата, получено %+v", dx, effects)
		}
		if sc.Active() {
			t.Errorf("dx=%d: жест должен завершиться", dx)
		}
	}
}

func TestDragAtThresholdEmitsOnce(t *testing.T) {
	f := testFrame()
	tests := []struct {
		dx         int
		start, end int64
	}{
		{20, 800, 1800},
		{-20, 1200, 2200},
		{45, 550, 1550},
	}
	for _, test := range tests {
		_, effects := run(NewDraggable(0), f, press(50, 0), move(50+test.dx, 3), release(50+test.dx, 3))
		if len(effects) != 1 {
			t.Fatalf("dx=%d: ожидался один результат, получено %d", test.dx, len(effects))
		}
		eff := effects[0]
		if eff.Kind != NewRegion || eff.Start != test.start || eff.End != test.end {
			t.Errorf("dx=%d: получено %+v, ожидалось %d-%d", test.dx, eff, test.start, test.end)
		}
	}
}

func TestDragCustomThreshold(t *testing.T) {
	_, effects := run(NewDraggable(5), testFrame(), press(10, 0), release(15, 0))
	if len(effects) != 1 {
		t.Fatalf("ожидался результат при пороге 5, получено %d", len(effects))
	}
}

func TestDragOffsetDecoratesAllTracks(t *testing.T) {
	f := testFrame()
	sc, _ := run(NewDraggable(0), f, press(10, 0), move(17, 0))
	elements := sc.Decorate([]Element{{Index: 0}, {Index: 1}, {Index: 2}}, f)
	for _, e := range elements {
		if e.Offset != 7 {
			t.Errorf("трек %d: смещение %d, ожидалось 7", e.Index, e.Offset)
		}
	}
}

func TestLeavingSurfaceCancels(t *testing.T) {
	f := testFrame()
	tools := []SubContainer{NewDraggable(0), Zoomable{}, Reorderable{}}

	for _, sc := range tools {
		// Выход за правый край во время движения
		_, effects := run(sc, f, press(10, 0), move(100, 0), release(60, 4))
		if len(effects) != 0 {
			t.Errorf("%T: результат после выхода с поверхности: %+v", sc, effects)
		}

		// Явное событие ухода
		next, effects := run(sc, f, press(10, 0), move(60, 4), Pointer{Action: Leave})
		if len(effects) != 0 || next.Active() {
			t.Errorf("%T: Leave должен отменять жест", sc)
		}

		// Отпускание вне поверхности
		_, effects = run(sc, f, press(10, 0), move(60, 4), release(60, 9))
		if len(effects) != 0 {
			t.Errorf("%T: отпускание вне поверхности дало результат: %+v", sc, effects)
		}
	}
}

func TestSecondaryButtonDoesNotStartGesture(t *testing.T) {
	f := testFrame()
	for _, sc := range []SubContainer{NewDraggable(0), Zoomable{}, Reorderable{}} {
		next, _ := sc.Update(Pointer{X: 10, Y: 0, Action: Press}, f)
		if next.Active() {
			t.Errorf("%T: жест начат не основной кнопкой", sc)
		}
	}
}

func TestCancelDiscardsState(t *testing.T) {
	f := testFrame()
	sc, _ := run(NewDraggable(0), f, press(10, 0), move(80, 0))
	sc = sc.Cancel()
	_, effects := run(sc, f, release(80, 0))
	if len(effects) != 0 {
		t.Errorf("после Cancel отпускание дало результат: %+v", effects)
	}
}

func TestZoomSelection(t *testing.T) {
	f := testFrame()
	sc, effects := run(Zoomable{}, f, press(60, 0), move(40, 2))
	z := sc.(Zoomable)
	if from, to := z.Band(); from != 40 || to != 60 {
		t.Errorf("Band() = %d-%d", from, to)
	}
	if len(effects) != 0 {
		t.Fatal("результат до отпускания")
	}

	_, effects = run(sc, f, release(20, 2))
	if len(effects) != 1 {
		t.Fatalf("ожидался один результат, получено %d", len(effects))
	}
	if eff := effects[0]; eff.Start != 1200 || eff.End != 1600 {
		t.Errorf("получено %d-%d, ожидалось 1200-1600", eff.Start, eff.End)
	}
}

func TestZoomZeroWidthIsNoop(t *testing.T) {
	_, effects := run(Zoomable{}, testFrame(), press(30, 0), release(30, 5))
	if len(effects) != 0 {
		t.Errorf("выделение нулевой ширины не должно менять регион: %+v", effects)
	}
}

func TestReorder(t *testing.T) {
	f := testFrame()

	sc, _ := run(Reorderable{}, f, press(5, 1), move(5, 4))
	elements := sc.Decorate([]Element{{Index: 0}, {Index: 1}, {Index: 2}}, f)
	if !elements[0].Lifted || !elements[2].InsertBelow {
		t.Errorf("неверная подсветка: %+v", elements)
	}

	_, effects := run(sc, f, release(5, 5))
	if len(effects) != 1 || effects[0].Kind != TrackMoved || effects[0].From != 0 || effects[0].To != 2 {
		t.Fatalf("получено %+v", effects)
	}

	_, effects = run(Reorderable{}, f, press(5, 2), move(5, 0), release(5, 3))
	if len(effects) != 0 {
		t.Errorf("отпускание на исходном треке не должно переставлять: %+v", effects)
	}
}

func TestForTool(t *testing.T) {
	if _, ok := ForTool(ToolZoom, 0).(Zoomable); !ok {
		t.Error("ToolZoom должен давать Zoomable")
	}
	if _, ok := ForTool(ToolReorder, 0).(Reorderable); !ok {
		t.Error("ToolReorder должен давать Reorderable")
	}
	d, ok := ForTool(ToolDrag, 0).(Draggable)
	if !ok || d.Threshold != MinDragDistance {
		t.Errorf("ToolDrag: %+v", d)
	}
}
