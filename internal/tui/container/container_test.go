package container

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/registry"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/tui/gesture"
)

// harness играет роль родителя: хранит треки и регион и возвращает их контейнеру
type harness struct {
	c       *Container
	tracks  []track.Model
	region  genome.Region
	regions []genome.Region
	reports []error
	changes int
}

const (
	testLabelWidth = 10
	testWidth      = testLabelWidth + 1 + 100
	dataLeft       = testLabelWidth + 1
)

func newHarness(tracks []track.Model) *harness {
	h := &harness{
		tracks: tracks,
		region: genome.Region{Chrom: "chr1", Start: 1000, End: 2000},
	}
	h.c = New(Config{Registry: registry.Default(nil), LabelWidth: testLabelWidth})
	h.c.OnTracksChanged = func(tracks []track.Model) {
		h.changes++
		h.tracks = tracks
		h.c.SetProps(h.tracks, h.region, testWidth)
	}
	h.c.OnNewRegion = func(start, end int64) {
		h.region = h.region.WithBounds(start, end)
		h.regions = append(h.regions, h.region)
		h.c.SetProps(h.tracks, h.region, testWidth)
	}
	h.c.OnReport = func(err error) {
		h.reports = append(h.reports, err)
	}
	h.c.SetProps(h.tracks, h.region, testWidth)
	return h
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int, ctrl bool) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button, Ctrl: ctrl}
}

func (h *harness) left(x, y int, ctrl bool) {
	h.c.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y, ctrl))
}

func (h *harness) right(x, y int, ctrl bool) {
	h.c.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonRight, x, y, ctrl))
}

func (h *harness) motion(x, y int) {
	h.c.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, y, false))
}

func (h *harness) release(x, y int) {
	h.c.HandleMouse(mouse(tea.MouseActionRelease, tea.MouseButtonNone, x, y, false))
}

// Три трека высотой 3 строки: A в строках 0-2, B в 3-5, C в 6-8
func threeTracks(selected string) []track.Model {
	return tracksOf("ABC", selected)
}

func TestParseModifier(t *testing.T) {
	tests := map[string]Modifier{"": ModifierCtrl, "CTRL": ModifierCtrl, " alt ": ModifierAlt, "shift": ModifierShift}
	for in, want := range tests {
		got, err := ParseModifier(in)
		if err != nil || got != want {
			t.Errorf("ParseModifier(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseModifier("meta"); err == nil {
		t.Error("ожидалась ошибка для неизвестного модификатора")
	}

	msg := tea.MouseMsg{Alt: true}
	if !ModifierAlt.Held(msg) || ModifierCtrl.Held(msg) {
		t.Error("Held должен проверять только свою клавишу")
	}
}

func TestRightClickSelectsThenModifierClickExtends(t *testing.T) {
	h := newHarness(threeTracks("B"))

	h.right(dataLeft+40, 7, false)
	if !h.c.MenuOpen() {
		t.Fatal("меню не открылось")
	}
	if selection(h.tracks) != "C" {
		t.Fatalf("после правого щелчка по C выделение %q", selection(h.tracks))
	}

	h.left(dataLeft+40, 1, true)
	if selection(h.tracks) != "AC" {
		t.Fatalf("после щелчка с модификатором по A выделение %q, ожидалось AC", selection(h.tracks))
	}
	if !h.c.MenuOpen() {
		t.Error("щелчок с модификатором по трекам не закрывает меню")
	}
}

func TestRightClickOnSelectedKeepsSelection(t *testing.T) {
	h := newHarness(threeTracks("AB"))

	h.right(dataLeft+5, 4, false)
	if !h.c.MenuOpen() {
		t.Fatal("меню не открылось")
	}
	if selection(h.tracks) != "AB" {
		t.Errorf("выделение изменилось: %q", selection(h.tracks))
	}
	if h.changes != 0 {
		t.Error("родитель не должен получать новый список треков")
	}
}

func TestRightClickWithModifierDoesNothing(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.right(dataLeft+5, 4, true)
	if h.c.MenuOpen() || selection(h.tracks) != "" {
		t.Error("правый щелчок с модификатором не должен ничего делать")
	}
}

func TestLeftClickOutsideClosesMenuAndDeselects(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.right(dataLeft+5, 0, false)
	if selection(h.tracks) != "A" {
		t.Fatalf("выделение %q", selection(h.tracks))
	}

	h.left(dataLeft+5, 40, false)
	if h.c.MenuOpen() {
		t.Error("меню должно закрыться")
	}
	if selection(h.tracks) != "" {
		t.Errorf("щелчок вне треков должен снять выделение, осталось %q", selection(h.tracks))
	}
}

func TestLeftClickOnTracksClosesMenuKeepsSelection(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.right(dataLeft+5, 0, false)

	h.left(dataLeft+5, 4, false)
	if h.c.MenuOpen() {
		t.Error("меню должно закрыться")
	}
	if selection(h.tracks) != "A" {
		t.Errorf("щелчок по трекам без модификатора не меняет выделение, получено %q", selection(h.tracks))
	}
}

func TestRightClickOutsideClosesMenu(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.right(dataLeft+5, 0, false)
	h.right(dataLeft+5, 40, false)
	if h.c.MenuOpen() || selection(h.tracks) != "" {
		t.Error("правый щелчок вне треков должен закрыть меню и снять выделение")
	}
}

func TestMenuClickAppliesOption(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.right(dataLeft+5, 4, false)

	// Панель меню начинается через строку после треков
	left, top, width, _ := h.c.menuRect()
	if top != 10 {
		t.Fatalf("верх меню = %d, ожидалось 10", top)
	}
	h.left(left+width/2, top+2, false)

	if got := h.tracks[1].Options.String(options.KeyColor, ""); got != "red" {
		t.Errorf("цвет B = %q, ожидался red", got)
	}
	if h.tracks[0].Options != nil || h.tracks[2].Options != nil {
		t.Error("невыделенные треки не должны меняться")
	}
	if !h.c.MenuOpen() {
		t.Error("смена параметра не закрывает меню")
	}
}

func TestMenuKeysAndRemove(t *testing.T) {
	h := newHarness(threeTracks(""))
	if handled, _ := h.c.HandleKey(tea.KeyMsg{Type: tea.KeyDown}); handled {
		t.Fatal("без меню клавиши не обрабатываются")
	}

	h.right(dataLeft+5, 4, false)
	for i := 0; i < 10; i++ {
		h.c.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	}
	if handled, _ := h.c.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); !handled {
		t.Fatal("клавиша не обработана меню")
	}
	if h.c.MenuOpen() {
		t.Error("удаление должно закрыть меню")
	}
	if order(h.tracks) != "AC" {
		t.Errorf("остались треки %q", order(h.tracks))
	}
}

func TestEscClosesMenuKeepsSelection(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.right(dataLeft+5, 4, false)
	h.c.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if h.c.MenuOpen() {
		t.Error("esc должен закрыть меню")
	}
	if selection(h.tracks) != "B" {
		t.Errorf("выделение %q, ожидалось B", selection(h.tracks))
	}
}

func TestDragChangesRegion(t *testing.T) {
	h := newHarness(threeTracks(""))

	h.left(dataLeft+40, 1, false)
	h.motion(dataLeft+60, 1)
	h.release(dataLeft+70, 1)

	if len(h.regions) != 1 {
		t.Fatalf("ожидалось одно изменение региона, получено %d", len(h.regions))
	}
	if got := h.regions[0]; got.Start != 700 || got.End != 1700 {
		t.Errorf("регион %v, ожидалось 700-1700", got)
	}
	if selection(h.tracks) != "" {
		t.Error("перетаскивание не должно менять выделение")
	}
}

func TestShortDragIsIgnored(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.left(dataLeft+40, 1, false)
	h.release(dataLeft+40+gesture.MinDragDistance-1, 1)
	if len(h.regions) != 0 {
		t.Errorf("короткое перемещение изменило регион: %v", h.regions)
	}
}

func TestReleaseOutsideCancelsDrag(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.left(dataLeft+10, 1, false)
	h.motion(dataLeft+80, 1)
	h.release(dataLeft+80, 30)
	if len(h.regions) != 0 {
		t.Errorf("отпускание вне треков должно отменить жест: %v", h.regions)
	}
}

func TestMotionWithoutButtonCancelsDrag(t *testing.T) {
	h := newHarness(threeTracks(""))
	before := h.c.View()

	h.left(dataLeft+10, 1, false)
	h.motion(dataLeft+60, 1)
	if !h.c.state.Gesture.Active() {
		t.Fatal("жест должен быть активен")
	}

	h.c.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonNone, dataLeft+70, 1, false))
	if h.c.state.Gesture.Active() {
		t.Error("движение без кнопки должно отменить жест")
	}
	if view := h.c.View(); view != before {
		t.Errorf("смещение должно сброситься:\n%s", view)
	}

	h.release(dataLeft+70, 1)
	if len(h.regions) != 0 {
		t.Errorf("отмененный жест изменил регион: %v", h.regions)
	}
}

func TestBlurCancelsReorder(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.c.Dispatch(SelectTool{Tool: gesture.ToolReorder})

	h.left(dataLeft+10, 7, false)
	h.motion(dataLeft+10, 4)
	h.c.Blur()
	h.release(dataLeft+10, 1)

	if order(h.tracks) != "ABC" {
		t.Errorf("порядок %q после потери фокуса, ожидалось ABC", order(h.tracks))
	}
}

func TestReorderThroughMouse(t *testing.T) {
	h := newHarness(threeTracks(""))
	h.c.Dispatch(SelectTool{Tool: gesture.ToolReorder})

	h.left(dataLeft+10, 7, false)
	h.motion(dataLeft+10, 4)
	if view := h.c.View(); !strings.Contains(view, "≡") || !strings.Contains(view, "▲") {
		t.Errorf("нет индикаторов переноса:\n%s", view)
	}
	h.release(dataLeft+10, 1)

	if order(h.tracks) != "CAB" {
		t.Errorf("порядок %q, ожидалось CAB", order(h.tracks))
	}
}

func TestUnknownTypeReportedOnceAndSkipped(t *testing.T) {
	tracks := []track.Model{
		{ID: "A", Type: "bed", File: "a.bed"},
		{ID: "X", Type: "mystery", File: "x.dat"},
		{ID: "B", Type: "BED", File: "b.bed"},
	}
	h := newHarness(tracks)
	h.c.SetProps(tracks, h.region, testWidth)
	h.c.View()
	h.c.View()

	if len(h.reports) != 1 {
		t.Fatalf("ожидалось одно сообщение, получено %d", len(h.reports))
	}
	if !errors.Is(h.reports[0], registry.ErrUnknownType) {
		t.Errorf("неожиданная ошибка: %v", h.reports[0])
	}

	frame := h.c.Frame()
	if frame.Lanes[1].Height != 0 || frame.Height() != 6 {
		t.Errorf("неизвестный тип должен занимать 0 строк: %+v", frame.Lanes)
	}

	// Строка 3 принадлежит B, а не пропущенному треку
	h.right(dataLeft+5, 3, false)
	if !h.tracks[2].IsSelected || h.tracks[1].IsSelected {
		t.Errorf("выбран не тот трек: %+v", h.tracks)
	}
}

func TestViewStates(t *testing.T) {
	h := newHarness(threeTracks("A"))
	h.c.SetData(map[string]TrackData{
		"A": {Loading: true},
		"B": {Err: errors.New("нет доступа")},
		"C": {},
	})

	view := h.c.View()
	for _, want := range []string{"загрузка", "нет доступа", "нет данных", "трек A", "трек B", "трек C"} {
		if !strings.Contains(view, want) {
			t.Errorf("в отображении нет %q:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 9 {
		t.Errorf("ожидалось 9 строк, получено %d", lines)
	}

	empty := newHarness(nil)
	if !strings.Contains(empty.c.View(), "Нет треков") {
		t.Error("для пустого списка нужна подсказка")
	}
}

func TestViewWideLabelKeepsWidth(t *testing.T) {
	tracks := tracksOf("AB", "A")
	tracks[0].Name = "人类基因注释轨道"
	tracks[1] = tracks[1].WithOption(options.KeyLabel, "端粒")
	h := newHarness(tracks)
	h.c.SetData(map[string]TrackData{"A": {Loading: true}, "B": {}})

	view := h.c.View()
	rows := strings.Split(view, "\n")
	if len(rows) != 6 {
		t.Fatalf("ожидалось 6 строк, получено %d", len(rows))
	}
	for i, row := range rows {
		if w := ansi.StringWidth(row); w != testWidth {
			t.Errorf("строка %d занимает %d ячеек, ожидалось %d: %q", i, w, testWidth, ansi.Strip(row))
		}
	}
	if !strings.Contains(ansi.Strip(rows[0]), "人类基因") {
		t.Errorf("подпись должна начинаться с названия: %q", ansi.Strip(rows[0]))
	}
}
