package options

import (
	"testing"

	"github.com/hazadus/go-gbrowse/internal/track"
)

func TestEditorCycle(t *testing.T) {
	tests := []struct {
		cur, next, prev string
	}{
		{"full", "collapsed", "collapsed"},
		{"collapsed", "full", "full"},
		{"unknown", "full", "full"},
	}
	for _, test := range tests {
		if got := DisplayMode.Next(test.cur); got != test.next {
			t.Errorf("Next(%q) = %q, ожидалось %q", test.cur, got, test.next)
		}
		if got := DisplayMode.Prev(test.cur); got != test.prev {
			t.Errorf("Prev(%q) = %q, ожидалось %q", test.cur, got, test.prev)
		}
	}

	if got := RegionMode.Prev(ModeRegion); got != ModeGenome {
		t.Errorf("Prev с первого значения должен переходить на последнее, получено %q", got)
	}
	if got := Label.Next("abc"); got != "abc" {
		t.Errorf("текстовый редактор не должен менять значение при переборе: %q", got)
	}
}

func TestEditorValue(t *testing.T) {
	if v, ok := Height.Value("4").(int); !ok || v != 4 {
		t.Errorf("Height.Value(\"4\") = %#v", Height.Value("4"))
	}
	if v, ok := Color.Value("red").(string); !ok || v != "red" {
		t.Errorf("Color.Value(\"red\") = %#v", Color.Value("red"))
	}
}

func TestApplyClonesTargetsOnly(t *testing.T) {
	tracks := []track.Model{
		{ID: "A", File: "a.bed", Options: track.Options{KeyColor: "red"}},
		{ID: "B", File: "b.bed"},
		{ID: "C", File: "c.bed"},
	}

	got := Apply(tracks, []int{0, 2, 7}, KeyColor, "blue")
	if len(got) != 3 {
		t.Fatalf("ожидалось 3 трека, получено %d", len(got))
	}
	if got[0].Options[KeyColor] != "blue" || got[2].Options[KeyColor] != "blue" {
		t.Errorf("значение не применено: %+v", got)
	}
	if got[1].Options != nil {
		t.Errorf("незатронутый трек изменился: %+v", got[1])
	}
	if tracks[0].Options[KeyColor] != "red" || tracks[2].Options != nil {
		t.Errorf("Apply изменил исходный срез: %+v", tracks)
	}
}

func TestCommon(t *testing.T) {
	bed := []Editor{Color, Height, Label, DisplayMode}
	g3d := []Editor{Color, Height, Label, RegionMode, Resolution}

	got := Common(bed, g3d)
	if len(got) != 3 {
		t.Fatalf("ожидалось 3 общих редактора, получено %d", len(got))
	}
	for i, key := range []string{KeyColor, KeyHeight, KeyLabel} {
		if got[i].Key != key {
			t.Errorf("редактор %d = %q, ожидалось %q", i, got[i].Key, key)
		}
	}
	if Common() != nil {
		t.Error("Common без наборов должен вернуть nil")
	}
}

func TestHeightOf(t *testing.T) {
	tests := map[any]int{nil: DefaultHeight, 0: 1, 5: 5, 99: MaxHeight, "2": 2}
	for value, want := range tests {
		m := track.Model{}
		if value != nil {
			m = m.WithOption(KeyHeight, value)
		}
		if got := HeightOf(m); got != want {
			t.Errorf("HeightOf(%v) = %d, ожидалось %d", value, got, want)
		}
	}
}
