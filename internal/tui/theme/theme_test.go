package theme

import "testing"

func TestByNameFallsBackToFirst(t *testing.T) {
	if got := ByName("slate").Name; got != "Slate" {
		t.Errorf("ByName(slate) = %q", got)
	}
	if got := ByName("missing").Name; got != themes[0].Name {
		t.Errorf("ByName(missing) = %q", got)
	}
}

func TestNextCycles(t *testing.T) {
	name := themes[0].Name
	seen := map[string]bool{}
	for range themes {
		seen[name] = true
		name = Next(name).Name
	}
	if name != themes[0].Name || len(seen) != len(themes) {
		t.Errorf("Next должен перебрать все темы по кругу, получено %v", seen)
	}
}

func TestEveryThemeHasTrackPalette(t *testing.T) {
	for _, th := range themes {
		for _, color := range []string{"default", "red", "green", "blue", "yellow", "magenta", "cyan"} {
			if th.Tracks[color] == "" {
				t.Errorf("в теме %s нет цвета %s", th.Name, color)
			}
		}
	}
}
