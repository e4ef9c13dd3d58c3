package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskflow/model"
	"taskflow/store"
)

func newTestController(t *testing.T) (*Controller, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	st := store.New(dir, nil)
	return NewController(st, nil), st, dir
}

func prefsFileExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "taskflow_preferences.json"))
	return err == nil
}

func TestLoadAppliesStoredPreferences(t *testing.T) {
	c, st, _ := newTestController(t)

	if err := st.SavePreferences(model.Preferences{DarkMode: false, AccentColor: "amber"}); err != nil {
		t.Fatalf("seed preferences failed: %v", err)
	}

	c.Load()
	if c.DarkMode() {
		t.Fatalf("expected light mode applied from store")
	}
	if c.AccentName() != "amber" {
		t.Fatalf("expected amber accent applied, got %q", c.AccentName())
	}
}

func TestLoadOnEmptyStoreAppliesDefaultsWithoutWriting(t *testing.T) {
	c, _, dir := newTestController(t)

	c.Load()
	if !c.DarkMode() {
		t.Fatalf("expected dark mode default")
	}
	if c.AccentName() != model.DefaultAccent {
		t.Fatalf("expected default accent, got %q", c.AccentName())
	}
	if prefsFileExists(dir) {
		t.Fatalf("load must not write preferences back to the store")
	}
}

func TestSetDarkModeDoesNotPersist(t *testing.T) {
	c, _, dir := newTestController(t)

	c.SetDarkMode(false)
	if c.DarkMode() {
		t.Fatalf("expected mode applied")
	}
	if prefsFileExists(dir) {
		t.Fatalf("SetDarkMode must leave persistence to the caller")
	}
}

func TestToggleDarkModePersists(t *testing.T) {
	c, st, _ := newTestController(t)

	c.ToggleDarkMode()
	if c.DarkMode() {
		t.Fatalf("expected toggle from default dark to light")
	}
	if st.Preferences().DarkMode {
		t.Fatalf("expected darkMode=false persisted")
	}

	c.ToggleDarkMode()
	if !st.Preferences().DarkMode {
		t.Fatalf("expected darkMode=true persisted after second toggle")
	}
}

func TestSetAccentColorPersistsAndMarksSwatch(t *testing.T) {
	c, st, _ := newTestController(t)

	c.SetAccentColor("rose")
	if c.AccentName() != "rose" {
		t.Fatalf("expected rose applied, got %q", c.AccentName())
	}
	if got := st.Preferences().AccentColor; got != "rose" {
		t.Fatalf("expected rose persisted, got %q", got)
	}

	if !strings.Contains(c.Swatch("rose"), "◉") {
		t.Fatalf("expected active swatch marker for rose")
	}
	for _, name := range model.AccentNames {
		if name == "rose" {
			continue
		}
		if strings.Contains(c.Swatch(name), "◉") {
			t.Fatalf("expected swatch %q inactive", name)
		}
	}
}

func TestSetAccentColorUnknownFallsBack(t *testing.T) {
	c, st, _ := newTestController(t)

	c.SetAccentColor("chartreuse")
	if c.AccentName() != model.DefaultAccent {
		t.Fatalf("expected fallback to default accent, got %q", c.AccentName())
	}
	if got := st.Preferences().AccentColor; got != model.DefaultAccent {
		t.Fatalf("expected default accent persisted, got %q", got)
	}
}

func TestModeIcon(t *testing.T) {
	c, _, _ := newTestController(t)

	c.SetDarkMode(true)
	if c.ModeIcon() != "☀" {
		t.Fatalf("expected sun while dark, got %q", c.ModeIcon())
	}
	c.SetDarkMode(false)
	if c.ModeIcon() != "☾" {
		t.Fatalf("expected moon while light, got %q", c.ModeIcon())
	}
}

func TestPaletteMatchesModelNames(t *testing.T) {
	if len(Palette) != len(model.AccentNames) {
		t.Fatalf("palette size %d does not match model names %d", len(Palette), len(model.AccentNames))
	}
	for i, a := range Palette {
		if a.Name != model.AccentNames[i] {
			t.Fatalf("palette[%d]=%q, model names[%d]=%q", i, a.Name, i, model.AccentNames[i])
		}
	}
}
