package model

import (
	"reflect"
	"testing"
)

func TestFilterValid(t *testing.T) {
	for _, f := range []Filter{FilterAll, FilterActive, FilterCompleted} {
		if !f.Valid() {
			t.Fatalf("expected filter %q to be valid", f)
		}
	}
	if Filter("done").Valid() {
		t.Fatalf("expected unknown filter to be invalid")
	}
	if Filter("").Valid() {
		t.Fatalf("expected empty filter to be invalid")
	}
}

func TestDefaultPreferences(t *testing.T) {
	want := Preferences{DarkMode: true, AccentColor: "lilac", HideCompleted: false}
	if got := DefaultPreferences(); !reflect.DeepEqual(want, got) {
		t.Fatalf("unexpected defaults\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestKnownAccent(t *testing.T) {
	for _, name := range AccentNames {
		if !KnownAccent(name) {
			t.Fatalf("expected palette entry %q to be known", name)
		}
	}
	if !KnownAccent("  Lilac ") {
		t.Fatalf("expected accent lookup to trim and lowercase")
	}
	if KnownAccent("chartreuse") {
		t.Fatalf("expected non-palette name to be unknown")
	}
}

func TestNormalizePreferencesRepairsAccent(t *testing.T) {
	got := NormalizePreferences(Preferences{DarkMode: false, AccentColor: "magenta", HideCompleted: true})
	if got.AccentColor != DefaultAccent {
		t.Fatalf("expected unknown accent to fall back to %q, got %q", DefaultAccent, got.AccentColor)
	}
	if got.DarkMode || !got.HideCompleted {
		t.Fatalf("expected other fields untouched, got %+v", got)
	}

	got = NormalizePreferences(Preferences{AccentColor: " Rose "})
	if got.AccentColor != "rose" {
		t.Fatalf("expected accent normalized to rose, got %q", got.AccentColor)
	}
}
