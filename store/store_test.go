package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"taskflow/model"
)

func sampleTasks() []model.Task {
	created := time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC)
	return []model.Task{
		{
			ID:          "t2",
			Title:       "Water plants",
			Description: "Balcony first",
			Completed:   false,
			CreatedAt:   created.Add(time.Hour),
		},
		{
			ID:        "t1",
			Title:     "Buy milk",
			Completed: true,
			CreatedAt: created,
		},
	}
}

func TestTasksOnEmptyStore(t *testing.T) {
	s := New(t.TempDir(), nil)

	got := s.Tasks()
	if got == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no tasks, got %d", len(got))
	}
}

func TestSaveTasksThenTasksRoundTrip(t *testing.T) {
	s := New(t.TempDir(), nil)
	want := sampleTasks()

	if err := s.SaveTasks(want); err != nil {
		t.Fatalf("save tasks failed: %v", err)
	}

	got := s.Tasks()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestTasksOnCorruptFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)

	if err := os.WriteFile(filepath.Join(dir, "taskflow_tasks.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write corrupt file failed: %v", err)
	}

	if got := s.Tasks(); len(got) != 0 {
		t.Fatalf("expected empty list for corrupt store, got %d tasks", len(got))
	}
}

func TestPreferencesDefaultsOnEmptyStore(t *testing.T) {
	s := New(t.TempDir(), nil)

	want := model.Preferences{DarkMode: true, AccentColor: "lilac", HideCompleted: false}
	if got := s.Preferences(); !reflect.DeepEqual(want, got) {
		t.Fatalf("unexpected defaults\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestPreferencesDefaultsOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)

	if err := os.WriteFile(filepath.Join(dir, "taskflow_preferences.json"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file failed: %v", err)
	}

	if got := s.Preferences(); !reflect.DeepEqual(model.DefaultPreferences(), got) {
		t.Fatalf("expected defaults for corrupt preferences, got %+v", got)
	}
}

func TestSavePreferencesRoundTrip(t *testing.T) {
	s := New(t.TempDir(), nil)
	want := model.Preferences{DarkMode: false, AccentColor: "cyan", HideCompleted: true}

	if err := s.SavePreferences(want); err != nil {
		t.Fatalf("save preferences failed: %v", err)
	}
	if got := s.Preferences(); !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestUpdatePreferenceMutatesSingleField(t *testing.T) {
	s := New(t.TempDir(), nil)

	if err := s.UpdatePreference("darkMode", false); err != nil {
		t.Fatalf("update darkMode failed: %v", err)
	}

	got := s.Preferences()
	if got.DarkMode {
		t.Fatalf("expected darkMode false after update")
	}
	if got.AccentColor != model.DefaultAccent || got.HideCompleted {
		t.Fatalf("expected other fields untouched, got %+v", got)
	}

	if err := s.UpdatePreference("accentColor", "green"); err != nil {
		t.Fatalf("update accentColor failed: %v", err)
	}
	if err := s.UpdatePreference("hideCompleted", true); err != nil {
		t.Fatalf("update hideCompleted failed: %v", err)
	}

	want := model.Preferences{DarkMode: false, AccentColor: "green", HideCompleted: true}
	if got := s.Preferences(); !reflect.DeepEqual(want, got) {
		t.Fatalf("unexpected preferences after updates\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestUpdatePreferenceRejectsBadInput(t *testing.T) {
	s := New(t.TempDir(), nil)

	if err := s.UpdatePreference("fontSize", 12); !errors.Is(err, ErrUnknownPreference) {
		t.Fatalf("expected ErrUnknownPreference, got %v", err)
	}
	if err := s.UpdatePreference("darkMode", "yes"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for wrong type, got %v", err)
	}
	if err := s.UpdatePreference("accentColor", "chartreuse"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for non-palette accent, got %v", err)
	}

	// A failed update must not touch the stored record.
	if got := s.Preferences(); !reflect.DeepEqual(model.DefaultPreferences(), got) {
		t.Fatalf("expected pristine defaults after rejected updates, got %+v", got)
	}
}

func TestSaveKeepsBackupOfPreviousValue(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	first := sampleTasks()

	if err := s.SaveTasks(first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := s.SaveTasks(first[:1]); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "taskflow_tasks.json.bak"))
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected backup to hold previous value")
	}

	if got := s.Tasks(); len(got) != 1 {
		t.Fatalf("expected latest value after second save, got %d tasks", len(got))
	}
}

func TestSaveNilTasksWritesEmptyList(t *testing.T) {
	s := New(t.TempDir(), nil)

	if err := s.SaveTasks(nil); err != nil {
		t.Fatalf("save nil failed: %v", err)
	}
	got := s.Tasks()
	if got == nil || len(got) != 0 {
		t.Fatalf("expected stored empty list, got %#v", got)
	}
}
