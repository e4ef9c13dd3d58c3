package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"taskflow/model"
)

// Keys in the on-disk key-value store. Each key is one JSON file inside the
// data directory.
const (
	tasksKey       = "taskflow_tasks"
	preferencesKey = "taskflow_preferences"
)

var (
	ErrUnknownPreference = errors.New("unknown preference key")
	ErrInvalidValue      = errors.New("invalid preference value")
)

// Store persists the task list and the preferences record as JSON files in a
// data directory. Read failures never propagate to callers: they get an empty
// list or default preferences and the failure is logged.
type Store struct {
	dir string
	log *log.Logger
}

// New creates a store rooted at dir. A nil logger discards log output.
func New(dir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{dir: dir, log: logger}
}

// Dir returns the data directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Tasks reads the stored task list. Missing key or a parse failure yields an
// empty list.
func (s *Store) Tasks() []model.Task {
	data, err := s.readKey(tasksKey)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Error("read tasks", "err", err)
		}
		return []model.Task{}
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.log.Error("parse tasks", "err", err)
		return []model.Task{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks
}

// SaveTasks writes the full task list, overwriting the prior value.
func (s *Store) SaveTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	if err := s.writeKey(tasksKey, tasks); err != nil {
		s.log.Error("save tasks", "err", err)
		return err
	}
	return nil
}

// Preferences reads the stored preferences record. Missing key or a parse
// failure yields the hardcoded defaults; this never fails the caller.
func (s *Store) Preferences() model.Preferences {
	data, err := s.readKey(preferencesKey)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Error("read preferences", "err", err)
		}
		return model.DefaultPreferences()
	}

	var prefs model.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.log.Error("parse preferences", "err", err)
		return model.DefaultPreferences()
	}
	return model.NormalizePreferences(prefs)
}

// SavePreferences overwrites the stored preferences record.
func (s *Store) SavePreferences(prefs model.Preferences) error {
	if err := s.writeKey(preferencesKey, prefs); err != nil {
		s.log.Error("save preferences", "err", err)
		return err
	}
	return nil
}

// UpdatePreference reads the current preferences, mutates a single field and
// writes the record back. The read-modify-write is not atomic; all callers
// run on the single event loop.
func (s *Store) UpdatePreference(key string, value any) error {
	prefs := s.Preferences()

	switch key {
	case "darkMode":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: darkMode wants bool, got %T", ErrInvalidValue, value)
		}
		prefs.DarkMode = b
	case "accentColor":
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: accentColor wants string, got %T", ErrInvalidValue, value)
		}
		if !model.KnownAccent(name) {
			return fmt.Errorf("%w: accentColor %q not in palette", ErrInvalidValue, name)
		}
		prefs.AccentColor = name
	case "hideCompleted":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: hideCompleted wants bool, got %T", ErrInvalidValue, value)
		}
		prefs.HideCompleted = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreference, key)
	}

	return s.SavePreferences(prefs)
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) readKey(key string) ([]byte, error) {
	return os.ReadFile(s.keyPath(key))
}

// writeKey writes via temporary file + atomic rename, keeping a .bak copy of
// the previous value.
func (s *Store) writeKey(key string, v any) error {
	path := s.keyPath(key)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	if err := backup(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.WriteFile(path+".bak", data, 0o644)
}
