package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskflow/model"
	"taskflow/store"
)

var (
	ErrEmptyTitle    = errors.New("task title must not be empty")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Service owns the in-memory task list and the display preferences that
// shape the task view. Every mutation writes through the injected store;
// write failures are the store's to log and the in-memory state stays
// authoritative for the session.
type Service struct {
	store *store.Store

	tasks         []model.Task
	filter        model.Filter
	hideCompleted bool
	pending       map[string]struct{}
}

// NewService loads the task list and view preferences from the store.
func NewService(st *store.Store) *Service {
	prefs := st.Preferences()
	return &Service{
		store:         st,
		tasks:         st.Tasks(),
		filter:        model.FilterAll,
		hideCompleted: prefs.HideCompleted,
		pending:       map[string]struct{}{},
	}
}

// Tasks returns the full list as a copy, newest first.
func (s *Service) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// CreateTask constructs a task from the trimmed title and description and
// prepends it to the list. The title must be non-empty after trimming; the
// form layer enforces that before calling, and the service enforces it again.
func (s *Service) CreateTask(title, description string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}

	task := model.Task{
		ID:          newID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.persistTasks()
	return task, nil
}

// ToggleTask flips the completed flag of the task matching id and persists
// the list. A missing id is a no-op; ok reports whether a task was found.
func (s *Service) ToggleTask(id string) (task model.Task, ok bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persistTasks()
			return s.tasks[i], true
		}
	}
	return model.Task{}, false
}

// MarkPendingRemoval flags the task matching id for removal so the renderer
// can flash it before it disappears. The list itself is not mutated until
// CommitRemoval. A missing id is a no-op.
func (s *Service) MarkPendingRemoval(id string) (task model.Task, ok bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			s.pending[id] = struct{}{}
			return t, true
		}
	}
	return model.Task{}, false
}

// PendingRemoval reports whether id is flagged for removal.
func (s *Service) PendingRemoval(id string) bool {
	_, ok := s.pending[id]
	return ok
}

// CommitRemoval removes the task matching id from the list and persists it.
// A missing id leaves the list unchanged.
func (s *Service) CommitRemoval(id string) bool {
	delete(s.pending, id)
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persistTasks()
			return true
		}
	}
	return false
}

// Filter returns the current filter.
func (s *Service) Filter() model.Filter {
	return s.filter
}

// SetFilter switches the current filter.
func (s *Service) SetFilter(f model.Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
	}
	s.filter = f
	return nil
}

// HideCompleted reports the hide-completed preference as held in memory.
func (s *Service) HideCompleted() bool {
	return s.hideCompleted
}

// SetHideCompleted persists the new preference value. It does not alter the
// current filter; FilteredTasks resolves the interaction between the two.
func (s *Service) SetHideCompleted(hide bool) {
	s.hideCompleted = hide
	// The in-memory value stays authoritative; the store logs write failures.
	_ = s.store.UpdatePreference("hideCompleted", hide)
}

// FilteredTasks computes the visible view. Pure read, no mutation.
//
//	active     -> tasks with completed == false
//	completed  -> tasks with completed == true
//	all        -> full list, unless hide-completed is on, then same as active
func (s *Service) FilteredTasks() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		switch s.filter {
		case model.FilterActive:
			if t.Completed {
				continue
			}
		case model.FilterCompleted:
			if !t.Completed {
				continue
			}
		default:
			if s.hideCompleted && t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func (s *Service) persistTasks() {
	// Write failure leaves the session fully usable; the store logs it.
	_ = s.store.SaveTasks(s.tasks)
}

func newID() string {
	return uuid.NewString()
}
