package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/repository"
	"github.com/yukikurage/taskflow/internal/utils"
)

// TaskStore owns the authoritative, newest-first task collection and writes
// it back to the repository after every mutation.
type TaskStore struct {
	repo      repository.TaskRepository
	tasks     []models.Task
	now       func() time.Time
	newID     func() string
	listeners []Listener
}

// StoreOption customizes a TaskStore
type StoreOption func(*TaskStore)

// WithClock replaces time.Now as the source of creation timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *TaskStore) { s.now = now }
}

// WithIDGenerator replaces the default uuid task id generator
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *TaskStore) { s.newID = gen }
}

// NewTaskStore creates a store holding a copy of initial
func NewTaskStore(repo repository.TaskRepository, initial []models.Task, opts ...StoreOption) *TaskStore {
	s := &TaskStore{
		repo:  repo,
		tasks: cloneTasks(initial),
		now:   time.Now,
		newID: utils.GenerateTaskID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenTaskStore loads the persisted collection. Missing or unreadable data
// yields an empty store; in the unreadable case the returned error is a
// *PersistenceError and the store is still usable.
func OpenTaskStore(repo repository.TaskRepository, opts ...StoreOption) (*TaskStore, error) {
	tasks, err := repo.Load()
	if err != nil {
		log.Printf("Could not load tasks, starting with an empty list: %v", err)
		return NewTaskStore(repo, nil, opts...), &PersistenceError{Op: "load", Err: err}
	}
	return NewTaskStore(repo, tasks, opts...), nil
}

// TaskDraft is the input for creating a task
type TaskDraft struct {
	Title    string
	Category models.Category
	Priority models.Priority
	DueDate  *models.Date
	DueTime  *models.ClockTime
	Notes    *string
}

// TaskPatch is a partial update; nil fields are left unchanged.
// Completion is not patchable; it only changes through ToggleComplete.
type TaskPatch struct {
	Title        *string
	Category     *models.Category
	Priority     *models.Priority
	DueDate      *models.Date
	DueTime      *models.ClockTime
	Notes        *string
	ClearDueDate bool
	ClearDueTime bool
	ClearNotes   bool
}

// ToggleResult is returned by ToggleComplete
type ToggleResult struct {
	Task models.Task
	// Completed is true only when the task moved from pending to completed.
	Completed bool
}

// Subscribe registers a listener for store events
func (s *TaskStore) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Tasks returns a copy of the collection in stored order
func (s *TaskStore) Tasks() []models.Task {
	return cloneTasks(s.tasks)
}

// Len returns the number of tasks
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Get returns a copy of the task with the given id
func (s *TaskStore) Get(id string) (models.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Task{}, &NotFoundError{ID: id}
	}
	return s.tasks[idx].Clone(), nil
}

// Add validates the draft and prepends a new task
func (s *TaskStore) Add(draft TaskDraft) (models.Task, error) {
	title, err := validateTitle(draft.Title)
	if err != nil {
		return models.Task{}, err
	}

	if draft.Category == "" {
		draft.Category = models.CategoryWork
	}
	if draft.Priority == "" {
		draft.Priority = models.PriorityMedium
	}
	if err := validateEnums(draft.Category, draft.Priority); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:        s.uniqueID(),
		Title:     title,
		Category:  draft.Category,
		Priority:  draft.Priority,
		DueDate:   draft.DueDate,
		DueTime:   draft.DueTime,
		Notes:     draft.Notes,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	task = task.Clone()

	s.tasks = append([]models.Task{task}, s.tasks...)
	err = s.persist()

	s.emit(Event{Kind: EventTaskAdded, Task: task.Clone()})
	return task.Clone(), err
}

// Update merges patch over an existing task
func (s *TaskStore) Update(id string, patch TaskPatch) (models.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Task{}, &NotFoundError{ID: id}
	}

	task := s.tasks[idx].Clone()

	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return models.Task{}, err
		}
		task.Title = title
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if err := validateEnums(task.Category, task.Priority); err != nil {
		return models.Task{}, err
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		d := *patch.DueDate
		task.DueDate = &d
	}
	if patch.ClearDueTime {
		task.DueTime = nil
	} else if patch.DueTime != nil {
		t := *patch.DueTime
		task.DueTime = &t
	}
	if patch.ClearNotes {
		task.Notes = nil
	} else if patch.Notes != nil {
		n := *patch.Notes
		task.Notes = &n
	}

	s.tasks[idx] = task
	err := s.persist()

	s.emit(Event{Kind: EventTaskUpdated, Task: task.Clone()})
	return task.Clone(), err
}

// Remove deletes the task if present. Removing an absent id is not an error.
func (s *TaskStore) Remove(id string) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	err := s.persist()

	s.emit(Event{Kind: EventTaskRemoved, Task: removed})
	return true, err
}

// ToggleComplete flips the completed flag
func (s *TaskStore) ToggleComplete(id string) (ToggleResult, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return ToggleResult{}, &NotFoundError{ID: id}
	}

	s.tasks[idx].Completed = !s.tasks[idx].Completed
	task := s.tasks[idx].Clone()
	err := s.persist()

	result := ToggleResult{Task: task, Completed: task.Completed}
	if task.Completed {
		s.emit(Event{Kind: EventTaskCompleted, Task: task.Clone()})
	} else {
		s.emit(Event{Kind: EventTaskReopened, Task: task.Clone()})
	}
	return result, err
}

// ClearCompleted removes every completed task and returns how many were
// removed. With nothing to remove it returns ErrNothingToClear and leaves
// storage untouched.
func (s *TaskStore) ClearCompleted() (int, error) {
	kept := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}

	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, ErrNothingToClear
	}

	s.tasks = kept
	err := s.persist()

	s.emit(Event{Kind: EventCompletedCleared, Count: removed})
	return removed, err
}

func (s *TaskStore) persist() error {
	if err := s.repo.Save(s.tasks); err != nil {
		log.Printf("Failed to save tasks: %v", err)
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func (s *TaskStore) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) uniqueID() string {
	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	return id
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Message: "title cannot be empty"}
	}
	return title, nil
}

func validateEnums(c models.Category, p models.Priority) error {
	if !c.IsValid() {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", c)}
	}
	if !p.IsValid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", p)}
	}
	return nil
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
