package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskflow/internal/models"
)

// TaskStoreTestSuite defines the test suite for TaskStore
type TaskStoreTestSuite struct {
	suite.Suite
	repo   *memoryRepository
	clock  *fakeClock
	store  *TaskStore
	events []Event
}

// SetupTest runs before each test
func (suite *TaskStoreTestSuite) SetupTest() {
	suite.repo = &memoryRepository{}
	suite.clock = &fakeClock{now: time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)}
	suite.events = nil
	suite.store = NewTaskStore(suite.repo, nil, WithClock(suite.clock.Now), WithIDGenerator(sequentialIDs()))
	suite.store.Subscribe(func(e Event) { suite.events = append(suite.events, e) })
}

func (suite *TaskStoreTestSuite) add(title string) models.Task {
	task, err := suite.store.Add(TaskDraft{Title: title})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskStoreTestSuite) kinds() []EventKind {
	out := make([]EventKind, len(suite.events))
	for i, e := range suite.events {
		out[i] = e.Kind
	}
	return out
}

func (suite *TaskStoreTestSuite) TestAdd_Success() {
	due := models.NewDate(2025, time.April, 3)
	task, err := suite.store.Add(TaskDraft{
		Title:    "  Call mom ",
		Category: models.CategoryPersonal,
		Priority: models.PriorityHigh,
		DueDate:  &due,
		Notes:    strPtr("after lunch"),
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "id-1", task.ID)
	assert.Equal(suite.T(), "Call mom", task.Title)
	assert.Equal(suite.T(), models.CategoryPersonal, task.Category)
	assert.Equal(suite.T(), models.PriorityHigh, task.Priority)
	assert.False(suite.T(), task.Completed)
	assert.Equal(suite.T(), suite.clock.Now(), task.CreatedAt)
	assert.Equal(suite.T(), 1, suite.repo.saves)
	assert.Equal(suite.T(), []EventKind{EventTaskAdded}, suite.kinds())
}

func (suite *TaskStoreTestSuite) TestAdd_DefaultsAndNewestFirst() {
	suite.add("first")
	second := suite.add("second")

	assert.Equal(suite.T(), models.CategoryWork, second.Category)
	assert.Equal(suite.T(), models.PriorityMedium, second.Priority)
	assert.Equal(suite.T(), []string{"second", "first"}, titles(suite.store.Tasks()))
	assert.Equal(suite.T(), []string{"second", "first"}, titles(suite.repo.tasks))
}

func (suite *TaskStoreTestSuite) TestAdd_EmptyTitle() {
	suite.add("existing")

	for _, title := range []string{"", "   "} {
		_, err := suite.store.Add(TaskDraft{Title: title})
		var ve *ValidationError
		suite.Require().True(errors.As(err, &ve))
		assert.Equal(suite.T(), "title", ve.Field)
	}

	assert.Equal(suite.T(), 1, suite.store.Len())
	assert.Equal(suite.T(), 1, suite.repo.saves)
}

func (suite *TaskStoreTestSuite) TestAdd_InvalidEnums() {
	_, err := suite.store.Add(TaskDraft{Title: "x", Category: "chores"})
	assert.True(suite.T(), IsValidation(err))

	_, err = suite.store.Add(TaskDraft{Title: "x", Priority: "urgent"})
	assert.True(suite.T(), IsValidation(err))

	assert.Equal(suite.T(), 0, suite.store.Len())
}

func (suite *TaskStoreTestSuite) TestAdd_UniqueIDs() {
	ids := []string{"dup", "dup", "other"}
	store := NewTaskStore(&memoryRepository{}, nil, WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	a, err := store.Add(TaskDraft{Title: "a"})
	suite.Require().NoError(err)
	b, err := store.Add(TaskDraft{Title: "b"})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "dup", a.ID)
	assert.Equal(suite.T(), "other", b.ID)
}

func (suite *TaskStoreTestSuite) TestUpdate_MergesPatch() {
	created, err := suite.store.Add(TaskDraft{Title: "Report", DueDate: datePtr(2025, time.April, 9), Notes: strPtr("draft")})
	suite.Require().NoError(err)
	suite.clock.Advance(time.Hour)

	priority := models.PriorityCritical
	updated, err := suite.store.Update(created.ID, TaskPatch{Priority: &priority, ClearNotes: true})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), created.ID, updated.ID)
	assert.Equal(suite.T(), created.CreatedAt, updated.CreatedAt)
	assert.Equal(suite.T(), "Report", updated.Title)
	assert.Equal(suite.T(), models.PriorityCritical, updated.Priority)
	assert.Equal(suite.T(), created.DueDate, updated.DueDate)
	assert.Nil(suite.T(), updated.Notes)
	assert.Equal(suite.T(), 2, suite.repo.saves)
}

func (suite *TaskStoreTestSuite) TestUpdate_Rejects() {
	created := suite.add("Keep")

	_, err := suite.store.Update("missing", TaskPatch{})
	assert.True(suite.T(), IsNotFound(err))

	blank := " "
	_, err = suite.store.Update(created.ID, TaskPatch{Title: &blank})
	assert.True(suite.T(), IsValidation(err))

	bad := models.Category("chores")
	_, err = suite.store.Update(created.ID, TaskPatch{Category: &bad})
	assert.True(suite.T(), IsValidation(err))

	got, err := suite.store.Get(created.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), created, got)
	assert.Equal(suite.T(), 1, suite.repo.saves)
}

func (suite *TaskStoreTestSuite) TestUpdate_KeepsCompletionState() {
	done := suite.add("Done")
	pending := suite.add("Pending")
	_, err := suite.store.ToggleComplete(done.ID)
	suite.Require().NoError(err)
	suite.events = nil

	title := "Done, renamed"
	updated, err := suite.store.Update(done.ID, TaskPatch{Title: &title})
	suite.Require().NoError(err)
	assert.True(suite.T(), updated.Completed)

	updated, err = suite.store.Update(pending.ID, TaskPatch{Title: &title})
	suite.Require().NoError(err)
	assert.False(suite.T(), updated.Completed)

	assert.Equal(suite.T(), []EventKind{EventTaskUpdated, EventTaskUpdated}, suite.kinds())
}

func (suite *TaskStoreTestSuite) TestRemove_Idempotent() {
	created := suite.add("Gone")
	suite.add("Stays")

	removed, err := suite.store.Remove(created.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), removed)
	before := suite.store.Tasks()
	saves := suite.repo.saves

	removed, err = suite.store.Remove(created.ID)
	suite.Require().NoError(err)
	assert.False(suite.T(), removed)
	assert.Equal(suite.T(), before, suite.store.Tasks())
	assert.Equal(suite.T(), saves, suite.repo.saves)
}

func (suite *TaskStoreTestSuite) TestToggleComplete() {
	created := suite.add("Flip")

	result, err := suite.store.ToggleComplete(created.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), result.Completed)
	assert.True(suite.T(), result.Task.Completed)

	result, err = suite.store.ToggleComplete(created.ID)
	suite.Require().NoError(err)
	assert.False(suite.T(), result.Completed)
	assert.False(suite.T(), result.Task.Completed)

	_, err = suite.store.ToggleComplete("missing")
	assert.True(suite.T(), IsNotFound(err))

	assert.Equal(suite.T(), []EventKind{EventTaskAdded, EventTaskCompleted, EventTaskReopened}, suite.kinds())
}

func (suite *TaskStoreTestSuite) TestClearCompleted() {
	a := suite.add("a")
	suite.add("b")
	c := suite.add("c")
	_, err := suite.store.ToggleComplete(a.ID)
	suite.Require().NoError(err)
	_, err = suite.store.ToggleComplete(c.ID)
	suite.Require().NoError(err)

	removed, err := suite.store.ClearCompleted()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, removed)
	assert.Equal(suite.T(), []string{"b"}, titles(suite.store.Tasks()))
	assert.Equal(suite.T(), 2, suite.events[len(suite.events)-1].Count)
}

func (suite *TaskStoreTestSuite) TestClearCompleted_NothingToClear() {
	suite.add("a")
	suite.add("b")
	before := suite.store.Tasks()
	saves := suite.repo.saves

	removed, err := suite.store.ClearCompleted()
	assert.ErrorIs(suite.T(), err, ErrNothingToClear)
	assert.Equal(suite.T(), 0, removed)
	assert.Equal(suite.T(), before, suite.store.Tasks())
	assert.Equal(suite.T(), saves, suite.repo.saves)
}

func (suite *TaskStoreTestSuite) TestPersistenceFailureKeepsChange() {
	suite.repo.saveErr = errDiskFull

	task, err := suite.store.Add(TaskDraft{Title: "Unsaved"})
	assert.True(suite.T(), IsPersistence(err))
	assert.ErrorIs(suite.T(), err, errDiskFull)
	assert.Equal(suite.T(), "Unsaved", task.Title)
	assert.Equal(suite.T(), 1, suite.store.Len())

	suite.repo.saveErr = nil
	_, err = suite.store.ToggleComplete(task.ID)
	suite.Require().NoError(err)
	suite.Require().Len(suite.repo.tasks, 1)
	assert.True(suite.T(), suite.repo.tasks[0].Completed)
}

func (suite *TaskStoreTestSuite) TestReturnedTasksAreCopies() {
	created, err := suite.store.Add(TaskDraft{Title: "Original", Notes: strPtr("n")})
	suite.Require().NoError(err)

	*created.Notes = "mutated"
	tasks := suite.store.Tasks()
	tasks[0].Title = "mutated"

	got, err := suite.store.Get(created.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Original", got.Title)
	assert.Equal(suite.T(), "n", *got.Notes)
}

// TestTaskStoreTestSuite runs the test suite
func TestTaskStoreTestSuite(t *testing.T) {
	suite.Run(t, new(TaskStoreTestSuite))
}

func TestOpenTaskStore(t *testing.T) {
	repo := &memoryRepository{tasks: []models.Task{{ID: "x", Title: "Persisted", Category: models.CategoryWork, Priority: models.PriorityLow}}}

	store, err := OpenTaskStore(repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"Persisted"}, titles(store.Tasks()))
}

func TestOpenTaskStore_LoadFailure(t *testing.T) {
	repo := &memoryRepository{loadErr: errors.New("corrupt")}

	store, err := OpenTaskStore(repo)
	assert.True(t, IsPersistence(err))
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())

	_, err = store.Add(TaskDraft{Title: "Fresh start"})
	assert.NoError(t, err)
}
